package services

import (
	"strings"
	"sync"

	"foxus/app/models"
	"foxus/app/repo"
	"foxus/app/wallclock"
	"foxus/logger"
)

const (
	// Budget deductions inside this window return the current
	// remaining value without deducting, so rapid extension polling
	// cannot drain the budget faster than real time.
	distractionRateLimitSecs = 25

	// Reconciliation tolerates this much drift between an active
	// scheduled session's budget and its schedule before restarting
	// the session, to avoid thrash on minor edits.
	scheduleBudgetDriftSecs = 60
)

// FocusState is the policy snapshot handed to the GUI and the browser
// extension.
type FocusState struct {
	Active              bool
	BudgetRemaining     int
	BlockedDomains      []string
	SessionDurationSecs *int64
}

// FocusService owns focus policy: manual sessions, rate-limited budget
// accounting, and schedule reconciliation.
type FocusService struct {
	sessions  *repo.FocusSessionRepository
	schedules *repo.FocusScheduleRepository
	rules     *repo.RuleRepository
	clock     wallclock.Clock

	// Session mutations are find-then-write sequences; sessionMu makes
	// each one atomic so the reconciliation goroutine and concurrent
	// command connections cannot interleave and leave two sessions
	// open.
	sessionMu sync.Mutex

	// Rate-limit bookkeeping sits under its own lock so deciding
	// whether to touch the store never holds the store up.
	rateMu            sync.Mutex
	lastDistractionAt int64
}

func NewFocusService(
	sessions *repo.FocusSessionRepository,
	schedules *repo.FocusScheduleRepository,
	rules *repo.RuleRepository,
	clock wallclock.Clock,
) *FocusService {
	if clock == nil {
		clock = wallclock.SystemClock{}
	}
	return &FocusService{
		sessions:  sessions,
		schedules: schedules,
		rules:     rules,
		clock:     clock,
	}
}

// StartSession begins a manual focus session, ending any session that
// is still open first so at most one stays active.
func (f *FocusService) StartSession(budgetSecs int) (*models.FocusSession, error) {
	f.sessionMu.Lock()
	defer f.sessionMu.Unlock()
	return f.startSessionLocked(budgetSecs, false)
}

// StartScheduledSession is StartSession with the scheduled tag, used by
// reconciliation.
func (f *FocusService) StartScheduledSession(budgetSecs int) (*models.FocusSession, error) {
	f.sessionMu.Lock()
	defer f.sessionMu.Unlock()
	return f.startSessionLocked(budgetSecs, true)
}

// startSessionLocked runs the end-then-create sequence; callers hold
// sessionMu.
func (f *FocusService) startSessionLocked(budgetSecs int, scheduled bool) (*models.FocusSession, error) {
	now := f.clock.Now()
	if existing, err := f.sessions.FindActive(); err != nil {
		return nil, err
	} else if existing != nil {
		if err := f.sessions.End(existing, now); err != nil {
			return nil, err
		}
	}

	session := &models.FocusSession{
		StartedAt:         now,
		Scheduled:         scheduled,
		DistractionBudget: budgetSecs,
	}
	if err := f.sessions.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// EndSession ends the active session and returns it, or nil when focus
// mode was already off.
func (f *FocusService) EndSession() (*models.FocusSession, error) {
	f.sessionMu.Lock()
	defer f.sessionMu.Unlock()
	session, err := f.sessions.FindActive()
	if err != nil || session == nil {
		return nil, err
	}
	if err := f.sessions.End(session, f.clock.Now()); err != nil {
		return nil, err
	}
	return session, nil
}

// GetState returns the current focus snapshot. Blocked domains are
// reported regardless of session state; callers gate on Active.
func (f *FocusService) GetState() (*FocusState, error) {
	session, err := f.sessions.FindActive()
	if err != nil {
		return nil, err
	}
	blocked, err := f.rules.BlockedDomainPatterns()
	if err != nil {
		return nil, err
	}
	if blocked == nil {
		// Consumers expect an array even when no domain rules exist.
		blocked = []string{}
	}

	state := &FocusState{BlockedDomains: blocked}
	if session != nil {
		state.Active = true
		state.BudgetRemaining = session.BudgetRemaining()
		duration := f.clock.Now() - session.StartedAt
		if duration < 0 {
			duration = 0
		}
		state.SessionDurationSecs = &duration
	}
	return state, nil
}

// UseDistractionTime deducts secs from the active session's budget and
// returns the new remaining value. Calls inside the rate-limit window
// return the current remaining without deducting. Returns nil when no
// session is active.
func (f *FocusService) UseDistractionTime(secs int) (*int, error) {
	f.sessionMu.Lock()
	defer f.sessionMu.Unlock()
	session, err := f.sessions.FindActive()
	if err != nil || session == nil {
		return nil, err
	}

	now := f.clock.Now()
	f.rateMu.Lock()
	limited := f.lastDistractionAt != 0 && now-f.lastDistractionAt < distractionRateLimitSecs
	if !limited {
		f.lastDistractionAt = now
	}
	f.rateMu.Unlock()

	if !limited {
		if err := f.sessions.AddDistractionTime(session, secs); err != nil {
			return nil, err
		}
	}
	remaining := session.BudgetRemaining()
	return &remaining, nil
}

// IsDomainBlocked reports whether the domain is gated right now: false
// whenever no session is active, otherwise a suffix/equality test
// against the blocked patterns (a leading "*." marker is ignored for
// the equality case).
func (f *FocusService) IsDomainBlocked(domain string) (bool, error) {
	state, err := f.GetState()
	if err != nil {
		return false, err
	}
	if !state.Active {
		return false, nil
	}
	for _, d := range state.BlockedDomains {
		if strings.HasSuffix(domain, d) || domain == strings.TrimPrefix(d, "*.") {
			return true, nil
		}
	}
	return false, nil
}

// ActiveSchedule returns the schedule covering the current day and
// time, or nil. First enabled match in id order wins.
func (f *FocusService) ActiveSchedule() (*models.FocusSchedule, error) {
	schedules, err := f.schedules.ListEnabled()
	if err != nil {
		return nil, err
	}
	now := f.clock.Now()
	day := wallclock.DayOfWeek(now)
	hhmm := wallclock.ClockTime(now)
	for i := range schedules {
		if schedules[i].ActiveAt(day, hhmm) {
			return &schedules[i], nil
		}
	}
	return nil, nil
}

// CheckSchedules reconciles the active session against the schedule
// table. Intended to run about once a minute.
//
//	schedule  session    action
//	active    none       start scheduled session
//	none      scheduled  end it
//	active    scheduled  restart if budgets drifted beyond tolerance
//	any       manual     leave it alone
func (f *FocusService) CheckSchedules() error {
	schedule, err := f.ActiveSchedule()
	if err != nil {
		return err
	}

	// Hold sessionMu across the whole look-then-act sequence so a
	// command arriving mid-reconciliation cannot race it.
	f.sessionMu.Lock()
	defer f.sessionMu.Unlock()
	session, err := f.sessions.FindActive()
	if err != nil {
		return err
	}

	switch {
	case schedule != nil && session == nil:
		logger.Infof("schedule %d active, starting scheduled session (budget=%ds)", schedule.ID, schedule.DistractionBudget)
		_, err = f.startSessionLocked(schedule.DistractionBudget, true)
		return err

	case schedule == nil && session != nil && session.Scheduled:
		logger.Infof("schedule window closed, ending session %d", session.ID)
		return f.sessions.End(session, f.clock.Now())

	case schedule != nil && session != nil && session.Scheduled:
		drift := session.DistractionBudget - schedule.DistractionBudget
		if drift < 0 {
			drift = -drift
		}
		if drift > scheduleBudgetDriftSecs {
			logger.Infof("schedule %d budget changed, restarting session %d", schedule.ID, session.ID)
			_, err = f.startSessionLocked(schedule.DistractionBudget, true)
			return err
		}
		return nil

	default:
		// Manual sessions are never touched by reconciliation, and
		// no schedule plus no session needs nothing.
		return nil
	}
}

package services

import (
	"sync/atomic"
	"time"

	"foxus/app/models"
	"foxus/app/repo"
	"foxus/app/wallclock"
	"foxus/logger"
	"foxus/platform"
)

type TrackerConfig struct {
	PollIntervalSecs  int
	IdleThresholdSecs int
}

func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{PollIntervalSecs: 5, IdleThresholdSecs: 120}
}

// TrackerService samples the active window on a fixed cadence, labels
// it through the categorizer, and appends an activity row. Each sample
// is attributed one poll interval of duration; time spent idle past
// the threshold records nothing.
type TrackerService struct {
	config      TrackerConfig
	running     atomic.Bool
	done        chan struct{}
	activities  *repo.ActivityRepository
	categorizer *Categorizer
	probe       platform.Tracker
	clock       wallclock.Clock
}

func NewTrackerService(
	activities *repo.ActivityRepository,
	categorizer *Categorizer,
	probe platform.Tracker,
	config TrackerConfig,
) *TrackerService {
	if config.PollIntervalSecs <= 0 {
		config.PollIntervalSecs = 5
	}
	if config.IdleThresholdSecs <= 0 {
		config.IdleThresholdSecs = 120
	}
	return &TrackerService{
		config:      config,
		activities:  activities,
		categorizer: categorizer,
		probe:       probe,
		clock:       wallclock.SystemClock{},
	}
}

// Start launches the sampling loop. Calling Start on a running tracker
// is a no-op.
func (t *TrackerService) Start() {
	if !t.running.CompareAndSwap(false, true) {
		return
	}
	t.done = make(chan struct{})
	go t.loop()
	logger.Infof("tracker started (poll=%ds idle_threshold=%ds)",
		t.config.PollIntervalSecs, t.config.IdleThresholdSecs)
}

func (t *TrackerService) loop() {
	defer close(t.done)
	interval := time.Duration(t.config.PollIntervalSecs) * time.Second
	for t.running.Load() {
		t.sample()
		time.Sleep(interval)
	}
}

func (t *TrackerService) sample() {
	if t.probe.GetIdleTimeSecs() >= t.config.IdleThresholdSecs {
		return
	}
	window := t.probe.GetActiveWindow()
	if window == nil {
		return
	}

	categoryID := t.categorizer.CategorizeApp(window.AppName, window.WindowTitle)
	activity := &models.Activity{
		Timestamp:    t.clock.Now(),
		DurationSecs: t.config.PollIntervalSecs,
		Source:       models.SourceApp,
		AppName:      &window.AppName,
		WindowTitle:  &window.WindowTitle,
		CategoryID:   &categoryID,
	}
	if err := t.activities.Create(activity); err != nil {
		logger.Errorf("tracker: save activity: %v", err)
	}
}

// Stop flips the run flag and waits for the loop to observe it, so
// shutdown completes within one poll interval. Idempotent.
func (t *TrackerService) Stop() {
	if !t.running.CompareAndSwap(true, false) {
		return
	}
	<-t.done
	logger.Info("tracker stopped")
}

func (t *TrackerService) IsRunning() bool { return t.running.Load() }

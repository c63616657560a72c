package command

import (
	"encoding/json"
	"fmt"

	"foxus/app/apperr"
	"foxus/app/dto"
	"foxus/app/models"
	"foxus/app/repo"
	"foxus/app/services"
	"foxus/app/validation"
)

// Handlers binds the command surface to the core services. CRUD on
// rules and categories ends with a categorizer reload so edits take
// effect without a restart.
type Handlers struct {
	Focus       *services.FocusService
	Categorizer *services.Categorizer
	Stats       *services.StatsService
	Categories  *repo.CategoryRepository
	Rules       *repo.RuleRepository
	Schedules   *repo.FocusScheduleRepository
}

func (h *Handlers) RegisterAll(reg *Registry) {
	reg.Register("get_focus_state", h.getFocusState)
	reg.Register("start_focus_session", h.startFocusSession)
	reg.Register("end_focus_session", h.endFocusSession)
	reg.Register("use_distraction_time", h.useDistractionTime)
	reg.Register("get_active_schedule", h.getActiveSchedule)
	reg.Register("check_focus_schedules", h.checkFocusSchedules)

	reg.Register("list_categories", h.listCategories)
	reg.Register("create_category", h.createCategory)
	reg.Register("update_category", h.updateCategory)
	reg.Register("delete_category", h.deleteCategory)

	reg.Register("list_rules", h.listRules)
	reg.Register("create_rule", h.createRule)
	reg.Register("update_rule", h.updateRule)
	reg.Register("delete_rule", h.deleteRule)

	reg.Register("list_schedules", h.listSchedules)
	reg.Register("create_schedule", h.createSchedule)
	reg.Register("update_schedule", h.updateSchedule)
	reg.Register("delete_schedule", h.deleteSchedule)

	reg.Register("get_today_stats", h.getTodayStats)
	reg.Register("get_weekly_stats", h.getWeeklyStats)
}

func decode[T any](params json.RawMessage) (T, error) {
	var v T
	if len(params) == 0 {
		return v, apperr.Invalidf("missing parameters")
	}
	if err := json.Unmarshal(params, &v); err != nil {
		return v, apperr.Invalidf("malformed parameters")
	}
	return v, nil
}

// Focus

func (h *Handlers) getFocusState(json.RawMessage) (any, error) {
	state, err := h.Focus.GetState()
	if err != nil {
		return nil, err
	}
	return dto.FocusStateResponse{
		Active:              state.Active,
		BudgetRemaining:     state.BudgetRemaining,
		BlockedDomains:      state.BlockedDomains,
		SessionDurationSecs: state.SessionDurationSecs,
	}, nil
}

func (h *Handlers) startFocusSession(params json.RawMessage) (any, error) {
	req, err := decode[dto.StartSessionRequest](params)
	if err != nil {
		return nil, err
	}
	budgetSecs, err := validation.BudgetMinutes(req.BudgetMinutes)
	if err != nil {
		return nil, err
	}
	session, err := h.Focus.StartSession(budgetSecs)
	if err != nil {
		return nil, err
	}
	return sessionToDTO(session), nil
}

func (h *Handlers) endFocusSession(json.RawMessage) (any, error) {
	session, err := h.Focus.EndSession()
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	return sessionToDTO(session), nil
}

func (h *Handlers) useDistractionTime(params json.RawMessage) (any, error) {
	req, err := decode[dto.UseDistractionRequest](params)
	if err != nil {
		return nil, err
	}
	if req.Secs <= 0 {
		return nil, apperr.Invalidf("seconds must be positive")
	}
	remaining, err := h.Focus.UseDistractionTime(req.Secs)
	if err != nil {
		return nil, err
	}
	if remaining == nil {
		return dto.UseDistractionResponse{Active: false}, nil
	}
	return dto.UseDistractionResponse{Active: true, Remaining: *remaining}, nil
}

func (h *Handlers) getActiveSchedule(json.RawMessage) (any, error) {
	schedule, err := h.Focus.ActiveSchedule()
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, nil
	}
	return scheduleToDTO(schedule), nil
}

func (h *Handlers) checkFocusSchedules(json.RawMessage) (any, error) {
	return nil, h.Focus.CheckSchedules()
}

// Categories

func (h *Handlers) listCategories(json.RawMessage) (any, error) {
	categories, err := h.Categories.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, dto.CategoryResponse{ID: c.ID, Name: c.Name, Productivity: c.Productivity})
	}
	return out, nil
}

func (h *Handlers) createCategory(params json.RawMessage) (any, error) {
	req, err := decode[dto.CategoryRequest](params)
	if err != nil {
		return nil, err
	}
	name, err := validation.CategoryName(req.Name)
	if err != nil {
		return nil, err
	}
	if err := validation.Productivity(req.Productivity); err != nil {
		return nil, err
	}
	if existing, err := h.Categories.FindByName(name); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("category %q %w", name, apperr.ErrAlreadyExists)
	}

	c := &models.Category{Name: name, Productivity: req.Productivity}
	if err := h.Categories.Create(c); err != nil {
		return nil, err
	}
	return dto.CategoryResponse{ID: c.ID, Name: c.Name, Productivity: c.Productivity}, nil
}

func (h *Handlers) updateCategory(params json.RawMessage) (any, error) {
	req, err := decode[dto.CategoryRequest](params)
	if err != nil {
		return nil, err
	}
	name, err := validation.CategoryName(req.Name)
	if err != nil {
		return nil, err
	}
	if err := validation.Productivity(req.Productivity); err != nil {
		return nil, err
	}
	existing, err := h.Categories.Get(req.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.NotFound("category")
	}
	if err := h.Categories.Update(req.ID, map[string]any{
		"name":         name,
		"productivity": req.Productivity,
	}); err != nil {
		return nil, err
	}
	if err := h.Categorizer.Reload(); err != nil {
		return nil, err
	}
	return dto.CategoryResponse{ID: req.ID, Name: name, Productivity: req.Productivity}, nil
}

func (h *Handlers) deleteCategory(params json.RawMessage) (any, error) {
	req, err := decode[dto.DeleteRequest](params)
	if err != nil {
		return nil, err
	}
	refs, err := h.Categories.ReferenceCount(req.ID)
	if err != nil {
		return nil, err
	}
	if refs > 0 {
		return nil, fmt.Errorf("category is still %w by rules or activities", apperr.ErrInUse)
	}
	deleted, err := h.Categories.Delete(req.ID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, apperr.NotFound("category")
	}
	if err := h.Categorizer.Reload(); err != nil {
		return nil, err
	}
	return nil, nil
}

// Rules

func (h *Handlers) listRules(json.RawMessage) (any, error) {
	rules, err := h.Rules.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.RuleResponse, 0, len(rules))
	for _, r := range rules {
		out = append(out, ruleToDTO(&r))
	}
	return out, nil
}

func (h *Handlers) createRule(params json.RawMessage) (any, error) {
	req, err := decode[dto.RuleRequest](params)
	if err != nil {
		return nil, err
	}
	rule, err := h.validatedRule(req)
	if err != nil {
		return nil, err
	}
	if err := h.Rules.Create(rule); err != nil {
		return nil, err
	}
	if err := h.Categorizer.Reload(); err != nil {
		return nil, err
	}
	return ruleToDTO(rule), nil
}

func (h *Handlers) updateRule(params json.RawMessage) (any, error) {
	req, err := decode[dto.RuleRequest](params)
	if err != nil {
		return nil, err
	}
	rule, err := h.validatedRule(req)
	if err != nil {
		return nil, err
	}
	existing, err := h.Rules.Get(req.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.NotFound("rule")
	}
	if err := h.Rules.Update(req.ID, map[string]any{
		"pattern":     rule.Pattern,
		"match_kind":  rule.MatchKind,
		"category_id": rule.CategoryID,
		"priority":    rule.Priority,
	}); err != nil {
		return nil, err
	}
	if err := h.Categorizer.Reload(); err != nil {
		return nil, err
	}
	rule.ID = req.ID
	return ruleToDTO(rule), nil
}

func (h *Handlers) deleteRule(params json.RawMessage) (any, error) {
	req, err := decode[dto.DeleteRequest](params)
	if err != nil {
		return nil, err
	}
	deleted, err := h.Rules.Delete(req.ID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, apperr.NotFound("rule")
	}
	if err := h.Categorizer.Reload(); err != nil {
		return nil, err
	}
	return nil, nil
}

func (h *Handlers) validatedRule(req dto.RuleRequest) (*models.Rule, error) {
	pattern, err := validation.RulePattern(req.Pattern)
	if err != nil {
		return nil, err
	}
	if err := validation.MatchKind(req.MatchKind); err != nil {
		return nil, err
	}
	if err := validation.RulePriority(req.Priority); err != nil {
		return nil, err
	}
	category, err := h.Categories.Get(req.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperr.NotFound("category")
	}
	return &models.Rule{
		Pattern:    pattern,
		MatchKind:  req.MatchKind,
		CategoryID: req.CategoryID,
		Priority:   req.Priority,
	}, nil
}

// Schedules

func (h *Handlers) listSchedules(json.RawMessage) (any, error) {
	schedules, err := h.Schedules.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		out = append(out, scheduleToDTO(&schedules[i]))
	}
	return out, nil
}

func (h *Handlers) createSchedule(params json.RawMessage) (any, error) {
	req, err := decode[dto.ScheduleRequest](params)
	if err != nil {
		return nil, err
	}
	if err := validateSchedule(req); err != nil {
		return nil, err
	}
	schedule := &models.FocusSchedule{
		DaysOfWeek:        req.DaysOfWeek,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		DistractionBudget: req.DistractionBudgetSecs,
		Enabled:           true,
	}
	if err := h.Schedules.Create(schedule); err != nil {
		return nil, err
	}
	return scheduleToDTO(schedule), nil
}

func (h *Handlers) updateSchedule(params json.RawMessage) (any, error) {
	req, err := decode[dto.ScheduleRequest](params)
	if err != nil {
		return nil, err
	}
	if err := validateSchedule(req); err != nil {
		return nil, err
	}
	existing, err := h.Schedules.Get(req.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.NotFound("schedule")
	}
	schedule := &models.FocusSchedule{
		ID:                req.ID,
		DaysOfWeek:        req.DaysOfWeek,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		DistractionBudget: req.DistractionBudgetSecs,
		Enabled:           req.Enabled,
	}
	if err := h.Schedules.Update(schedule); err != nil {
		return nil, err
	}
	return scheduleToDTO(schedule), nil
}

func (h *Handlers) deleteSchedule(params json.RawMessage) (any, error) {
	req, err := decode[dto.DeleteRequest](params)
	if err != nil {
		return nil, err
	}
	deleted, err := h.Schedules.Delete(req.ID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, apperr.NotFound("schedule")
	}
	return nil, nil
}

func validateSchedule(req dto.ScheduleRequest) error {
	if err := validation.TimeFormat(req.StartTime); err != nil {
		return err
	}
	if err := validation.TimeFormat(req.EndTime); err != nil {
		return err
	}
	if err := validation.DaysOfWeek(req.DaysOfWeek); err != nil {
		return err
	}
	return validation.BudgetSecs(req.DistractionBudgetSecs)
}

// Stats

func (h *Handlers) getTodayStats(json.RawMessage) (any, error) {
	return h.Stats.Today()
}

func (h *Handlers) getWeeklyStats(json.RawMessage) (any, error) {
	return h.Stats.Weekly()
}

// DTO mapping

func sessionToDTO(s *models.FocusSession) dto.FocusSessionResponse {
	return dto.FocusSessionResponse{
		ID:                s.ID,
		StartedAt:         s.StartedAt,
		EndedAt:           s.EndedAt,
		Scheduled:         s.Scheduled,
		DistractionBudget: s.DistractionBudget,
		DistractionUsed:   s.DistractionUsed,
	}
}

func ruleToDTO(r *models.Rule) dto.RuleResponse {
	return dto.RuleResponse{
		ID:         r.ID,
		Pattern:    r.Pattern,
		MatchKind:  r.MatchKind,
		CategoryID: r.CategoryID,
		Priority:   r.Priority,
	}
}

func scheduleToDTO(s *models.FocusSchedule) dto.ScheduleResponse {
	return dto.ScheduleResponse{
		ID:                    s.ID,
		DaysOfWeek:            s.DaysOfWeek,
		StartTime:             s.StartTime,
		EndTime:               s.EndTime,
		DistractionBudgetSecs: s.DistractionBudget,
		Enabled:               s.Enabled,
	}
}

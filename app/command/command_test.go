package command

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"foxus/app/apperr"
	"foxus/app/db"
	"foxus/app/dto"
	"foxus/app/repo"
	"foxus/app/services"
	"foxus/app/wallclock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) (*Registry, *Handlers) {
	t.Helper()
	gdb, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	categories := repo.NewCategoryRepository(gdb)
	rules := repo.NewRuleRepository(gdb)
	activities := repo.NewActivityRepository(gdb)
	sessions := repo.NewFocusSessionRepository(gdb)
	schedules := repo.NewFocusScheduleRepository(gdb)

	categorizer, err := services.NewCategorizer(rules, categories)
	require.NoError(t, err)
	clock := wallclock.SystemClock{}

	h := &Handlers{
		Focus:       services.NewFocusService(sessions, schedules, rules, clock),
		Categorizer: categorizer,
		Stats:       services.NewStatsService(activities, categories, clock),
		Categories:  categories,
		Rules:       rules,
		Schedules:   schedules,
	}
	reg := NewRegistry()
	h.RegisterAll(reg)
	return reg, h
}

func call(t *testing.T, reg *Registry, method string, params any) Response {
	t.Helper()
	var raw json.RawMessage
	if params != nil {
		b, err := json.Marshal(params)
		require.NoError(t, err)
		raw = b
	}
	return Dispatch(reg, Request{Method: method, Params: raw})
}

func TestUnknownCommand(t *testing.T) {
	reg, _ := newTestRegistry(t)
	resp := call(t, reg, "summon_demons", nil)
	assert.False(t, resp.OK)
	assert.Equal(t, "unknown command", resp.Error)
}

func TestValidationErrorsSurface(t *testing.T) {
	reg, _ := newTestRegistry(t)

	resp := call(t, reg, "start_focus_session", dto.StartSessionRequest{BudgetMinutes: -1})
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Error, "positive")

	resp = call(t, reg, "start_focus_session", nil)
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Error, "missing parameters")
}

func TestInternalErrorsCollapse(t *testing.T) {
	reg := NewRegistry()
	reg.Register("boom", func(json.RawMessage) (any, error) {
		return nil, errors.New("sqlite disk io failure at page 512")
	})

	resp := Dispatch(reg, Request{Method: "boom"})
	assert.False(t, resp.OK)
	assert.Equal(t, "command failed", resp.Error)
}

func TestFocusSessionCommands(t *testing.T) {
	reg, _ := newTestRegistry(t)

	resp := call(t, reg, "start_focus_session", dto.StartSessionRequest{BudgetMinutes: 5})
	require.True(t, resp.OK, resp.Error)
	session := resp.Data.(dto.FocusSessionResponse)
	assert.Equal(t, 300, session.DistractionBudget)
	assert.False(t, session.Scheduled)

	resp = call(t, reg, "get_focus_state", nil)
	require.True(t, resp.OK, resp.Error)
	state := resp.Data.(dto.FocusStateResponse)
	assert.True(t, state.Active)
	assert.Equal(t, 300, state.BudgetRemaining)

	resp = call(t, reg, "end_focus_session", nil)
	require.True(t, resp.OK, resp.Error)

	resp = call(t, reg, "get_focus_state", nil)
	require.True(t, resp.OK)
	state = resp.Data.(dto.FocusStateResponse)
	assert.False(t, state.Active)
}

func TestCategoryNameConflict(t *testing.T) {
	reg, _ := newTestRegistry(t)

	resp := call(t, reg, "create_category", dto.CategoryRequest{Name: "Writing", Productivity: 1})
	require.True(t, resp.OK, resp.Error)

	resp = call(t, reg, "create_category", dto.CategoryRequest{Name: "Writing", Productivity: 0})
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Error, "already exists")
}

func TestDeleteReferencedCategoryRejected(t *testing.T) {
	reg, h := newTestRegistry(t)

	coding, err := h.Categories.FindByName("Coding")
	require.NoError(t, err)
	require.NotNil(t, coding)

	resp := call(t, reg, "delete_category", dto.DeleteRequest{ID: coding.ID})
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Error, "in use")
}

func TestDeleteUnreferencedCategory(t *testing.T) {
	reg, _ := newTestRegistry(t)

	resp := call(t, reg, "create_category", dto.CategoryRequest{Name: "Empty", Productivity: 0})
	require.True(t, resp.OK, resp.Error)
	created := resp.Data.(dto.CategoryResponse)

	resp = call(t, reg, "delete_category", dto.DeleteRequest{ID: created.ID})
	assert.True(t, resp.OK, resp.Error)

	resp = call(t, reg, "delete_category", dto.DeleteRequest{ID: created.ID})
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Error, "not found")
}

func TestRuleCreateReloadsCategorizer(t *testing.T) {
	reg, h := newTestRegistry(t)

	coding, err := h.Categories.FindByName("Coding")
	require.NoError(t, err)
	require.NotNil(t, coding)

	resp := call(t, reg, "create_rule", dto.RuleRequest{
		Pattern:    "obsidian",
		MatchKind:  "app",
		CategoryID: coding.ID,
		Priority:   50,
	})
	require.True(t, resp.OK, resp.Error)
	created := resp.Data.(dto.RuleResponse)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "obsidian", created.Pattern)
	assert.Equal(t, coding.ID, created.CategoryID)

	// New rule is live without an explicit reload.
	assert.Equal(t, coding.ID, h.Categorizer.CategorizeApp("Obsidian", ""))

	resp = call(t, reg, "list_rules", nil)
	require.True(t, resp.OK, resp.Error)
	rules := resp.Data.([]dto.RuleResponse)
	var found bool
	for _, r := range rules {
		if r.ID == created.ID {
			found = true
			assert.Equal(t, "app", r.MatchKind)
			assert.Equal(t, 50, r.Priority)
		}
	}
	assert.True(t, found)
}

func TestRuleRejectsMissingCategory(t *testing.T) {
	reg, _ := newTestRegistry(t)

	resp := call(t, reg, "create_rule", dto.RuleRequest{
		Pattern:    "orphan",
		MatchKind:  "app",
		CategoryID: 9999,
		Priority:   10,
	})
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Error, "not found")
}

func TestScheduleValidation(t *testing.T) {
	reg, _ := newTestRegistry(t)

	resp := call(t, reg, "create_schedule", dto.ScheduleRequest{
		DaysOfWeek:            "1,2,3",
		StartTime:             "9:00",
		EndTime:               "17:00",
		DistractionBudgetSecs: 300,
	})
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Error, "HH:MM")

	resp = call(t, reg, "create_schedule", dto.ScheduleRequest{
		DaysOfWeek:            "1,2,3",
		StartTime:             "09:00",
		EndTime:               "17:00",
		DistractionBudgetSecs: 300,
	})
	require.True(t, resp.OK, resp.Error)
	created := resp.Data.(dto.ScheduleResponse)
	assert.True(t, created.Enabled)

	resp = call(t, reg, "list_schedules", nil)
	require.True(t, resp.OK)
	schedules := resp.Data.([]dto.ScheduleResponse)
	assert.Len(t, schedules, 1)
}

func TestErrorMapping(t *testing.T) {
	// Sentinel-wrapped errors keep their message across the boundary.
	assert.Equal(t, "category not found",
		userFacing("x", apperr.NotFound("category")))
	assert.Equal(t, "invalid input: bad input",
		userFacing("x", apperr.Invalidf("bad input")))
	assert.Equal(t, "command failed",
		userFacing("x", errors.New("stack trace with secrets")))
}

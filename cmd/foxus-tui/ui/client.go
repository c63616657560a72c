package ui

import (
	"encoding/json"
	"fmt"
	"sync"

	"foxus/app/dto"
	"foxus/network"
)

// wireResponse mirrors the daemon's reply frame with the payload kept
// raw so each caller can decode its own shape.
type wireResponse struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error string          `json:"error,omitempty"`
}

type wireRequest struct {
	Method string `json:"method"`
	Params any    `json:"params,omitempty"`
}

// Session is the TUI's connection to the daemon. Calls are
// request/response, serialized under a lock because the TUI can fire
// several refreshes off one keypress.
type Session struct {
	mu     sync.Mutex
	client *network.Client
}

func NewSession(host string, port int) (*Session, error) {
	client, err := network.Dial(host, port)
	if err != nil {
		return nil, err
	}
	return &Session{client: client}, nil
}

func (s *Session) Close() {
	if s.client != nil {
		s.client.Close()
	}
}

func (s *Session) call(method string, params any, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var resp wireResponse
	if err := s.client.Call(wireRequest{Method: method, Params: params}, &resp); err != nil {
		return err
	}
	if !resp.OK {
		return fmt.Errorf("%s", resp.Error)
	}
	if out != nil && len(resp.Data) > 0 {
		return json.Unmarshal(resp.Data, out)
	}
	return nil
}

func (s *Session) FocusState() (dto.FocusStateResponse, error) {
	var out dto.FocusStateResponse
	err := s.call("get_focus_state", nil, &out)
	return out, err
}

func (s *Session) StartSession(budgetMinutes int) error {
	return s.call("start_focus_session", dto.StartSessionRequest{BudgetMinutes: budgetMinutes}, nil)
}

func (s *Session) EndSession() error {
	return s.call("end_focus_session", nil, nil)
}

func (s *Session) TodayStats() (dto.StatsResponse, error) {
	var out dto.StatsResponse
	err := s.call("get_today_stats", nil, &out)
	return out, err
}

func (s *Session) WeeklyStats() (dto.WeeklyStatsResponse, error) {
	var out dto.WeeklyStatsResponse
	err := s.call("get_weekly_stats", nil, &out)
	return out, err
}

func (s *Session) ListRules() ([]dto.RuleResponse, error) {
	var out []dto.RuleResponse
	err := s.call("list_rules", nil, &out)
	return out, err
}

func (s *Session) ListCategories() ([]dto.CategoryResponse, error) {
	var out []dto.CategoryResponse
	err := s.call("list_categories", nil, &out)
	return out, err
}

func (s *Session) ListSchedules() ([]dto.ScheduleResponse, error) {
	var out []dto.ScheduleResponse
	err := s.call("list_schedules", nil, &out)
	return out, err
}

package dto

type FocusStateResponse struct {
	Active              bool     `json:"active"`
	BudgetRemaining     int      `json:"budget_remaining"`
	BlockedDomains      []string `json:"blocked_domains"`
	SessionDurationSecs *int64   `json:"session_duration_secs,omitempty"`
}

type StartSessionRequest struct {
	BudgetMinutes int `json:"budget_minutes"`
}

type FocusSessionResponse struct {
	ID                uint   `json:"id"`
	StartedAt         int64  `json:"started_at"`
	EndedAt           *int64 `json:"ended_at,omitempty"`
	Scheduled         bool   `json:"scheduled"`
	DistractionBudget int    `json:"distraction_budget"`
	DistractionUsed   int    `json:"distraction_used"`
}

type ScheduleRequest struct {
	ID                    uint   `json:"id,omitempty"`
	DaysOfWeek            string `json:"days_of_week"`
	StartTime             string `json:"start_time"`
	EndTime               string `json:"end_time"`
	DistractionBudgetSecs int    `json:"distraction_budget_secs"`
	Enabled               bool   `json:"enabled"`
}

type ScheduleResponse struct {
	ID                    uint   `json:"id"`
	DaysOfWeek            string `json:"days_of_week"`
	StartTime             string `json:"start_time"`
	EndTime               string `json:"end_time"`
	DistractionBudgetSecs int    `json:"distraction_budget_secs"`
	Enabled               bool   `json:"enabled"`
}

type UseDistractionRequest struct {
	Secs int `json:"secs"`
}

type UseDistractionResponse struct {
	Active    bool `json:"active"`
	Remaining int  `json:"remaining"`
}

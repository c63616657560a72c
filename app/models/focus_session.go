package models

// FocusSession is one stretch of focus time. At most one session has a
// nil EndedAt at any time; the focus service ends the previous session
// before starting a new one.
type FocusSession struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	StartedAt         int64  `gorm:"not null" json:"started_at"`
	EndedAt           *int64 `gorm:"index" json:"ended_at,omitempty"`
	Scheduled         bool   `gorm:"default:false" json:"scheduled"`
	DistractionBudget int    `gorm:"not null" json:"distraction_budget"`
	DistractionUsed   int    `gorm:"default:0" json:"distraction_used"`
}

// BudgetRemaining floors at zero even if used time overshot the budget.
func (s *FocusSession) BudgetRemaining() int {
	if rem := s.DistractionBudget - s.DistractionUsed; rem > 0 {
		return rem
	}
	return 0
}

func (s *FocusSession) BudgetExhausted() bool {
	return s.DistractionUsed >= s.DistractionBudget
}

func (s *FocusSession) Active() bool { return s.EndedAt == nil }

package repo

import (
	"errors"
	"fmt"

	"foxus/app/apperr"
	"foxus/app/models"

	"gorm.io/gorm"
)

type FocusSessionRepository struct {
	db *gorm.DB
}

func NewFocusSessionRepository(db *gorm.DB) *FocusSessionRepository {
	return &FocusSessionRepository{db: db}
}

func (r *FocusSessionRepository) Create(s *models.FocusSession) error {
	return r.db.Create(s).Error
}

// FindActive returns the most recent session with no end timestamp, or
// nil when focus mode is off.
func (r *FocusSessionRepository) FindActive() (*models.FocusSession, error) {
	var s models.FocusSession
	err := r.db.Where("ended_at IS NULL").Order("started_at DESC").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, err
}

// End stamps the session terminal. Fails on a session that was never
// persisted; that is a programming error, not a user condition.
func (r *FocusSessionRepository) End(s *models.FocusSession, endedAt int64) error {
	if s.ID == 0 {
		return fmt.Errorf("end session: %w", apperr.ErrUnsaved)
	}
	s.EndedAt = &endedAt
	return r.db.Model(&models.FocusSession{}).
		Where("id = ?", s.ID).
		Update("ended_at", endedAt).Error
}

// AddDistractionTime monotonically increases the session's used time
// and persists it.
func (r *FocusSessionRepository) AddDistractionTime(s *models.FocusSession, secs int) error {
	if s.ID == 0 {
		return fmt.Errorf("add distraction time: %w", apperr.ErrUnsaved)
	}
	s.DistractionUsed += secs
	return r.db.Model(&models.FocusSession{}).
		Where("id = ?", s.ID).
		Update("distraction_used", s.DistractionUsed).Error
}

package repo

import (
	"errors"

	"foxus/app/models"

	"gorm.io/gorm"
)

type FocusScheduleRepository struct {
	db *gorm.DB
}

func NewFocusScheduleRepository(db *gorm.DB) *FocusScheduleRepository {
	return &FocusScheduleRepository{db: db}
}

func (r *FocusScheduleRepository) Create(s *models.FocusSchedule) error {
	return r.db.Create(s).Error
}

func (r *FocusScheduleRepository) Get(id uint) (*models.FocusSchedule, error) {
	var s models.FocusSchedule
	err := r.db.First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, err
}

func (r *FocusScheduleRepository) List() ([]models.FocusSchedule, error) {
	var schedules []models.FocusSchedule
	err := r.db.Order("start_time").Find(&schedules).Error
	return schedules, err
}

// ListEnabled returns enabled schedules in id order; when two schedules
// overlap the lower id wins, which is stable but otherwise arbitrary.
func (r *FocusScheduleRepository) ListEnabled() ([]models.FocusSchedule, error) {
	var schedules []models.FocusSchedule
	err := r.db.Where("enabled = ?", true).Order("id").Find(&schedules).Error
	return schedules, err
}

func (r *FocusScheduleRepository) Update(s *models.FocusSchedule) error {
	return r.db.Save(s).Error
}

func (r *FocusScheduleRepository) Delete(id uint) (bool, error) {
	res := r.db.Delete(&models.FocusSchedule{}, id)
	return res.RowsAffected > 0, res.Error
}

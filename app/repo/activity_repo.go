package repo

import (
	"foxus/app/models"

	"gorm.io/gorm"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(a *models.Activity) error {
	return r.db.Create(a).Error
}

func (r *ActivityRepository) FindInRange(start, end int64) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.Where("timestamp >= ? AND timestamp < ?", start, end).
		Order("timestamp").
		Find(&activities).Error
	return activities, err
}

type CategoryDuration struct {
	CategoryID uint
	TotalSecs  int
}

// DurationByCategory sums sample durations per category over
// [start, end). Samples with no category are skipped.
func (r *ActivityRepository) DurationByCategory(start, end int64) ([]CategoryDuration, error) {
	var totals []CategoryDuration
	err := r.db.Model(&models.Activity{}).
		Select("category_id AS category_id, SUM(duration_secs) AS total_secs").
		Where("timestamp >= ? AND timestamp < ? AND category_id IS NOT NULL", start, end).
		Group("category_id").
		Scan(&totals).Error
	return totals, err
}

type AppDuration struct {
	AppName      string
	TotalSecs    int
	Productivity int
}

// TopApps returns the most-used app names in [start, end) by summed
// duration, carrying each app's category productivity sign.
func (r *ActivityRepository) TopApps(start, end int64, limit int) ([]AppDuration, error) {
	var apps []AppDuration
	err := r.db.Model(&models.Activity{}).
		Select("activities.app_name AS app_name, SUM(activities.duration_secs) AS total_secs, COALESCE(categories.productivity, 0) AS productivity").
		Joins("LEFT JOIN categories ON categories.id = activities.category_id").
		Where("activities.timestamp >= ? AND activities.timestamp < ? AND activities.app_name IS NOT NULL", start, end).
		Group("activities.app_name").
		Order("total_secs DESC").
		Limit(limit).
		Scan(&apps).Error
	return apps, err
}

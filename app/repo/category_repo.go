package repo

import (
	"errors"

	"foxus/app/models"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(c *models.Category) error {
	return r.db.Create(c).Error
}

func (r *CategoryRepository) Get(id uint) (*models.Category, error) {
	var c models.Category
	err := r.db.First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *CategoryRepository) FindByName(name string) (*models.Category, error) {
	var c models.Category
	err := r.db.Where("name = ?", name).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *CategoryRepository) List() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Order("name").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) Update(id uint, updates map[string]any) error {
	return r.db.Model(&models.Category{}).Where("id = ?", id).Updates(updates).Error
}

func (r *CategoryRepository) Delete(id uint) (bool, error) {
	res := r.db.Delete(&models.Category{}, id)
	return res.RowsAffected > 0, res.Error
}

// ReferenceCount reports how many rules and activities still point at
// the category; deletion is blocked while it is non-zero.
func (r *CategoryRepository) ReferenceCount(id uint) (int64, error) {
	var rules int64
	if err := r.db.Model(&models.Rule{}).Where("category_id = ?", id).Count(&rules).Error; err != nil {
		return 0, err
	}
	var activities int64
	if err := r.db.Model(&models.Activity{}).Where("category_id = ?", id).Count(&activities).Error; err != nil {
		return 0, err
	}
	return rules + activities, nil
}

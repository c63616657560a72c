package repo

import (
	"errors"

	"foxus/app/models"

	"gorm.io/gorm"
)

type RuleRepository struct {
	db *gorm.DB
}

func NewRuleRepository(db *gorm.DB) *RuleRepository {
	return &RuleRepository{db: db}
}

func (r *RuleRepository) Create(rule *models.Rule) error {
	return r.db.Create(rule).Error
}

func (r *RuleRepository) Get(id uint) (*models.Rule, error) {
	var rule models.Rule
	err := r.db.First(&rule, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rule, err
}

// List returns every rule in creation order. The categorizer applies
// its own priority sort on top; id order is the stable tie-break.
func (r *RuleRepository) List() ([]models.Rule, error) {
	var rules []models.Rule
	err := r.db.Order("id").Find(&rules).Error
	return rules, err
}

func (r *RuleRepository) Update(id uint, updates map[string]any) error {
	return r.db.Model(&models.Rule{}).Where("id = ?", id).Updates(updates).Error
}

func (r *RuleRepository) Delete(id uint) (bool, error) {
	res := r.db.Delete(&models.Rule{}, id)
	return res.RowsAffected > 0, res.Error
}

// BlockedDomainPatterns lists every domain-kind pattern whose category
// is distracting. These gate browser traffic during a focus session.
func (r *RuleRepository) BlockedDomainPatterns() ([]string, error) {
	var patterns []string
	err := r.db.Model(&models.Rule{}).
		Joins("JOIN categories ON categories.id = rules.category_id").
		Where("rules.match_kind = ? AND categories.productivity < 0", models.MatchDomain).
		Pluck("rules.pattern", &patterns).Error
	return patterns, err
}

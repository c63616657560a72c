package models

// Productivity sign for a category: -1 distracting, 0 neutral,
// 1 productive.
const (
	ProductivityDistracting = -1
	ProductivityNeutral     = 0
	ProductivityProductive  = 1
)

// DefaultCategoryName is the fallback bucket every observation lands in
// when no rule matches.
const DefaultCategoryName = "Uncategorized"

type Category struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Productivity int    `gorm:"not null" json:"productivity"`
}

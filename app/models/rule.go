package models

// Match kinds for rules.
const (
	MatchApp    = "app"    // matched against the process/app name
	MatchDomain = "domain" // matched against a URL host
	MatchTitle  = "title"  // matched against the window title
)

// Rule maps a pattern to a category. Rules are evaluated in descending
// priority order; the first match wins. Equal priorities keep creation
// order, which is stable but not semantically meaningful.
type Rule struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Pattern    string `gorm:"size:500;not null" json:"pattern"`
	MatchKind  string `gorm:"size:32;not null;index" json:"match_kind"`
	CategoryID uint   `gorm:"index;not null" json:"category_id"`
	Priority   int    `gorm:"default:0" json:"priority"`
}

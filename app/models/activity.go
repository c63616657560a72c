package models

// Activity sources.
const (
	SourceApp     = "app"
	SourceBrowser = "browser"
)

// Activity is an append-only sample of what the user was doing.
// Created by the tracker or the native host, never mutated.
type Activity struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Timestamp    int64   `gorm:"index;not null" json:"timestamp"`
	DurationSecs int     `gorm:"not null" json:"duration_secs"`
	Source       string  `gorm:"size:16;not null" json:"source"`
	AppName      *string `gorm:"size:255" json:"app_name,omitempty"`
	WindowTitle  *string `gorm:"size:500" json:"window_title,omitempty"`
	URL          *string `gorm:"size:2000" json:"url,omitempty"`
	Domain       *string `gorm:"size:255" json:"domain,omitempty"`
	CategoryID   *uint   `gorm:"index" json:"category_id,omitempty"`
}

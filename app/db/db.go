package db

import (
	"fmt"
	"os"
	"path/filepath"

	"foxus/app/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultCategories seeds the five starter buckets on first run.
var DefaultCategories = []models.Category{
	{Name: "Coding", Productivity: models.ProductivityProductive},
	{Name: "Communication", Productivity: models.ProductivityNeutral},
	{Name: "Entertainment", Productivity: models.ProductivityDistracting},
	{Name: "Reference", Productivity: models.ProductivityProductive},
	{Name: models.DefaultCategoryName, Productivity: models.ProductivityNeutral},
}

type defaultRule struct {
	pattern   string
	matchKind string
	category  string
}

var defaultRules = []defaultRule{
	{"code", models.MatchApp, "Coding"},
	{"visual studio", models.MatchApp, "Coding"},
	{"xcode", models.MatchApp, "Coding"},
	{"intellij", models.MatchApp, "Coding"},
	{"webstorm", models.MatchApp, "Coding"},
	{"pycharm", models.MatchApp, "Coding"},
	{"terminal", models.MatchApp, "Coding"},
	{"iterm", models.MatchApp, "Coding"},
	{"github.com", models.MatchDomain, "Coding"},
	{"gitlab.com", models.MatchDomain, "Coding"},
	{"stackoverflow.com", models.MatchDomain, "Reference"},
	{"docs.rs", models.MatchDomain, "Reference"},

	{"slack", models.MatchApp, "Communication"},
	{"discord", models.MatchApp, "Communication"},
	{"mail", models.MatchApp, "Communication"},
	{"outlook", models.MatchApp, "Communication"},
	{"teams", models.MatchApp, "Communication"},
	{"zoom", models.MatchApp, "Communication"},

	{"youtube.com", models.MatchDomain, "Entertainment"},
	{"netflix.com", models.MatchDomain, "Entertainment"},
	{"twitter.com", models.MatchDomain, "Entertainment"},
	{"x.com", models.MatchDomain, "Entertainment"},
	{"reddit.com", models.MatchDomain, "Entertainment"},
	{"facebook.com", models.MatchDomain, "Entertainment"},
	{"instagram.com", models.MatchDomain, "Entertainment"},
	{"tiktok.com", models.MatchDomain, "Entertainment"},
	{"twitch.tv", models.MatchDomain, "Entertainment"},
}

// Open connects to the SQLite database at path, creating parent
// directories as needed. The pool is pinned to a single connection so
// every statement is serialized through one handle.
func Open(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return gdb, nil
}

// Migrate creates the schema and seeds defaults. Failure here aborts
// startup; everything downstream assumes the schema exists.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&models.Category{},
		&models.Rule{},
		&models.Activity{},
		&models.FocusSession{},
		&models.FocusSchedule{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := seedCategories(gdb); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	if err := seedRules(gdb); err != nil {
		return fmt.Errorf("seed rules: %w", err)
	}
	return nil
}

func seedCategories(gdb *gorm.DB) error {
	var count int64
	if err := gdb.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for i := range DefaultCategories {
		c := DefaultCategories[i]
		if err := gdb.Create(&c).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedRules(gdb *gorm.DB) error {
	var count int64
	if err := gdb.Model(&models.Rule{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var categories []models.Category
	if err := gdb.Find(&categories).Error; err != nil {
		return err
	}
	byName := make(map[string]uint, len(categories))
	for _, c := range categories {
		byName[c.Name] = c.ID
	}

	for _, r := range defaultRules {
		catID, ok := byName[r.category]
		if !ok {
			continue
		}
		rule := models.Rule{
			Pattern:    r.pattern,
			MatchKind:  r.matchKind,
			CategoryID: catID,
			Priority:   10,
		}
		if err := gdb.Create(&rule).Error; err != nil {
			return err
		}
	}
	return nil
}

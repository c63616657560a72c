// Package initialize wires the application together: config, logger,
// store, repositories, services, and the command registry.
package initialize

import (
	"fmt"

	"foxus/app/command"
	"foxus/app/db"
	"foxus/app/repo"
	"foxus/app/services"
	"foxus/app/wallclock"
	"foxus/config"
	"foxus/global"
	"foxus/logger"
)

// App holds everything a binary needs after wiring.
type App struct {
	Config      config.Config
	Registry    *command.Registry
	Focus       *services.FocusService
	Categorizer *services.Categorizer
	Stats       *services.StatsService
	Activities  *repo.ActivityRepository
	Rules       *repo.RuleRepository
	Categories  *repo.CategoryRepository
	Sessions    *repo.FocusSessionRepository
	Schedules   *repo.FocusScheduleRepository
}

// Build loads config from configPath, opens the store, and constructs
// the service graph. The returned App is ready to serve.
func Build(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	global.Config = cfg

	if err := logger.Init(cfg.LogPath); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	global.Logger = logger.L

	gdb, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := db.Migrate(gdb); err != nil {
		return nil, fmt.Errorf("migrate store: %w", err)
	}
	global.Db = gdb

	categories := repo.NewCategoryRepository(gdb)
	rules := repo.NewRuleRepository(gdb)
	activities := repo.NewActivityRepository(gdb)
	sessions := repo.NewFocusSessionRepository(gdb)
	schedules := repo.NewFocusScheduleRepository(gdb)

	categorizer, err := services.NewCategorizer(rules, categories)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	clock := wallclock.SystemClock{}
	focus := services.NewFocusService(sessions, schedules, rules, clock)
	stats := services.NewStatsService(activities, categories, clock)

	registry := command.NewRegistry()
	handlers := &command.Handlers{
		Focus:       focus,
		Categorizer: categorizer,
		Stats:       stats,
		Categories:  categories,
		Rules:       rules,
		Schedules:   schedules,
	}
	handlers.RegisterAll(registry)

	return &App{
		Config:      cfg,
		Registry:    registry,
		Focus:       focus,
		Categorizer: categorizer,
		Stats:       stats,
		Activities:  activities,
		Rules:       rules,
		Categories:  categories,
		Sessions:    sessions,
		Schedules:   schedules,
	}, nil
}

package services

import (
	"foxus/app/dto"
	"foxus/app/models"
	"foxus/app/repo"
	"foxus/app/wallclock"
)

// StatsService aggregates activity samples into per-day productivity
// totals. Days are epoch-aligned buckets, matching the wallclock's
// UTC-equivalent interpretation.
type StatsService struct {
	activities *repo.ActivityRepository
	categories *repo.CategoryRepository
	clock      wallclock.Clock
}

func NewStatsService(activities *repo.ActivityRepository, categories *repo.CategoryRepository, clock wallclock.Clock) *StatsService {
	if clock == nil {
		clock = wallclock.SystemClock{}
	}
	return &StatsService{activities: activities, categories: categories, clock: clock}
}

func (s *StatsService) Today() (*dto.StatsResponse, error) {
	now := s.clock.Now()
	start := wallclock.DayStart(now)

	productive, neutral, distracting, err := s.totals(start, now)
	if err != nil {
		return nil, err
	}
	topApps, err := s.topApps(start, now, 5)
	if err != nil {
		return nil, err
	}
	return &dto.StatsResponse{
		ProductiveSecs:  productive,
		NeutralSecs:     neutral,
		DistractingSecs: distracting,
		TopApps:         topApps,
	}, nil
}

func (s *StatsService) Weekly() (*dto.WeeklyStatsResponse, error) {
	now := s.clock.Now()
	todayStart := wallclock.DayStart(now)
	weekStart := todayStart - 6*wallclock.SecsPerDay

	resp := &dto.WeeklyStatsResponse{Days: make([]dto.DailyStats, 0, 7)}
	for offset := int64(0); offset < 7; offset++ {
		dayStart := weekStart + offset*wallclock.SecsPerDay
		dayEnd := dayStart + wallclock.SecsPerDay

		productive, neutral, distracting, err := s.totals(dayStart, dayEnd)
		if err != nil {
			return nil, err
		}
		resp.Days = append(resp.Days, dto.DailyStats{
			Date:            dayStart,
			ProductiveSecs:  productive,
			NeutralSecs:     neutral,
			DistractingSecs: distracting,
		})
		resp.TotalProductiveSecs += productive
		resp.TotalNeutralSecs += neutral
		resp.TotalDistractingSecs += distracting
	}

	topApps, err := s.topApps(weekStart, now, 10)
	if err != nil {
		return nil, err
	}
	resp.TopApps = topApps
	return resp, nil
}

func (s *StatsService) totals(start, end int64) (productive, neutral, distracting int, err error) {
	categories, err := s.categories.List()
	if err != nil {
		return 0, 0, 0, err
	}
	productivityByID := make(map[uint]int, len(categories))
	for _, c := range categories {
		productivityByID[c.ID] = c.Productivity
	}

	totals, err := s.activities.DurationByCategory(start, end)
	if err != nil {
		return 0, 0, 0, err
	}
	for _, t := range totals {
		switch productivityByID[t.CategoryID] {
		case models.ProductivityProductive:
			productive += t.TotalSecs
		case models.ProductivityDistracting:
			distracting += t.TotalSecs
		default:
			neutral += t.TotalSecs
		}
	}
	return productive, neutral, distracting, nil
}

func (s *StatsService) topApps(start, end int64, limit int) ([]dto.AppStat, error) {
	apps, err := s.activities.TopApps(start, end, limit)
	if err != nil {
		return nil, err
	}
	stats := make([]dto.AppStat, 0, len(apps))
	for _, a := range apps {
		stats = append(stats, dto.AppStat{
			AppName:      a.AppName,
			TotalSecs:    a.TotalSecs,
			Productivity: a.Productivity,
		})
	}
	return stats, nil
}

// Package validation rejects malformed user input before anything
// touches the store. Limits mirror what the UI exposes.
package validation

import (
	"strconv"
	"strings"

	"foxus/app/apperr"
	"foxus/app/models"
)

const (
	MaxBudgetMinutes   = 24 * 60
	MaxBudgetSecs      = 24 * 60 * 60
	MaxRulePriority    = 1000
	MaxCategoryNameLen = 100
	MaxRulePatternLen  = 500
)

// BudgetMinutes validates a session budget given in minutes and
// converts it to seconds.
func BudgetMinutes(minutes int) (int, error) {
	if minutes <= 0 {
		return 0, apperr.Invalidf("budget must be a positive number of minutes")
	}
	if minutes > MaxBudgetMinutes {
		return 0, apperr.Invalidf("budget cannot exceed %d minutes", MaxBudgetMinutes)
	}
	return minutes * 60, nil
}

func BudgetSecs(secs int) error {
	if secs < 0 {
		return apperr.Invalidf("distraction budget cannot be negative")
	}
	if secs > MaxBudgetSecs {
		return apperr.Invalidf("distraction budget cannot exceed 24 hours")
	}
	return nil
}

// TimeFormat accepts zero-padded 24-hour "HH:MM" only.
func TimeFormat(t string) error {
	if len(t) != 5 || t[2] != ':' {
		return apperr.Invalidf("time must be in HH:MM format")
	}
	hours, err := strconv.Atoi(t[0:2])
	if err != nil {
		return apperr.Invalidf("invalid hours in time %q", t)
	}
	minutes, err := strconv.Atoi(t[3:5])
	if err != nil {
		return apperr.Invalidf("invalid minutes in time %q", t)
	}
	if hours < 0 || hours > 23 {
		return apperr.Invalidf("hours must be between 00 and 23")
	}
	if minutes < 0 || minutes > 59 {
		return apperr.Invalidf("minutes must be between 00 and 59")
	}
	return nil
}

// DaysOfWeek accepts a non-empty CSV of day numbers 1..7.
func DaysOfWeek(days string) error {
	if days == "" {
		return apperr.Invalidf("at least one day must be selected")
	}
	for _, part := range strings.Split(days, ",") {
		day, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return apperr.Invalidf("invalid day number %q", strings.TrimSpace(part))
		}
		if day < 1 || day > 7 {
			return apperr.Invalidf("day must be between 1 (Monday) and 7 (Sunday), got %d", day)
		}
	}
	return nil
}

func Productivity(p int) error {
	if p < -1 || p > 1 {
		return apperr.Invalidf("productivity must be -1 (distracting), 0 (neutral), or 1 (productive)")
	}
	return nil
}

func CategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperr.Invalidf("category name cannot be empty")
	}
	if len(name) > MaxCategoryNameLen {
		return "", apperr.Invalidf("category name cannot exceed %d characters", MaxCategoryNameLen)
	}
	return name, nil
}

func RulePattern(pattern string) (string, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return "", apperr.Invalidf("pattern cannot be empty")
	}
	if len(pattern) > MaxRulePatternLen {
		return "", apperr.Invalidf("pattern cannot exceed %d characters", MaxRulePatternLen)
	}
	return pattern, nil
}

func RulePriority(priority int) error {
	if priority < 0 || priority > MaxRulePriority {
		return apperr.Invalidf("priority must be between 0 and %d", MaxRulePriority)
	}
	return nil
}

func MatchKind(kind string) error {
	switch kind {
	case models.MatchApp, models.MatchDomain, models.MatchTitle:
		return nil
	}
	return apperr.Invalidf("match kind must be one of app, domain, title")
}

package services

import (
	"sort"
	"strings"
	"sync"

	"foxus/app/models"
	"foxus/app/repo"
)

// Categorizer answers "what category does this observation belong to"
// from an immutable, priority-sorted snapshot of the rule table.
// Reload rebuilds the snapshot after rule or category edits. Lookups
// and reloads share one mutex; lookups are cheap and reloads rare, so
// no reader/writer split is needed.
type Categorizer struct {
	mu                sync.Mutex
	rules             []models.Rule
	defaultCategoryID uint

	ruleRepo     *repo.RuleRepository
	categoryRepo *repo.CategoryRepository
}

func NewCategorizer(ruleRepo *repo.RuleRepository, categoryRepo *repo.CategoryRepository) (*Categorizer, error) {
	c := &Categorizer{ruleRepo: ruleRepo, categoryRepo: categoryRepo}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload replaces the in-memory index from the store: rules whose
// category vanished are dropped, the rest sorted by priority
// descending with creation order breaking ties.
func (c *Categorizer) Reload() error {
	rules, err := c.ruleRepo.List()
	if err != nil {
		return err
	}
	categories, err := c.categoryRepo.List()
	if err != nil {
		return err
	}

	known := make(map[uint]bool, len(categories))
	defaultID := uint(1)
	for _, cat := range categories {
		known[cat.ID] = true
		if cat.Name == models.DefaultCategoryName {
			defaultID = cat.ID
		}
	}

	kept := make([]models.Rule, 0, len(rules))
	for _, r := range rules {
		if known[r.CategoryID] {
			kept = append(kept, r)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Priority > kept[j].Priority
	})

	c.mu.Lock()
	c.rules = kept
	c.defaultCategoryID = defaultID
	c.mu.Unlock()
	return nil
}

// CategorizeApp labels an app observation using app-kind rules against
// the app name and title-kind rules against the window title. The
// fallback category id is always returned when nothing matches.
func (c *Categorizer) CategorizeApp(appName, windowTitle string) uint {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range c.rules {
		switch r.MatchKind {
		case models.MatchApp:
			if patternMatches(r.Pattern, appName) {
				return r.CategoryID
			}
		case models.MatchTitle:
			if windowTitle != "" && patternMatches(r.Pattern, windowTitle) {
				return r.CategoryID
			}
		}
	}
	return c.defaultCategoryID
}

// CategorizeURL labels a browser observation using domain-kind rules.
func (c *Categorizer) CategorizeURL(domain string) uint {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range c.rules {
		if r.MatchKind == models.MatchDomain && patternMatches(r.Pattern, domain) {
			return r.CategoryID
		}
	}
	return c.defaultCategoryID
}

// patternMatches is a case-insensitive substring test. A pattern
// containing '*' is split on it and each non-empty segment must occur
// in order as disjoint substrings: "*foo*bar*" needs "foo" and then
// "bar" somewhere after it. Nothing is anchored.
func patternMatches(pattern, text string) bool {
	pattern = strings.ToLower(pattern)
	text = strings.ToLower(text)

	if !strings.Contains(pattern, "*") {
		return strings.Contains(text, pattern)
	}

	pos := 0
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		idx := strings.Index(text[pos:], part)
		if idx < 0 {
			return false
		}
		pos += idx + len(part)
	}
	return true
}

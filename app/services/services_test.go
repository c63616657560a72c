package services

import (
	"path/filepath"
	"testing"

	"foxus/app/db"
	"foxus/app/repo"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeClock is a manually advanced wallclock for deterministic tests.
type fakeClock struct {
	now int64
}

func (c *fakeClock) Now() int64 { return c.now }

func (c *fakeClock) advance(secs int64) { c.now += secs }

type testEnv struct {
	gdb        *gorm.DB
	categories *repo.CategoryRepository
	rules      *repo.RuleRepository
	activities *repo.ActivityRepository
	sessions   *repo.FocusSessionRepository
	schedules  *repo.FocusScheduleRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return &testEnv{
		gdb:        gdb,
		categories: repo.NewCategoryRepository(gdb),
		rules:      repo.NewRuleRepository(gdb),
		activities: repo.NewActivityRepository(gdb),
		sessions:   repo.NewFocusSessionRepository(gdb),
		schedules:  repo.NewFocusScheduleRepository(gdb),
	}
}

func (e *testEnv) categoryID(t *testing.T, name string) uint {
	t.Helper()
	c, err := e.categories.FindByName(name)
	require.NoError(t, err)
	require.NotNil(t, c, "category %s not seeded", name)
	return c.ID
}

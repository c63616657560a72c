package services

import (
	"testing"

	"foxus/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorizeAppSeededRules(t *testing.T) {
	env := newTestEnv(t)
	c, err := NewCategorizer(env.rules, env.categories)
	require.NoError(t, err)

	coding := env.categoryID(t, "Coding")
	communication := env.categoryID(t, "Communication")
	uncategorized := env.categoryID(t, models.DefaultCategoryName)

	// Case-insensitive substring match on the app name.
	assert.Equal(t, coding, c.CategorizeApp("Visual Studio Code", ""))
	assert.Equal(t, coding, c.CategorizeApp("ITERM2", ""))
	assert.Equal(t, communication, c.CategorizeApp("Slack", ""))

	// Nothing matches: fall back to the default category.
	assert.Equal(t, uncategorized, c.CategorizeApp("Blender", ""))
}

func TestCategorizeURLSeededRules(t *testing.T) {
	env := newTestEnv(t)
	c, err := NewCategorizer(env.rules, env.categories)
	require.NoError(t, err)

	coding := env.categoryID(t, "Coding")
	entertainment := env.categoryID(t, "Entertainment")
	uncategorized := env.categoryID(t, models.DefaultCategoryName)

	assert.Equal(t, coding, c.CategorizeURL("github.com"))
	assert.Equal(t, entertainment, c.CategorizeURL("www.reddit.com"))
	assert.Equal(t, uncategorized, c.CategorizeURL("example.org"))
}

func TestPriorityOrderWins(t *testing.T) {
	env := newTestEnv(t)
	entertainment := env.categoryID(t, "Entertainment")

	// "code" matches the seeded Coding rule at priority 10; a higher
	// priority rule on the same text must win.
	require.NoError(t, env.rules.Create(&models.Rule{
		Pattern:    "fancy editor",
		MatchKind:  models.MatchApp,
		CategoryID: entertainment,
		Priority:   100,
	}))

	c, err := NewCategorizer(env.rules, env.categories)
	require.NoError(t, err)
	assert.Equal(t, entertainment, c.CategorizeApp("Fancy Editor Pro Code", ""))
}

func TestEqualPriorityBreaksByCreationOrder(t *testing.T) {
	env := newTestEnv(t)
	coding := env.categoryID(t, "Coding")
	entertainment := env.categoryID(t, "Entertainment")

	require.NoError(t, env.rules.Create(&models.Rule{
		Pattern: "ambiguous", MatchKind: models.MatchApp, CategoryID: coding, Priority: 42,
	}))
	require.NoError(t, env.rules.Create(&models.Rule{
		Pattern: "ambiguous", MatchKind: models.MatchApp, CategoryID: entertainment, Priority: 42,
	}))

	c, err := NewCategorizer(env.rules, env.categories)
	require.NoError(t, err)
	assert.Equal(t, coding, c.CategorizeApp("ambiguous app", ""))
}

func TestTitleRulesNeedATitle(t *testing.T) {
	env := newTestEnv(t)
	entertainment := env.categoryID(t, "Entertainment")
	uncategorized := env.categoryID(t, models.DefaultCategoryName)

	require.NoError(t, env.rules.Create(&models.Rule{
		Pattern: "gaming", MatchKind: models.MatchTitle, CategoryID: entertainment, Priority: 50,
	}))

	c, err := NewCategorizer(env.rules, env.categories)
	require.NoError(t, err)

	assert.Equal(t, entertainment, c.CategorizeApp("browser", "Gaming stream"))
	assert.Equal(t, uncategorized, c.CategorizeApp("browser", ""))
}

func TestWildcardPatterns(t *testing.T) {
	env := newTestEnv(t)
	coding := env.categoryID(t, "Coding")
	uncategorized := env.categoryID(t, models.DefaultCategoryName)

	require.NoError(t, env.rules.Create(&models.Rule{
		Pattern: "*.github.*", MatchKind: models.MatchDomain, CategoryID: coding, Priority: 50,
	}))

	c, err := NewCategorizer(env.rules, env.categories)
	require.NoError(t, err)

	// Segments must appear in order as disjoint substrings. The
	// ".github." segment needs both dots, so githubusercontent does
	// not match.
	assert.Equal(t, coding, c.CategorizeURL("www.github.com"))
	assert.Equal(t, coding, c.CategorizeURL("gist.github.io"))
	assert.Equal(t, uncategorized, c.CategorizeURL("sourcehut.org"))
	assert.Equal(t, uncategorized, c.CategorizeURL("raw.githubusercontent.com"))
	assert.Equal(t, uncategorized, c.CategorizeURL(".github"))

	require.NoError(t, env.rules.Create(&models.Rule{
		Pattern: "docs*rust", MatchKind: models.MatchDomain, CategoryID: coding, Priority: 60,
	}))
	require.NoError(t, c.Reload())
	assert.Equal(t, coding, c.CategorizeURL("docs.rust-lang.org"))
	// Segments out of order do not match.
	assert.Equal(t, uncategorized, c.CategorizeURL("rust.docs.example"))
}

func TestReloadPicksUpRuleChanges(t *testing.T) {
	env := newTestEnv(t)
	c, err := NewCategorizer(env.rules, env.categories)
	require.NoError(t, err)

	coding := env.categoryID(t, "Coding")
	uncategorized := env.categoryID(t, models.DefaultCategoryName)

	assert.Equal(t, uncategorized, c.CategorizeApp("newtool", ""))

	require.NoError(t, env.rules.Create(&models.Rule{
		Pattern: "newtool", MatchKind: models.MatchApp, CategoryID: coding, Priority: 10,
	}))

	// The snapshot is stale until a reload.
	assert.Equal(t, uncategorized, c.CategorizeApp("newtool", ""))
	require.NoError(t, c.Reload())
	assert.Equal(t, coding, c.CategorizeApp("newtool", ""))
}

func TestFallbackWhenDefaultCategoryMissing(t *testing.T) {
	env := newTestEnv(t)
	uncategorized, err := env.categories.FindByName(models.DefaultCategoryName)
	require.NoError(t, err)
	require.NotNil(t, uncategorized)
	require.NoError(t, env.gdb.Delete(uncategorized).Error)

	c, err := NewCategorizer(env.rules, env.categories)
	require.NoError(t, err)
	assert.Equal(t, uint(1), c.CategorizeApp("unmatched", ""))
}

func TestOrphanedRulesDropped(t *testing.T) {
	env := newTestEnv(t)
	uncategorized := env.categoryID(t, models.DefaultCategoryName)

	orphan := &models.Rule{
		Pattern: "ghost", MatchKind: models.MatchApp, CategoryID: 9999, Priority: 500,
	}
	require.NoError(t, env.gdb.Create(orphan).Error)

	c, err := NewCategorizer(env.rules, env.categories)
	require.NoError(t, err)
	assert.Equal(t, uncategorized, c.CategorizeApp("ghost", ""))
}

package nativehost

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"foxus/app/db"
	"foxus/app/dto"
	"foxus/app/models"
	"foxus/app/repo"
	"foxus/app/services"
	"foxus/network"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixedClock struct {
	now int64
}

func (c *fixedClock) Now() int64 { return c.now }

type hostFixture struct {
	host       *Host
	focus      *services.FocusService
	activities *repo.ActivityRepository
	clock      *fixedClock
	gdb        *gorm.DB
}

func newHostFixture(t *testing.T) *hostFixture {
	t.Helper()
	gdb, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	categories := repo.NewCategoryRepository(gdb)
	rules := repo.NewRuleRepository(gdb)
	activities := repo.NewActivityRepository(gdb)
	sessions := repo.NewFocusSessionRepository(gdb)
	schedules := repo.NewFocusScheduleRepository(gdb)

	clock := &fixedClock{now: 100000}
	categorizer, err := services.NewCategorizer(rules, categories)
	require.NoError(t, err)
	focus := services.NewFocusService(sessions, schedules, rules, clock)

	host := New(focus, categorizer, activities)
	host.clock = clock
	return &hostFixture{host: host, focus: focus, activities: activities, clock: clock, gdb: gdb}
}

func TestExtractDomain(t *testing.T) {
	assert.Equal(t, "github.com", ExtractDomain("https://github.com/golang/go"))
	assert.Equal(t, "example.org", ExtractDomain("http://example.org"))
	assert.Equal(t, "reddit.com", ExtractDomain("reddit.com/r/golang"))
	assert.Equal(t, "localhost:3000", ExtractDomain("http://localhost:3000/app"))
	assert.Equal(t, "", ExtractDomain(""))
}

func TestActivityMessageRecordsBrowserSample(t *testing.T) {
	f := newHostFixture(t)

	reply := f.host.Handle(dto.HostIncoming{
		Type:  dto.HostMsgActivity,
		URL:   "https://github.com/golang/go",
		Title: "golang/go",
	})
	assert.Nil(t, reply)

	activities, err := f.activities.FindInRange(0, 1<<40)
	require.NoError(t, err)
	require.Len(t, activities, 1)

	a := activities[0]
	assert.Equal(t, "browser", a.Source)
	require.NotNil(t, a.Domain)
	assert.Equal(t, "github.com", *a.Domain)
	require.NotNil(t, a.CategoryID)
	assert.Equal(t, f.clock.now, a.Timestamp)
}

func TestRequestStateReply(t *testing.T) {
	f := newHostFixture(t)

	reply := f.host.Handle(dto.HostIncoming{Type: dto.HostMsgRequestState})
	state, ok := reply.(dto.HostStateReply)
	require.True(t, ok)
	assert.Equal(t, "state", state.Type)
	assert.False(t, state.FocusActive)
	assert.Contains(t, state.BlockedDomains, "reddit.com")

	_, err := f.focus.StartSession(300)
	require.NoError(t, err)

	reply = f.host.Handle(dto.HostIncoming{Type: dto.HostMsgRequestState})
	state = reply.(dto.HostStateReply)
	assert.True(t, state.FocusActive)
	assert.Equal(t, 300, state.BudgetRemaining)
}

func TestStateReplyWithoutDomainRules(t *testing.T) {
	f := newHostFixture(t)
	require.NoError(t, f.gdb.Where("1 = 1").Delete(&models.Rule{}).Error)

	reply := f.host.Handle(dto.HostIncoming{Type: dto.HostMsgRequestState})
	state, ok := reply.(dto.HostStateReply)
	require.True(t, ok)
	require.NotNil(t, state.BlockedDomains)

	// The extension expects an array on the wire, never null.
	raw, err := json.Marshal(state)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"blockedDomains":[]`)
}

func TestUseDistractionTimeReplies(t *testing.T) {
	f := newHostFixture(t)

	// No session: silently ignored.
	assert.Nil(t, f.host.Handle(dto.HostIncoming{Type: dto.HostMsgUseDistractionTime}))

	_, err := f.focus.StartSession(100)
	require.NoError(t, err)

	reply := f.host.Handle(dto.HostIncoming{Type: dto.HostMsgUseDistractionTime})
	budget, ok := reply.(dto.HostBudgetReply)
	require.True(t, ok)
	assert.Equal(t, "budget_updated", budget.Type)
	assert.Equal(t, 70, budget.Remaining)

	// Past the rate-limit window each call burns another slice; when
	// the budget hits zero the reply flips to hard_blocked.
	f.clock.now += 30
	reply = f.host.Handle(dto.HostIncoming{Type: dto.HostMsgUseDistractionTime})
	budget = reply.(dto.HostBudgetReply)
	assert.Equal(t, 40, budget.Remaining)

	f.clock.now += 30
	reply = f.host.Handle(dto.HostIncoming{Type: dto.HostMsgUseDistractionTime})
	budget = reply.(dto.HostBudgetReply)
	assert.Equal(t, 10, budget.Remaining)

	f.clock.now += 30
	reply = f.host.Handle(dto.HostIncoming{Type: dto.HostMsgUseDistractionTime})
	_, blocked := reply.(dto.HostBlockedReply)
	assert.True(t, blocked)
}

func TestUnknownMessageIgnored(t *testing.T) {
	f := newHostFixture(t)
	assert.Nil(t, f.host.Handle(dto.HostIncoming{Type: "mystery"}))
}

func TestRunOverFramedStream(t *testing.T) {
	f := newHostFixture(t)
	_, err := f.focus.StartSession(300)
	require.NoError(t, err)

	var in bytes.Buffer
	require.NoError(t, network.WriteJSON(&in, dto.HostIncoming{
		Type: dto.HostMsgActivity, URL: "https://reddit.com/r/all", Title: "reddit",
	}))
	require.NoError(t, network.WriteJSON(&in, dto.HostIncoming{Type: dto.HostMsgRequestState}))

	var out bytes.Buffer
	require.NoError(t, f.host.Run(&in, &out))

	// Only request_state produced a reply frame.
	var state dto.HostStateReply
	require.NoError(t, network.ReadJSON(&out, &state))
	assert.True(t, state.FocusActive)
	assert.Zero(t, out.Len())
}

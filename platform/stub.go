//go:build !linux

package platform

// StubTracker reports no activity; it keeps the daemon runnable on
// platforms without a native probe yet.
type StubTracker struct{}

func NewTracker() Tracker { return &StubTracker{} }

func (t *StubTracker) GetActiveWindow() *ActiveWindow { return nil }

func (t *StubTracker) GetIdleTimeSecs() int { return 0 }

// Package platform probes the desktop environment for the active
// window and user idle time. The core only consumes these probes; a
// stub keeps the daemon functional where no probe is available.
package platform

// ActiveWindow describes the foreground window at sample time.
type ActiveWindow struct {
	AppName     string
	WindowTitle string
	// Platform-specific identifier (X11 window id, bundle id), when
	// the probe can supply one.
	PlatformID string
}

// Tracker is the capability interface the sampler polls.
type Tracker interface {
	// GetActiveWindow returns nil when no window has focus or the
	// probe fails.
	GetActiveWindow() *ActiveWindow
	// GetIdleTimeSecs returns seconds since the last user input,
	// zero when unknown.
	GetIdleTimeSecs() int
}

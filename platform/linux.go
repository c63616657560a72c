//go:build linux

package platform

import (
	"os/exec"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// LinuxTracker probes X11 via xdotool/xprintidle and resolves the
// owning process name through /proc. Wayland sessions without XWayland
// report nothing, which the sampler treats as "no active window".
type LinuxTracker struct{}

func NewTracker() Tracker { return &LinuxTracker{} }

func (t *LinuxTracker) GetActiveWindow() *ActiveWindow {
	winID, err := output("xdotool", "getactivewindow")
	if err != nil || winID == "" {
		return nil
	}
	title, _ := output("xdotool", "getwindowname", winID)

	appName := ""
	if pidStr, err := output("xdotool", "getwindowpid", winID); err == nil {
		if pid, err := strconv.ParseInt(pidStr, 10, 32); err == nil {
			if proc, err := process.NewProcess(int32(pid)); err == nil {
				if name, err := proc.Name(); err == nil {
					appName = name
				}
			}
		}
	}
	if appName == "" && title == "" {
		return nil
	}
	if appName == "" {
		appName = "unknown"
	}

	return &ActiveWindow{AppName: appName, WindowTitle: title, PlatformID: winID}
}

func (t *LinuxTracker) GetIdleTimeSecs() int {
	out, err := output("xprintidle")
	if err != nil {
		return 0
	}
	millis, err := strconv.ParseInt(out, 10, 64)
	if err != nil {
		return 0
	}
	return int(millis / 1000)
}

func output(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// foxus-host is the native messaging host the browser extension
// launches. It speaks framed JSON on stdin/stdout and shares the
// daemon's store, reloading its rule set when another process edits
// the database file.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"foxus/app/services"
	"foxus/initialize"
	"foxus/logger"
	"foxus/nativehost"
)

func main() {
	cfgPath := flag.String("config", defaultConfigPath(), "Path to configuration file")
	flag.Parse()

	app, err := initialize.Build(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "foxus-host:", err)
		os.Exit(1)
	}

	stopWatch := make(chan struct{})
	defer close(stopWatch)
	go watchStore(app.Config.DBPath, app.Categorizer, stopWatch)

	host := nativehost.New(app.Focus, app.Categorizer, app.Activities)
	if err := host.Run(os.Stdin, os.Stdout); err != nil {
		logger.Errorf("native host: %v", err)
		os.Exit(1)
	}
}

// watchStore reloads the categorizer when the database file changes,
// so rule edits made in the dashboard reach the extension without a
// restart. SQLite rewrites arrive in bursts, hence the debounce.
func watchStore(dbPath string, categorizer *services.Categorizer, stop <-chan struct{}) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warnf("store watch unavailable: %v", err)
		return
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(dbPath)); err != nil {
		logger.Warnf("store watch unavailable: %v", err)
		return
	}

	var debounce <-chan time.Time
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(dbPath) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			debounce = time.After(500 * time.Millisecond)
		case <-debounce:
			debounce = nil
			if err := categorizer.Reload(); err != nil {
				logger.Errorf("reload rules: %v", err)
			} else {
				logger.Infof("rules reloaded after store change")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warnf("store watch: %v", err)
		case <-stop:
			return
		}
	}
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return home + "/.foxus/config.yaml"
}

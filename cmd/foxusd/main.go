package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foxus/app/services"
	"foxus/initialize"
	"foxus/logger"
	"foxus/platform"
	"foxus/server"
)

func main() {
	var (
		cfgPath    = flag.String("config", defaultConfigPath(), "Path to configuration file")
		noTracker  = flag.Bool("no-tracker", false, "Disable the activity tracker")
		noSchedule = flag.Bool("no-schedule", false, "Disable schedule reconciliation")
	)
	flag.Parse()

	app, err := initialize.Build(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "foxusd:", err)
		os.Exit(1)
	}

	tracker := services.NewTrackerService(
		app.Activities,
		app.Categorizer,
		platform.NewTracker(),
		services.TrackerConfig{
			PollIntervalSecs:  app.Config.Tracker.PollIntervalSecs,
			IdleThresholdSecs: app.Config.Tracker.IdleThresholdSecs,
		},
	)
	if !*noTracker {
		tracker.Start()
		defer tracker.Stop()
	}

	stopSchedules := make(chan struct{})
	if !*noSchedule {
		go scheduleLoop(app, stopSchedules)
	}

	srv := server.NewTCPServer(app.Registry)
	if err := srv.Listen(app.Config.ListenAddr()); err != nil {
		logger.Errorf("listen: %v", err)
		os.Exit(1)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigs
	logger.Infof("received %s, shutting down", sig)

	close(stopSchedules)
	if err := srv.Close(); err != nil {
		logger.Errorf("close server: %v", err)
	}
}

// scheduleLoop reconciles focus schedules on a fixed cadence, with one
// immediate pass at startup so a restart inside a window resumes the
// scheduled session right away.
func scheduleLoop(app *initialize.App, stop <-chan struct{}) {
	if err := app.Focus.CheckSchedules(); err != nil {
		logger.Errorf("schedule check: %v", err)
	}
	ticker := time.NewTicker(time.Duration(app.Config.ScheduleCheckSecs) * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := app.Focus.CheckSchedules(); err != nil {
				logger.Errorf("schedule check: %v", err)
			}
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

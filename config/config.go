package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Tracker struct {
	PollIntervalSecs  int
	IdleThresholdSecs int
}

type TCP struct {
	Host string
	Port int
}

type Config struct {
	DBPath            string
	LogPath           string
	TCP               TCP
	Tracker           Tracker
	ScheduleCheckSecs int
}

var cfg Config

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "foxus")
	}
	return filepath.Join(home, ".foxus")
}

// Load reads the YAML config at path, falling back to defaults for any
// missing key. A missing file is not an error; defaults apply.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	dataDir := defaultDataDir()
	v.SetDefault("foxus.db_path", filepath.Join(dataDir, "foxus.db"))
	v.SetDefault("foxus.log_path", "")
	v.SetDefault("foxus.tcp.host", "127.0.0.1")
	v.SetDefault("foxus.tcp.port", 9610)
	v.SetDefault("foxus.tracker.poll_interval_secs", 5)
	v.SetDefault("foxus.tracker.idle_threshold_secs", 120)
	v.SetDefault("foxus.schedule_check_secs", 60)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if _, statErr := os.Stat(path); statErr == nil {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg = Config{
		DBPath:  v.GetString("foxus.db_path"),
		LogPath: v.GetString("foxus.log_path"),
		TCP: TCP{
			Host: v.GetString("foxus.tcp.host"),
			Port: v.GetInt("foxus.tcp.port"),
		},
		Tracker: Tracker{
			PollIntervalSecs:  v.GetInt("foxus.tracker.poll_interval_secs"),
			IdleThresholdSecs: v.GetInt("foxus.tracker.idle_threshold_secs"),
		},
		ScheduleCheckSecs: v.GetInt("foxus.schedule_check_secs"),
	}
	if cfg.Tracker.PollIntervalSecs <= 0 {
		cfg.Tracker.PollIntervalSecs = 5
	}
	if cfg.Tracker.IdleThresholdSecs <= 0 {
		cfg.Tracker.IdleThresholdSecs = 120
	}
	if cfg.ScheduleCheckSecs <= 0 {
		cfg.ScheduleCheckSecs = 60
	}
	return cfg, nil
}

func Get() Config { return cfg }

func (c Config) ListenAddr() string { return fmt.Sprintf("%s:%d", c.TCP.Host, c.TCP.Port) }

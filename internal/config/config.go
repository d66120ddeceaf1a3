package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Reader
		Home
		Tasks
		Integrity
	}

	HTTP struct {
		Port int32
		Host string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver       string // "sqlite" or "postgres"
		Path         string // sqlite file path
		DSN          string // postgres connection string
		MaxOpenConns int
		MaxIdleConns int
		LogLevel     string // silent, error, warn, info
	}
	Reader struct {
		// DefaultID identifies the reader for every request until sessions exist.
		DefaultID uint
	}
	Home struct {
		PopularLimit  int
		ContinueLimit int
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Integrity struct {
		Enabled  bool
		Schedule string // Cron format: "0 * * * *" = hourly
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	v.SetDefault("database_driver", DriverSQLite)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("database_max_open_conns", 10)
	v.SetDefault("database_max_idle_conns", 5)
	v.SetDefault("database_log_level", "warn")

	v.SetDefault("reader_id", DefaultReaderID)
	v.SetDefault("home_popular_limit", 4)
	v.SetDefault("home_continue_limit", 4)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	v.SetDefault("integrity_check_enabled", true)
	v.SetDefault("integrity_check_schedule", "0 * * * *") // Hourly at :00

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver:       v.GetString("DATABASE_DRIVER"),
			Path:         v.GetString("DATABASE_PATH"),
			DSN:          v.GetString("DATABASE_DSN"),
			MaxOpenConns: v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns: v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			LogLevel:     v.GetString("DATABASE_LOG_LEVEL"),
		},
		Reader: Reader{
			DefaultID: v.GetUint("READER_ID"),
		},
		Home: Home{
			PopularLimit:  v.GetInt("HOME_POPULAR_LIMIT"),
			ContinueLimit: v.GetInt("HOME_CONTINUE_LIMIT"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Integrity: Integrity{
			Enabled:  v.GetBool("INTEGRITY_CHECK_ENABLED"),
			Schedule: v.GetString("INTEGRITY_CHECK_SCHEDULE"),
		},
	}
}

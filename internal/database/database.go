package database

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/novelzone/internal/config"
	"github.com/mrlokans/novelzone/internal/entities"
)

// Models lists every table owned by the catalog, parents first.
// The novel_genre join table is created from Novel.Genres.
var Models = []any{
	&entities.User{},
	&entities.AuthorProfile{},
	&entities.Genre{},
	&entities.Novel{},
	&entities.Chapter{},
	&entities.ReadingProgress{},
}

type Database struct {
	DB     *gorm.DB
	Driver string
}

// NewDatabase opens a sqlite catalog at dbPath with foreign keys enforced.
func NewDatabase(dbPath string) (*Database, error) {
	return Open(config.Database{
		Driver:   config.DriverSQLite,
		Path:     dbPath,
		LogLevel: "warn",
	})
}

// Open connects to the configured engine and migrates the schema.
func Open(cfg config.Database) (*Database, error) {
	dialector, driverName, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newLogger(log.New(os.Stdout, "\r\n", log.LstdFlags), parseLogLevel(cfg.LogLevel)),
		NowFunc:        nowUTC,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to database: %w", ErrStorageUnavailable, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get sql.DB: %w", ErrStorageUnavailable, err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	if err := db.AutoMigrate(Models...); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("%w: failed to migrate database: %w", ErrStorageUnavailable, err)
	}

	log.Printf("Database initialized successfully (%s)", driverName)

	return &Database{DB: db, Driver: driverName}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the engine is reachable.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return Translate(err)
	}
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return nil
}

// Tables returns the names of the migrated tables present in the engine.
func (d *Database) Tables() ([]string, error) {
	tables, err := d.DB.Migrator().GetTables()
	if err != nil {
		return nil, Translate(err)
	}
	return tables, nil
}

func dialectorFor(cfg config.Database) (gorm.Dialector, string, error) {
	switch cfg.Driver {
	case "", config.DriverSQLite:
		if cfg.Path == "" {
			return nil, "", fmt.Errorf("%w: sqlite database path is required", ErrInvalidArgument)
		}
		return sqlite.Open(sqliteDSN(cfg.Path)), config.DriverSQLite, nil
	case config.DriverPostgres:
		if cfg.DSN == "" {
			return nil, "", fmt.Errorf("%w: postgres DSN is required", ErrInvalidArgument)
		}
		return postgres.Open(cfg.DSN), config.DriverPostgres, nil
	default:
		return nil, "", fmt.Errorf("%w: unsupported database driver %q", ErrInvalidArgument, cfg.Driver)
	}
}

// sqliteDSN enables foreign keys on every pooled connection; sqlite defaults them off.
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000"
}

// nowUTC stamps auto-managed timestamps. sqlite compares stored times as text,
// so every writer must use the same offset.
func nowUTC() time.Time {
	return time.Now().UTC()
}

// newLogger mirrors logger.Default but stays quiet about lookups that find nothing;
// those are reported to callers as ErrNotFound.
func newLogger(w logger.Writer, level logger.LogLevel) logger.Interface {
	return logger.New(w, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  true,
	})
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

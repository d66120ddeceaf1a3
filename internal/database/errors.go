package database

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"github.com/mrlokans/novelzone/internal/entities"
)

// Error kinds returned by every store operation. Callers match with errors.Is.
var (
	// ErrNotFound means the requested slug, chapter or entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument means the input was rejected before querying.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrStorageUnavailable means the engine or connection failed.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrIntegrity means a write violated a uniqueness or foreign key constraint.
	ErrIntegrity = errors.New("integrity violation")
)

// Translate maps gorm, database/sql and driver errors onto the error kinds above.
// Errors that already carry a kind are returned unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrStorageUnavailable) || errors.Is(err, ErrIntegrity) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, entities.ErrValidation):
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %w", ErrIntegrity, err)
	case errors.Is(err, sql.ErrConnDone), errors.Is(err, sql.ErrTxDone), errors.Is(err, driver.ErrBadConn):
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%w: %w", ErrIntegrity, err)
	}

	return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
}

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

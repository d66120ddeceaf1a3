package http

import (
	"github.com/mrlokans/novelzone/internal/database"
	"github.com/mrlokans/novelzone/internal/database/integrity"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database
	Manager  *database.Manager

	// Application info
	Version string

	// ReaderID is injected into every request until authentication exists.
	ReaderID uint

	// Home page and listing sizes
	PopularLimit  int
	ContinueLimit int

	// Integrity checking. TaskQueue is optional.
	Monitor   *integrity.Monitor
	TaskQueue IntegrityTaskQueue
}

package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"fmt"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/novelzone/internal/database"
	"github.com/mrlokans/novelzone/internal/database/integrity"
	"github.com/mrlokans/novelzone/internal/http"
	"github.com/mrlokans/novelzone/internal/tasks"
)

// =============================================================================
// Connection Management
// =============================================================================

// HandleRunner implementations
var _ integrity.HandleRunner = (*database.Manager)(nil)

// =============================================================================
// Task Queue
// =============================================================================

// IntegrityTaskQueue implementations
var _ http.IntegrityTaskQueue = (*tasks.Client)(nil)

// Task implementations
var _ backlite.Task = tasks.VerifyIntegrityTask{}

// =============================================================================
// Reports
// =============================================================================

var _ fmt.Stringer = (*integrity.Report)(nil)

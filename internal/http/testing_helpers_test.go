package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/novelzone/internal/database"
	"github.com/mrlokans/novelzone/internal/database/integrity"
	"github.com/mrlokans/novelzone/internal/database/seed"
)

type testEnv struct {
	db      *database.Database
	manager *database.Manager
	seed    *seed.Result
	monitor *integrity.Monitor
	router  *gin.Engine
}

// setupTestEnv creates a seeded catalog and a router over it.
// Pass a non-nil queue to enable the task endpoints.
func setupTestEnv(t *testing.T, queue IntegrityTaskQueue) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "http.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	res, err := seed.Run(db.DB, seed.Options{})
	require.NoError(t, err)

	manager, err := database.NewManager(db)
	require.NoError(t, err)

	monitor := integrity.NewMonitor()
	router := NewRouter(RouterConfig{
		Database:      db,
		Manager:       manager,
		Version:       "test",
		ReaderID:      res.ReaderID,
		PopularLimit:  4,
		ContinueLimit: 4,
		Monitor:       monitor,
		TaskQueue:     queue,
	})

	return &testEnv{db: db, manager: manager, seed: res, monitor: monitor, router: router}
}

func (e *testEnv) do(t *testing.T, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req, err := http.NewRequest(method, path, nil)
	require.NoError(t, err)
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

package entrypoint

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/novelzone/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.NewConfig()
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.Path = filepath.Join(t.TempDir(), "app.db")
	cfg.Database.LogLevel = "silent"
	return cfg
}

func TestNewApp(t *testing.T) {
	t.Run("wires tasks and scheduler when enabled", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Tasks.Enabled = true
		cfg.Integrity.Enabled = true

		app, err := NewApp(cfg, "test")
		require.NoError(t, err)
		defer app.Close()

		assert.NotNil(t, app.Tasks)
		assert.NotNil(t, app.Scheduler)

		require.NoError(t, app.Start(context.Background()))
		assert.True(t, app.Scheduler.IsRunning())

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		app.Shutdown(ctx)
		assert.False(t, app.Scheduler.IsRunning())
	})

	t.Run("runs without optional components", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Tasks.Enabled = false
		cfg.Integrity.Enabled = false

		app, err := NewApp(cfg, "test")
		require.NoError(t, err)
		defer app.Close()

		assert.Nil(t, app.Tasks)
		assert.Nil(t, app.Scheduler)
		require.NoError(t, app.Start(context.Background()))
		app.Shutdown(context.Background())

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/admin/integrity/run", nil)
		app.Router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("rejects an invalid schedule on start", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Tasks.Enabled = false
		cfg.Integrity.Enabled = true
		cfg.Integrity.Schedule = "whenever"

		app, err := NewApp(cfg, "test")
		require.NoError(t, err)
		defer app.Close()

		assert.Error(t, app.Start(context.Background()))
	})

	t.Run("fails for an unreachable database", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Database.Path = filepath.Join(t.TempDir(), "missing", "app.db")

		_, err := NewApp(cfg, "test")
		assert.Error(t, err)
	})
}

func TestApp_ServesCatalog(t *testing.T) {
	cfg := testConfig(t)
	cfg.Tasks.Enabled = false
	cfg.Integrity.Enabled = false

	app, err := NewApp(cfg, "test")
	require.NoError(t, err)
	defer app.Close()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	app.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"popular_novels":[],"continue_reading":[]}`, w.Body.String())
}

func TestApp_DispatchIntegrityCheckInline(t *testing.T) {
	cfg := testConfig(t)
	cfg.Tasks.Enabled = false

	app, err := NewApp(cfg, "test")
	require.NoError(t, err)
	defer app.Close()

	require.NoError(t, app.dispatchIntegrityCheck(context.Background()))

	last, ok := app.Monitor.Last()
	require.True(t, ok)
	assert.Equal(t, "schedule", last.Trigger)
}

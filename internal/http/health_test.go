package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/novelzone/internal/database/integrity"
)

func TestHealthController_Liveness(t *testing.T) {
	env := setupTestEnv(t, nil)

	w := env.do(t, "GET", "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestHealthController_Status(t *testing.T) {
	t.Run("returns healthy when database is connected", func(t *testing.T) {
		env := setupTestEnv(t, nil)

		w := env.do(t, "GET", "/api/health")
		assert.Equal(t, http.StatusOK, w.Code)

		response := decode[StatusResponse](t, w)
		assert.True(t, response.Healthy)
		assert.Equal(t, "test", response.Version)
		assert.Equal(t, "sqlite", response.Database.Driver)
		assert.Contains(t, response.Database.Tables, "novel")
		assert.Contains(t, response.Database.Tables, "reading_progress")
		assert.Empty(t, response.Database.Error)
		assert.Nil(t, response.Integrity)
		assert.NotEmpty(t, response.Time)
	})

	t.Run("includes the last integrity result", func(t *testing.T) {
		env := setupTestEnv(t, nil)
		env.monitor.Record("schedule", &integrity.Report{Chapters: []uint{9}}, nil)

		w := env.do(t, "GET", "/api/health")
		assert.Equal(t, http.StatusOK, w.Code)

		response := decode[StatusResponse](t, w)
		assert.True(t, response.Healthy)
		require.NotNil(t, response.Integrity)
		assert.Equal(t, "schedule", response.Integrity.Trigger)
		require.NotNil(t, response.Integrity.Report)
		assert.Equal(t, []uint{9}, response.Integrity.Report.Chapters)
	})

	t.Run("returns unhealthy when database connection is closed", func(t *testing.T) {
		env := setupTestEnv(t, nil)
		require.NoError(t, env.db.Close())

		w := env.do(t, "GET", "/api/health")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		response := decode[StatusResponse](t, w)
		assert.False(t, response.Healthy)
		assert.Equal(t, "sqlite", response.Database.Driver)
		assert.NotEmpty(t, response.Database.Error)
	})

	t.Run("liveness does not depend on the database", func(t *testing.T) {
		env := setupTestEnv(t, nil)
		require.NoError(t, env.db.Close())

		w := env.do(t, "GET", "/health")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", w.Body.String())
	})
}

package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/novelzone/internal/database"
	"github.com/mrlokans/novelzone/internal/database/integrity"
)

// StatusResponse describes the catalog engine and the last integrity check.
// Orphaned rows are reported but do not make the service unhealthy.
type StatusResponse struct {
	Healthy   bool              `json:"healthy"`
	Version   string            `json:"version,omitempty"`
	Time      string            `json:"time"`
	Database  DatabaseStatus    `json:"database"`
	Integrity *integrity.Result `json:"integrity,omitempty"`
}

type DatabaseStatus struct {
	Driver string   `json:"driver,omitempty"`
	Tables []string `json:"tables,omitempty"`
	Error  string   `json:"error,omitempty"`
}

type HealthController struct {
	db      *database.Database
	monitor *integrity.Monitor
	version string
}

func NewHealthController(db *database.Database, monitor *integrity.Monitor, version string) *HealthController {
	return &HealthController{db: db, monitor: monitor, version: version}
}

// Liveness answers plain "ok" without touching the database.
func (h *HealthController) Liveness(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h *HealthController) Status(c *gin.Context) {
	response := StatusResponse{
		Healthy: true,
		Version: h.version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}

	switch {
	case h.db == nil:
		response.Healthy = false
		response.Database.Error = "not configured"
	default:
		response.Database.Driver = h.db.Driver
		tables, err := h.db.Tables()
		if err == nil {
			err = h.db.Ping()
		}
		if err != nil {
			response.Healthy = false
			response.Database.Error = err.Error()
		} else {
			response.Database.Tables = tables
		}
	}

	if h.monitor != nil {
		if last, ok := h.monitor.Last(); ok {
			response.Integrity = &last
		}
	}

	statusCode := http.StatusOK
	if !response.Healthy {
		statusCode = http.StatusServiceUnavailable
	}
	c.IndentedJSON(statusCode, response)
}

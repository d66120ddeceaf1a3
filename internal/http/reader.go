package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/novelzone/internal/database/progress"
)

type ReaderController struct {
	defaultLimit int
}

func NewReaderController(defaultLimit int) *ReaderController {
	return &ReaderController{defaultLimit: defaultLimit}
}

// ContinueReading handles GET /api/reader/continue?limit=N
func (rc *ReaderController) ContinueReading(c *gin.Context) {
	limit, ok := parseLimitQuery(c, rc.defaultLimit)
	if !ok {
		return
	}
	h, ok := acquireHandle(c)
	if !ok {
		return
	}

	entries, err := progress.NewTracker(h.DB()).GetContinueReading(GetReaderID(c), limit)
	if err != nil {
		respondStoreError(c, err, "reading progress")
		return
	}
	c.JSON(http.StatusOK, gin.H{"reader_id": GetReaderID(c), "novels": entries, "count": len(entries)})
}

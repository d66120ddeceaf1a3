package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/novelzone/internal/database/catalog"
	"github.com/mrlokans/novelzone/internal/database/progress"
	"github.com/mrlokans/novelzone/internal/entities"
)

// HomeResponse is the landing page payload.
type HomeResponse struct {
	PopularNovels   []entities.NovelSummary         `json:"popular_novels"`
	ContinueReading []entities.ContinueReadingEntry `json:"continue_reading"`
}

type HomeController struct {
	popularLimit  int
	continueLimit int
}

func NewHomeController(popularLimit, continueLimit int) *HomeController {
	return &HomeController{
		popularLimit:  popularLimit,
		continueLimit: continueLimit,
	}
}

// Home handles GET /
// Both lists are read on the request's single connection.
func (hc *HomeController) Home(c *gin.Context) {
	h, ok := acquireHandle(c)
	if !ok {
		return
	}

	popular, err := catalog.NewRepository(h.DB()).ListPopularNovels(hc.popularLimit)
	if err != nil {
		respondStoreError(c, err, "popular novels")
		return
	}

	continueReading, err := progress.NewTracker(h.DB()).GetContinueReading(GetReaderID(c), hc.continueLimit)
	if err != nil {
		respondStoreError(c, err, "reading progress")
		return
	}

	c.JSON(http.StatusOK, HomeResponse{
		PopularNovels:   popular,
		ContinueReading: continueReading,
	})
}

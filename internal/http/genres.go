package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/novelzone/internal/database/catalog"
)

type GenresController struct{}

func NewGenresController() *GenresController {
	return &GenresController{}
}

// List handles GET /api/genres
func (gc *GenresController) List(c *gin.Context) {
	h, ok := acquireHandle(c)
	if !ok {
		return
	}

	genres, err := catalog.NewRepository(h.DB()).ListGenres()
	if err != nil {
		respondStoreError(c, err, "genres")
		return
	}
	c.JSON(http.StatusOK, gin.H{"genres": genres, "count": len(genres)})
}

// Novels handles GET /api/genres/:slug/novels?limit=N
// Without a limit every novel in the genre is returned.
func (gc *GenresController) Novels(c *gin.Context) {
	limit, ok := parseLimitQuery(c, 0)
	if !ok {
		return
	}
	h, ok := acquireHandle(c)
	if !ok {
		return
	}

	novels, err := catalog.NewRepository(h.DB()).ListNovelsByGenre(c.Param("slug"), limit)
	if err != nil {
		respondStoreError(c, err, "genre")
		return
	}
	c.JSON(http.StatusOK, gin.H{"genre": c.Param("slug"), "novels": novels, "count": len(novels)})
}

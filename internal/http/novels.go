package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/novelzone/internal/database/catalog"
	"github.com/mrlokans/novelzone/internal/database/chapters"
	"github.com/mrlokans/novelzone/internal/database/progress"
	"github.com/mrlokans/novelzone/internal/entities"
)

// NovelDetailResponse is a novel with its chapter index and genres.
type NovelDetailResponse struct {
	Novel    entities.NovelSummary        `json:"novel"`
	Genres   []entities.Genre             `json:"genres"`
	Chapters []entities.ChapterIndexEntry `json:"chapters"`
}

// ChapterResponse is a chapter as served to a reader.
type ChapterResponse struct {
	Novel   entities.NovelSummary `json:"novel"`
	Chapter entities.ChapterView  `json:"chapter"`
}

type NovelsController struct {
	defaultLimit int
}

func NewNovelsController(defaultLimit int) *NovelsController {
	return &NovelsController{defaultLimit: defaultLimit}
}

// List handles GET /api/novels
func (nc *NovelsController) List(c *gin.Context) {
	h, ok := acquireHandle(c)
	if !ok {
		return
	}

	novels, err := catalog.NewRepository(h.DB()).ListNovelsWithGenres()
	if err != nil {
		respondStoreError(c, err, "novels")
		return
	}
	c.JSON(http.StatusOK, gin.H{"novels": novels, "count": len(novels)})
}

// Popular handles GET /api/novels/popular?limit=N
func (nc *NovelsController) Popular(c *gin.Context) {
	limit, ok := parseLimitQuery(c, nc.defaultLimit)
	if !ok {
		return
	}
	h, ok := acquireHandle(c)
	if !ok {
		return
	}

	novels, err := catalog.NewRepository(h.DB()).ListPopularNovels(limit)
	if err != nil {
		respondStoreError(c, err, "novels")
		return
	}
	c.JSON(http.StatusOK, gin.H{"novels": novels, "count": len(novels)})
}

// Get handles GET /api/novels/:slug
func (nc *NovelsController) Get(c *gin.Context) {
	h, ok := acquireHandle(c)
	if !ok {
		return
	}
	repo := catalog.NewRepository(h.DB())

	novel, err := repo.GetNovelBySlug(c.Param("slug"))
	if err != nil {
		respondStoreError(c, err, "novel")
		return
	}

	genres, err := repo.ListNovelGenres(novel.ID)
	if err != nil {
		respondStoreError(c, err, "genres")
		return
	}

	chapterIndex, err := repo.ListChapters(novel.ID)
	if err != nil {
		respondStoreError(c, err, "chapters")
		return
	}

	c.JSON(http.StatusOK, NovelDetailResponse{
		Novel:    *novel,
		Genres:   genres,
		Chapters: chapterIndex,
	})
}

// ReadChapter handles GET /api/novels/:slug/chapters/:number
// A successful read moves the reader's progress to this chapter.
func (nc *NovelsController) ReadChapter(c *gin.Context) {
	number, ok := parseChapterParam(c, "number")
	if !ok {
		return
	}
	h, ok := acquireHandle(c)
	if !ok {
		return
	}

	novel, err := catalog.NewRepository(h.DB()).GetNovelBySlug(c.Param("slug"))
	if err != nil {
		respondStoreError(c, err, "novel")
		return
	}

	view, err := chapters.NewNavigator(h.DB()).ReadChapter(novel.ID, number)
	if err != nil {
		respondStoreError(c, err, "chapter")
		return
	}

	if readerID := GetReaderID(c); readerID != 0 {
		if err := progress.NewTracker(h.DB()).RecordProgress(readerID, novel.ID, number); err != nil {
			respondStoreError(c, err, "reading progress")
			return
		}
	}

	c.JSON(http.StatusOK, ChapterResponse{Novel: *novel, Chapter: *view})
}

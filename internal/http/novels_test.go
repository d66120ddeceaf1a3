package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/novelzone/internal/database/progress"
	"github.com/mrlokans/novelzone/internal/entities"
)

type novelsListResponse struct {
	Novels []entities.NovelWithGenres `json:"novels"`
	Count  int                        `json:"count"`
}

type continueReadingResponse struct {
	ReaderID uint                            `json:"reader_id"`
	Novels   []entities.ContinueReadingEntry `json:"novels"`
	Count    int                             `json:"count"`
}

type genresResponse struct {
	Genres []entities.Genre `json:"genres"`
	Count  int              `json:"count"`
}

func TestHomeController_Home(t *testing.T) {
	env := setupTestEnv(t, nil)

	w := env.do(t, "GET", "/")
	require.Equal(t, http.StatusOK, w.Code)

	response := decode[HomeResponse](t, w)
	require.Len(t, response.PopularNovels, 1)
	assert.Equal(t, "the-silent-map", response.PopularNovels[0].Slug)
	require.NotNil(t, response.PopularNovels[0].AuthorName)
	assert.Equal(t, "author_user", *response.PopularNovels[0].AuthorName)

	require.Len(t, response.ContinueReading, 1)
	assert.Equal(t, "the-silent-map", response.ContinueReading[0].Slug)
	assert.Equal(t, 2, response.ContinueReading[0].LastChapterNumber)
}

func TestNovelsController_List(t *testing.T) {
	env := setupTestEnv(t, nil)

	w := env.do(t, "GET", "/api/novels")
	require.Equal(t, http.StatusOK, w.Code)

	response := decode[novelsListResponse](t, w)
	assert.Equal(t, 1, response.Count)
	require.Len(t, response.Novels, 1)
	assert.Equal(t, []string{"Fantasy"}, response.Novels[0].Genres)
}

func TestNovelsController_Popular(t *testing.T) {
	env := setupTestEnv(t, nil)

	t.Run("default limit", func(t *testing.T) {
		w := env.do(t, "GET", "/api/novels/popular")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, decode[novelsListResponse](t, w).Count)
	})

	t.Run("zero limit is empty", func(t *testing.T) {
		w := env.do(t, "GET", "/api/novels/popular?limit=0")
		require.Equal(t, http.StatusOK, w.Code)
		response := decode[novelsListResponse](t, w)
		assert.Equal(t, 0, response.Count)
		assert.NotNil(t, response.Novels)
	})

	t.Run("negative limit is rejected", func(t *testing.T) {
		w := env.do(t, "GET", "/api/novels/popular?limit=-2")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestNovelsController_Get(t *testing.T) {
	env := setupTestEnv(t, nil)

	t.Run("returns novel with chapters and genres", func(t *testing.T) {
		w := env.do(t, "GET", "/api/novels/the-silent-map")
		require.Equal(t, http.StatusOK, w.Code)

		response := decode[NovelDetailResponse](t, w)
		assert.Equal(t, "The Silent Map", response.Novel.Title)
		require.Len(t, response.Chapters, 2)
		assert.Equal(t, 1, response.Chapters[0].ChapterNumber)
		assert.Equal(t, "The Awakening", response.Chapters[0].Title)
		assert.Equal(t, 2, response.Chapters[1].ChapterNumber)
		require.Len(t, response.Genres, 1)
		assert.Equal(t, "fantasy", response.Genres[0].Slug)
	})

	t.Run("unknown slug is 404", func(t *testing.T) {
		w := env.do(t, "GET", "/api/novels/nothing-here")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, CodeNotFound, decode[ErrorResponse](t, w).Code)
	})
}

func TestNovelsController_ReadChapter(t *testing.T) {
	env := setupTestEnv(t, nil)

	t.Run("first chapter has only a next neighbour", func(t *testing.T) {
		w := env.do(t, "GET", "/api/novels/the-silent-map/chapters/1")
		require.Equal(t, http.StatusOK, w.Code)

		response := decode[ChapterResponse](t, w)
		assert.Equal(t, "The Awakening", response.Chapter.Title)
		assert.Equal(t, "Once upon a time, the story map awakened...", response.Chapter.Content)
		assert.Nil(t, response.Chapter.PreviousChapterNumber)
		require.NotNil(t, response.Chapter.NextChapterNumber)
		assert.Equal(t, 2, *response.Chapter.NextChapterNumber)
	})

	t.Run("reading records progress", func(t *testing.T) {
		row, err := progress.NewTracker(env.db.DB).GetProgress(env.seed.ReaderID, env.seed.NovelID)
		require.NoError(t, err)
		assert.Equal(t, 1, row.LastChapterNumber)

		var count int64
		require.NoError(t, env.db.DB.Model(&entities.ReadingProgress{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("last chapter has only a previous neighbour", func(t *testing.T) {
		w := env.do(t, "GET", "/api/novels/the-silent-map/chapters/2")
		require.Equal(t, http.StatusOK, w.Code)

		response := decode[ChapterResponse](t, w)
		require.NotNil(t, response.Chapter.PreviousChapterNumber)
		assert.Equal(t, 1, *response.Chapter.PreviousChapterNumber)
		assert.Nil(t, response.Chapter.NextChapterNumber)
	})

	t.Run("missing chapter is 404 and leaves progress alone", func(t *testing.T) {
		w := env.do(t, "GET", "/api/novels/the-silent-map/chapters/999999")
		assert.Equal(t, http.StatusNotFound, w.Code)

		row, err := progress.NewTracker(env.db.DB).GetProgress(env.seed.ReaderID, env.seed.NovelID)
		require.NoError(t, err)
		assert.Equal(t, 2, row.LastChapterNumber)
	})

	t.Run("invalid chapter number is 400", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, env.do(t, "GET", "/api/novels/the-silent-map/chapters/0").Code)
		assert.Equal(t, http.StatusBadRequest, env.do(t, "GET", "/api/novels/the-silent-map/chapters/first").Code)
	})

	t.Run("unknown novel is 404", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, env.do(t, "GET", "/api/novels/unknown/chapters/1").Code)
	})
}

func TestReaderController_ContinueReading(t *testing.T) {
	env := setupTestEnv(t, nil)

	require.Equal(t, http.StatusOK, env.do(t, "GET", "/api/novels/the-silent-map/chapters/1").Code)

	w := env.do(t, "GET", "/api/reader/continue")
	require.Equal(t, http.StatusOK, w.Code)

	response := decode[continueReadingResponse](t, w)

	assert.Equal(t, env.seed.ReaderID, response.ReaderID)
	require.Len(t, response.Novels, 1)
	assert.Equal(t, 1, response.Novels[0].LastChapterNumber)

	assert.Equal(t, http.StatusBadRequest, env.do(t, "GET", "/api/reader/continue?limit=-1").Code)
}

func TestGenresController(t *testing.T) {
	env := setupTestEnv(t, nil)

	t.Run("lists genres", func(t *testing.T) {
		w := env.do(t, "GET", "/api/genres")
		require.Equal(t, http.StatusOK, w.Code)

		response := decode[genresResponse](t, w)
		assert.Equal(t, 2, response.Count)
		require.Len(t, response.Genres, 2)
		assert.Equal(t, "Fantasy", response.Genres[0].Name)
	})

	t.Run("lists novels in a genre", func(t *testing.T) {
		w := env.do(t, "GET", "/api/genres/fantasy/novels")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, decode[novelsListResponse](t, w).Count)
	})

	t.Run("unknown genre is 404", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, env.do(t, "GET", "/api/genres/horror/novels").Code)
	})
}

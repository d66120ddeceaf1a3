package integrity

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/novelzone/internal/database"
	"github.com/mrlokans/novelzone/internal/database/seed"
	"github.com/mrlokans/novelzone/internal/entities"
)

func setupTestDB(t *testing.T) (*database.Database, *seed.Result) {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "integrity.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	res, err := seed.Run(db.DB, seed.Options{})
	require.NoError(t, err)
	return db, res
}

func TestChecker_CleanCatalog(t *testing.T) {
	db, _ := setupTestDB(t)

	report, err := NewChecker(db.DB).Check()
	require.NoError(t, err)
	assert.True(t, report.Clean())
	assert.Equal(t, 0, report.Total())
	assert.Equal(t, "novels=0 author_profiles=0 chapters=0 novel_genres=0 reading_progress=0", report.String())
}

func TestChecker_FindsOrphans(t *testing.T) {
	db, res := setupTestDB(t)
	manager, err := database.NewManager(db)
	require.NoError(t, err)

	h, err := manager.Acquire(context.Background())
	require.NoError(t, err)
	defer h.Release()

	tx := h.DB()
	require.NoError(t, tx.Exec("PRAGMA foreign_keys = OFF").Error)

	orphanNovel := entities.Novel{AuthorProfileID: 777, Title: "Adrift", Slug: "adrift"}
	require.NoError(t, tx.Create(&orphanNovel).Error)

	orphanProfile := entities.AuthorProfile{UserID: 888}
	require.NoError(t, tx.Create(&orphanProfile).Error)

	orphanChapter := entities.Chapter{NovelID: 999, ChapterNumber: 1, Title: "Void"}
	require.NoError(t, tx.Create(&orphanChapter).Error)

	require.NoError(t, tx.Exec("INSERT INTO novel_genre (novel_id, genre_id) VALUES (?, ?)", res.NovelID, 555).Error)

	orphanProgress := entities.ReadingProgress{UserID: 444, NovelID: res.NovelID, LastChapterNumber: 1}
	require.NoError(t, tx.Create(&orphanProgress).Error)

	report, err := NewChecker(tx).Check()
	require.NoError(t, err)

	assert.False(t, report.Clean())
	assert.Equal(t, 5, report.Total())
	assert.Equal(t, []uint{orphanNovel.ID}, report.Novels)
	assert.Equal(t, []uint{orphanProfile.ID}, report.AuthorProfiles)
	assert.Equal(t, []uint{orphanChapter.ID}, report.Chapters)
	assert.Equal(t, []uint{res.NovelID}, report.NovelGenres)
	assert.Equal(t, []uint{orphanProgress.ID}, report.Progress)
}

func TestChecker_StorageUnavailable(t *testing.T) {
	db, _ := setupTestDB(t)
	checker := NewChecker(db.DB)
	require.NoError(t, db.Close())

	_, err := checker.Check()
	assert.ErrorIs(t, err, database.ErrStorageUnavailable)
}

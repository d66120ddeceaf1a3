// Package progress records how far each reader got in each novel.
//
// A reader has at most one progress row per novel. RecordProgress writes it with a
// single INSERT ... ON CONFLICT DO UPDATE statement, so two concurrent reads of the
// same chapter cannot produce duplicate rows.
//
// # Usage
//
//	tracker := progress.NewTracker(handle.DB())
//	err := tracker.RecordProgress(readerID, novelID, 2)
//	entries, err := tracker.GetContinueReading(readerID, 4)
package progress

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/novelzone/internal/database"
	"github.com/mrlokans/novelzone/internal/entities"
)

// Tracker handles reading progress database operations.
type Tracker struct {
	db  *gorm.DB
	now func() time.Time
}

// NewTracker creates a new reading progress tracker.
func NewTracker(db *gorm.DB) *Tracker {
	return &Tracker{db: db, now: time.Now}
}

// RecordProgress sets the reader's last chapter in a novel and refreshes its timestamp.
// The reader and novel must exist.
func (t *Tracker) RecordProgress(userID, novelID uint, chapterNumber int) error {
	if userID == 0 {
		return fmt.Errorf("%w: reader is required", database.ErrInvalidArgument)
	}
	if novelID == 0 {
		return fmt.Errorf("%w: novel is required", database.ErrInvalidArgument)
	}
	if chapterNumber <= 0 {
		return fmt.Errorf("%w: chapter number must be positive, got %d", database.ErrInvalidArgument, chapterNumber)
	}

	row := entities.ReadingProgress{
		UserID:            userID,
		NovelID:           novelID,
		LastChapterNumber: chapterNumber,
		UpdatedAt:         t.now().UTC(),
	}

	err := t.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "novel_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_chapter_number", "updated_at"}),
	}).Create(&row).Error
	return database.Translate(err)
}

// GetProgress returns the reader's progress row for a novel.
func (t *Tracker) GetProgress(userID, novelID uint) (*entities.ReadingProgress, error) {
	var row entities.ReadingProgress
	err := t.db.Where("user_id = ? AND novel_id = ?", userID, novelID).First(&row).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	return &row, nil
}

// GetContinueReading returns the novels the reader has progress in, most recently
// read first, truncated to limit. A limit of zero yields an empty result.
func (t *Tracker) GetContinueReading(userID uint, limit int) ([]entities.ContinueReadingEntry, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative, got %d", database.ErrInvalidArgument, limit)
	}
	entries := []entities.ContinueReadingEntry{}
	if limit == 0 {
		return entries, nil
	}

	err := t.db.Table("reading_progress AS rp").
		Select("n.id, n.title, n.slug, u.name AS author_name, rp.last_chapter_number, rp.updated_at").
		Joins("JOIN novel n ON n.id = rp.novel_id").
		Joins("LEFT JOIN author_profile ap ON ap.id = n.author_profile_id").
		Joins(`LEFT JOIN "user" u ON u.id = ap.user_id`).
		Where("rp.user_id = ?", userID).
		Order("rp.updated_at DESC, rp.id DESC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	return entries, nil
}

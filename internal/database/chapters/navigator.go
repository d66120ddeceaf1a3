// Package chapters resolves chapter content and reading-order neighbours.
//
// Neighbours are defined by numeric chapter_number order within a novel, so gaps
// are allowed: with chapters 1, 2 and 5, the chapter after 2 is 5. Each neighbour
// is a single bounded MAX/MIN query, independent of the novel's length.
package chapters

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/novelzone/internal/database"
	"github.com/mrlokans/novelzone/internal/entities"
)

// Navigator handles chapter lookups for a single connection.
type Navigator struct {
	db *gorm.DB
}

// NewNavigator creates a new chapter navigator.
func NewNavigator(db *gorm.DB) *Navigator {
	return &Navigator{db: db}
}

func validateNumber(chapterNumber int) error {
	if chapterNumber <= 0 {
		return fmt.Errorf("%w: chapter number must be positive, got %d", database.ErrInvalidArgument, chapterNumber)
	}
	return nil
}

func notFound(novelID uint, chapterNumber int) error {
	return fmt.Errorf("chapter %d of novel %d: %w", chapterNumber, novelID, database.ErrNotFound)
}

// GetChapter returns the full chapter with the given number.
func (n *Navigator) GetChapter(novelID uint, chapterNumber int) (*entities.ChapterContent, error) {
	if err := validateNumber(chapterNumber); err != nil {
		return nil, err
	}

	var chapters []entities.ChapterContent
	err := n.db.Model(&entities.Chapter{}).
		Select("novel_id, chapter_number, title, content").
		Where("novel_id = ? AND chapter_number = ?", novelID, chapterNumber).
		Limit(1).
		Scan(&chapters).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	if len(chapters) == 0 {
		return nil, notFound(novelID, chapterNumber)
	}
	return &chapters[0], nil
}

// PreviousChapterNumber returns the greatest chapter number below chapterNumber.
// ok is false when chapterNumber is the first chapter.
func (n *Navigator) PreviousChapterNumber(novelID uint, chapterNumber int) (number int, ok bool, err error) {
	if err := n.ensureExists(novelID, chapterNumber); err != nil {
		return 0, false, err
	}
	return n.previous(novelID, chapterNumber)
}

// NextChapterNumber returns the least chapter number above chapterNumber.
// ok is false when chapterNumber is the last chapter.
func (n *Navigator) NextChapterNumber(novelID uint, chapterNumber int) (number int, ok bool, err error) {
	if err := n.ensureExists(novelID, chapterNumber); err != nil {
		return 0, false, err
	}
	return n.next(novelID, chapterNumber)
}

// ReadChapter returns the chapter and both neighbours, validating existence once.
func (n *Navigator) ReadChapter(novelID uint, chapterNumber int) (*entities.ChapterView, error) {
	chapter, err := n.GetChapter(novelID, chapterNumber)
	if err != nil {
		return nil, err
	}

	view := &entities.ChapterView{ChapterContent: *chapter}

	if prev, ok, err := n.previous(novelID, chapterNumber); err != nil {
		return nil, err
	} else if ok {
		view.PreviousChapterNumber = &prev
	}

	if next, ok, err := n.next(novelID, chapterNumber); err != nil {
		return nil, err
	} else if ok {
		view.NextChapterNumber = &next
	}

	return view, nil
}

func (n *Navigator) ensureExists(novelID uint, chapterNumber int) error {
	if err := validateNumber(chapterNumber); err != nil {
		return err
	}
	var count int64
	err := n.db.Model(&entities.Chapter{}).
		Where("novel_id = ? AND chapter_number = ?", novelID, chapterNumber).
		Count(&count).Error
	if err != nil {
		return database.Translate(err)
	}
	if count == 0 {
		return notFound(novelID, chapterNumber)
	}
	return nil
}

func (n *Navigator) previous(novelID uint, chapterNumber int) (int, bool, error) {
	return n.adjacent("MAX(chapter_number)", "chapter_number < ?", novelID, chapterNumber)
}

func (n *Navigator) next(novelID uint, chapterNumber int) (int, bool, error) {
	return n.adjacent("MIN(chapter_number)", "chapter_number > ?", novelID, chapterNumber)
}

func (n *Navigator) adjacent(aggregate, bound string, novelID uint, chapterNumber int) (int, bool, error) {
	var result struct {
		Neighbour *int
	}
	err := n.db.Model(&entities.Chapter{}).
		Select(aggregate+" AS neighbour").
		Where("novel_id = ?", novelID).
		Where(bound, chapterNumber).
		Scan(&result).Error
	if err != nil {
		return 0, false, database.Translate(err)
	}
	if result.Neighbour == nil {
		return 0, false, nil
	}
	return *result.Neighbour, true, nil
}

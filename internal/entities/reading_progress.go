package entities

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ReadingProgress is the furthest chapter a reader reached in a novel.
// There is at most one row per (user, novel) pair.
type ReadingProgress struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"uniqueIndex:idx_progress_user_novel;not null" json:"user_id"`
	User              *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	NovelID           uint      `gorm:"uniqueIndex:idx_progress_user_novel;not null" json:"novel_id"`
	Novel             *Novel    `gorm:"foreignKey:NovelID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	LastChapterNumber int       `gorm:"not null" json:"last_chapter_number"`
	UpdatedAt         time.Time `gorm:"index" json:"updated_at"`
}

func (ReadingProgress) TableName() string {
	return "reading_progress"
}

func (p *ReadingProgress) BeforeSave(tx *gorm.DB) error {
	if p.LastChapterNumber <= 0 {
		return fmt.Errorf("%w: last chapter number must be positive, got %d", ErrValidation, p.LastChapterNumber)
	}
	return nil
}

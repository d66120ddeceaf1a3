package entities

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"gorm.io/gorm"
)

// ErrValidation marks a row rejected before it reaches the storage engine.
var ErrValidation = errors.New("validation failed")

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidSlug reports whether s is a URL-safe slug (lowercase words joined by single dashes).
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

type UserRole string

const (
	UserRoleReader UserRole = "reader"
	UserRoleAuthor UserRole = "author"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Role         UserRole  `gorm:"size:20;not null;default:'reader'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthorProfile extends a User with role=author. At most one per user.
type AuthorProfile struct {
	ID              uint     `gorm:"primaryKey" json:"id"`
	UserID          uint     `gorm:"uniqueIndex;not null" json:"user_id"`
	User            *User    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Bio             string   `gorm:"type:text" json:"bio"`
	ApproxLatitude  *float64 `json:"approx_latitude,omitempty"`
	ApproxLongitude *float64 `json:"approx_longitude,omitempty"`
	CountryCode     string   `gorm:"size:2" json:"country_code,omitempty"`
}

type Genre struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
	Slug string `gorm:"uniqueIndex;size:100;not null" json:"slug"`
}

type Novel struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	AuthorProfileID uint           `gorm:"index;not null" json:"author_profile_id"`
	AuthorProfile   *AuthorProfile `gorm:"foreignKey:AuthorProfileID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Title           string         `gorm:"size:512;not null" json:"title"`
	Slug            string         `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Synopsis        string         `gorm:"type:text" json:"synopsis"`
	PopularityScore float64        `gorm:"not null;default:0;index" json:"popularity_score"`
	Genres          []Genre        `gorm:"many2many:novel_genre;" json:"genres,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// Chapter numbers are unique within a novel and define its reading order.
type Chapter struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	NovelID       uint   `gorm:"uniqueIndex:idx_chapter_novel_number;not null" json:"novel_id"`
	Novel         *Novel `gorm:"foreignKey:NovelID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ChapterNumber int    `gorm:"uniqueIndex:idx_chapter_novel_number;not null" json:"chapter_number"`
	Title         string `gorm:"size:512;not null" json:"title"`
	Content       string `gorm:"type:text;not null" json:"content"`
}

func (User) TableName() string {
	return "user"
}

func (AuthorProfile) TableName() string {
	return "author_profile"
}

func (Genre) TableName() string {
	return "genre"
}

func (Novel) TableName() string {
	return "novel"
}

func (Chapter) TableName() string {
	return "chapter"
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Email == "" {
		return fmt.Errorf("%w: user email is required", ErrValidation)
	}
	switch u.Role {
	case UserRoleReader, UserRoleAuthor:
		return nil
	case "":
		u.Role = UserRoleReader
		return nil
	default:
		return fmt.Errorf("%w: unknown user role %q", ErrValidation, u.Role)
	}
}

func (n *Novel) BeforeSave(tx *gorm.DB) error {
	if !ValidSlug(n.Slug) {
		return fmt.Errorf("%w: novel slug %q is not URL-safe", ErrValidation, n.Slug)
	}
	if n.AuthorProfileID == 0 {
		return fmt.Errorf("%w: novel %q has no author profile", ErrValidation, n.Slug)
	}
	return nil
}

func (g *Genre) BeforeSave(tx *gorm.DB) error {
	if !ValidSlug(g.Slug) {
		return fmt.Errorf("%w: genre slug %q is not URL-safe", ErrValidation, g.Slug)
	}
	return nil
}

func (c *Chapter) BeforeSave(tx *gorm.DB) error {
	if c.ChapterNumber <= 0 {
		return fmt.Errorf("%w: chapter number must be positive, got %d", ErrValidation, c.ChapterNumber)
	}
	if c.NovelID == 0 {
		return fmt.Errorf("%w: chapter %d has no novel", ErrValidation, c.ChapterNumber)
	}
	return nil
}

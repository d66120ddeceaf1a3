// Package seed inserts the sample catalog used by local development and tests.
//
// All rows are written in one transaction with foreign keys enforced, so a
// partially seeded catalog is never committed.
package seed

import (
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mrlokans/novelzone/internal/auth"
	"github.com/mrlokans/novelzone/internal/database"
	"github.com/mrlokans/novelzone/internal/entities"
)

// SampleNovelSlug identifies the seeded novel.
const SampleNovelSlug = "the-silent-map"

// SamplePassword is the password of both seeded users.
const SamplePassword = "novelzone-sample"

// Result holds the identifiers of the seeded rows.
type Result struct {
	Skipped         bool
	ReaderID        uint
	AuthorID        uint
	AuthorProfileID uint
	NovelID         uint
	GenreIDs        map[string]uint
}

// Options tune the seeding run.
type Options struct {
	// BcryptCost for the sample users' password hashes. Zero uses bcrypt.MinCost.
	BcryptCost int
}

func floatPtr(v float64) *float64 {
	return &v
}

// Run seeds the sample catalog. It is a no-op when the sample novel already exists.
func Run(db *gorm.DB, opts Options) (*Result, error) {
	var existing entities.Novel
	err := db.Where("slug = ?", SampleNovelSlug).First(&existing).Error
	if err == nil {
		log.Printf("Seed: novel %q already present, skipping", SampleNovelSlug)
		return &Result{Skipped: true, NovelID: existing.ID}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, database.Translate(err)
	}

	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.MinCost
	}
	hash, err := auth.HashPassword(SamplePassword, cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash sample password: %w", err)
	}

	result := &Result{GenreIDs: make(map[string]uint)}
	err = db.Transaction(func(tx *gorm.DB) error {
		reader := entities.User{
			Email:        "reader@example.com",
			PasswordHash: hash,
			Name:         "reader_user",
			Role:         entities.UserRoleReader,
		}
		author := entities.User{
			Email:        "author@example.com",
			PasswordHash: hash,
			Name:         "author_user",
			Role:         entities.UserRoleAuthor,
		}
		if err := tx.Create(&reader).Error; err != nil {
			return fmt.Errorf("create reader: %w", err)
		}
		if err := tx.Create(&author).Error; err != nil {
			return fmt.Errorf("create author: %w", err)
		}

		profile := entities.AuthorProfile{
			UserID:          author.ID,
			Bio:             "Fantasy author based in Paris.",
			ApproxLatitude:  floatPtr(48.8566),
			ApproxLongitude: floatPtr(2.3522),
			CountryCode:     "FR",
		}
		if err := tx.Create(&profile).Error; err != nil {
			return fmt.Errorf("create author profile: %w", err)
		}

		genres := []entities.Genre{
			{Name: "Fantasy", Slug: "fantasy"},
			{Name: "Science Fiction", Slug: "science-fiction"},
		}
		if err := tx.Create(&genres).Error; err != nil {
			return fmt.Errorf("create genres: %w", err)
		}
		for _, g := range genres {
			result.GenreIDs[g.Slug] = g.ID
		}

		novel := entities.Novel{
			AuthorProfileID: profile.ID,
			Title:           "The Silent Map",
			Slug:            SampleNovelSlug,
			Synopsis:        "A fantasy story about a world-wide story map.",
			PopularityScore: 42.0,
		}
		if err := tx.Create(&novel).Error; err != nil {
			return fmt.Errorf("create novel: %w", err)
		}
		if err := tx.Model(&novel).Association("Genres").Append(&genres[0]); err != nil {
			return fmt.Errorf("link novel genre: %w", err)
		}

		chapters := []entities.Chapter{
			{NovelID: novel.ID, ChapterNumber: 1, Title: "The Awakening", Content: "Once upon a time, the story map awakened..."},
			{NovelID: novel.ID, ChapterNumber: 2, Title: "The First Zone", Content: "The first zone of the map revealed a hidden city..."},
		}
		if err := tx.Create(&chapters).Error; err != nil {
			return fmt.Errorf("create chapters: %w", err)
		}

		progress := entities.ReadingProgress{
			UserID:            reader.ID,
			NovelID:           novel.ID,
			LastChapterNumber: 2,
		}
		if err := tx.Create(&progress).Error; err != nil {
			return fmt.Errorf("create reading progress: %w", err)
		}

		result.ReaderID = reader.ID
		result.AuthorID = author.ID
		result.AuthorProfileID = profile.ID
		result.NovelID = novel.ID
		return nil
	})
	if err != nil {
		return nil, database.Translate(err)
	}

	log.Printf("Seed: database seeded with sample data (novel %d)", result.NovelID)
	return result, nil
}

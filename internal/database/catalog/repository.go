// Package catalog provides read queries over novels, authors, genres and chapter indexes.
//
// Listings outer-join authors so a novel with a broken author reference is still
// returned (with a nil AuthorName) rather than silently dropped.
//
// # Usage
//
//	repo := catalog.NewRepository(handle.DB())
//	novels, err := repo.ListPopularNovels(4)
package catalog

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/novelzone/internal/database"
	"github.com/mrlokans/novelzone/internal/entities"
)

const novelSummaryColumns = `n.id, n.title, n.slug, n.synopsis, n.popularity_score, u.name AS author_name`

// Repository handles catalog read operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// novelSummaries selects novels with author names, most popular first.
// Ties keep insertion order.
func (r *Repository) novelSummaries() *gorm.DB {
	return r.db.Table("novel AS n").
		Select(novelSummaryColumns).
		Joins("LEFT JOIN author_profile ap ON ap.id = n.author_profile_id").
		Joins(`LEFT JOIN "user" u ON u.id = ap.user_id`).
		Order("n.popularity_score DESC, n.id ASC")
}

// ListPopularNovels returns at most limit novels ordered by popularity.
// A limit of zero yields an empty result.
func (r *Repository) ListPopularNovels(limit int) ([]entities.NovelSummary, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative, got %d", database.ErrInvalidArgument, limit)
	}
	novels := []entities.NovelSummary{}
	if limit == 0 {
		return novels, nil
	}
	if err := r.novelSummaries().Limit(limit).Scan(&novels).Error; err != nil {
		return nil, database.Translate(err)
	}
	return novels, nil
}

// ListAllNovels returns every novel ordered by popularity.
func (r *Repository) ListAllNovels() ([]entities.NovelSummary, error) {
	novels := []entities.NovelSummary{}
	if err := r.novelSummaries().Scan(&novels).Error; err != nil {
		return nil, database.Translate(err)
	}
	return novels, nil
}

// GetNovelBySlug looks up a novel by its exact, case-sensitive slug.
func (r *Repository) GetNovelBySlug(slug string) (*entities.NovelSummary, error) {
	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", database.ErrInvalidArgument)
	}

	var novels []entities.NovelSummary
	err := r.novelSummaries().Where("n.slug = ?", slug).Limit(1).Scan(&novels).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	if len(novels) == 0 {
		return nil, fmt.Errorf("novel %q: %w", slug, database.ErrNotFound)
	}
	return &novels[0], nil
}

// ListChapters returns the chapter index of a novel in reading order.
func (r *Repository) ListChapters(novelID uint) ([]entities.ChapterIndexEntry, error) {
	chapters := []entities.ChapterIndexEntry{}
	err := r.db.Model(&entities.Chapter{}).
		Select("chapter_number, title").
		Where("novel_id = ?", novelID).
		Order("chapter_number ASC").
		Scan(&chapters).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	return chapters, nil
}

// ListGenres returns all genres ordered by name.
func (r *Repository) ListGenres() ([]entities.Genre, error) {
	genres := []entities.Genre{}
	if err := r.db.Order("name ASC").Find(&genres).Error; err != nil {
		return nil, database.Translate(err)
	}
	return genres, nil
}

// GetGenreBySlug looks up a genre by its exact slug.
func (r *Repository) GetGenreBySlug(slug string) (*entities.Genre, error) {
	if slug == "" {
		return nil, fmt.Errorf("%w: genre slug is required", database.ErrInvalidArgument)
	}
	var genre entities.Genre
	if err := r.db.Where("slug = ?", slug).First(&genre).Error; err != nil {
		return nil, database.Translate(err)
	}
	return &genre, nil
}

// ListNovelGenres returns the genres linked to a novel, ordered by name.
func (r *Repository) ListNovelGenres(novelID uint) ([]entities.Genre, error) {
	genres := []entities.Genre{}
	err := r.db.Table("genre AS g").
		Select("g.id, g.name, g.slug").
		Joins("JOIN novel_genre ng ON ng.genre_id = g.id").
		Where("ng.novel_id = ?", novelID).
		Order("g.name ASC").
		Scan(&genres).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	return genres, nil
}

// ListNovelsByGenre returns novels in a genre ordered by popularity.
// A limit of zero means no limit.
func (r *Repository) ListNovelsByGenre(genreSlug string, limit int) ([]entities.NovelSummary, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative, got %d", database.ErrInvalidArgument, limit)
	}
	genre, err := r.GetGenreBySlug(genreSlug)
	if err != nil {
		return nil, err
	}

	query := r.novelSummaries().
		Joins("JOIN novel_genre ng ON ng.novel_id = n.id").
		Where("ng.genre_id = ?", genre.ID)
	if limit > 0 {
		query = query.Limit(limit)
	}

	novels := []entities.NovelSummary{}
	if err := query.Scan(&novels).Error; err != nil {
		return nil, database.Translate(err)
	}
	return novels, nil
}

type novelGenreName struct {
	NovelID uint
	Name    string
}

// ListNovelsWithGenres returns every novel with its genre names attached.
func (r *Repository) ListNovelsWithGenres() ([]entities.NovelWithGenres, error) {
	novels, err := r.ListAllNovels()
	if err != nil {
		return nil, err
	}

	var links []novelGenreName
	err = r.db.Table("novel_genre AS ng").
		Select("ng.novel_id, g.name").
		Joins("JOIN genre g ON g.id = ng.genre_id").
		Order("g.name ASC").
		Scan(&links).Error
	if err != nil {
		return nil, database.Translate(err)
	}

	byNovel := make(map[uint][]string)
	for _, link := range links {
		byNovel[link.NovelID] = append(byNovel[link.NovelID], link.Name)
	}

	result := make([]entities.NovelWithGenres, 0, len(novels))
	for _, n := range novels {
		genres := byNovel[n.ID]
		if genres == nil {
			genres = []string{}
		}
		result = append(result, entities.NovelWithGenres{NovelSummary: n, Genres: genres})
	}
	return result, nil
}

// GenreList joins genre names the way the check-db report prints them.
func GenreList(genres []string) string {
	if len(genres) == 0 {
		return "none"
	}
	return strings.Join(genres, ", ")
}

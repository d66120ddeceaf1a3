// Package integrity finds rows whose foreign keys point at nothing.
//
// Foreign keys are enforced on write, so a non-empty report means the catalog was
// modified outside the application (or with enforcement disabled).
package integrity

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/novelzone/internal/database"
)

// Report lists the IDs of orphaned rows per table.
type Report struct {
	Novels         []uint `json:"novels"`
	AuthorProfiles []uint `json:"author_profiles"`
	Chapters       []uint `json:"chapters"`
	NovelGenres    []uint `json:"novel_genres"` // novel_id of broken links
	Progress       []uint `json:"reading_progress"`
}

// Total returns the number of orphaned rows found.
func (r *Report) Total() int {
	return len(r.Novels) + len(r.AuthorProfiles) + len(r.Chapters) + len(r.NovelGenres) + len(r.Progress)
}

// Clean reports whether no orphaned rows were found.
func (r *Report) Clean() bool {
	return r.Total() == 0
}

func (r *Report) String() string {
	return fmt.Sprintf("novels=%d author_profiles=%d chapters=%d novel_genres=%d reading_progress=%d",
		len(r.Novels), len(r.AuthorProfiles), len(r.Chapters), len(r.NovelGenres), len(r.Progress))
}

type orphanQuery struct {
	name   string
	sql    string
	target *[]uint
}

// Checker runs orphan detection queries.
type Checker struct {
	db *gorm.DB
}

// NewChecker creates a new integrity checker.
func NewChecker(db *gorm.DB) *Checker {
	return &Checker{db: db}
}

// Check scans every foreign key relationship of the catalog.
func (c *Checker) Check() (*Report, error) {
	report := &Report{}
	queries := []orphanQuery{
		{
			name: "novels",
			sql: `SELECT n.id FROM novel n
				LEFT JOIN author_profile ap ON ap.id = n.author_profile_id
				WHERE ap.id IS NULL ORDER BY n.id`,
			target: &report.Novels,
		},
		{
			name: "author profiles",
			sql: `SELECT ap.id FROM author_profile ap
				LEFT JOIN "user" u ON u.id = ap.user_id
				WHERE u.id IS NULL ORDER BY ap.id`,
			target: &report.AuthorProfiles,
		},
		{
			name: "chapters",
			sql: `SELECT c.id FROM chapter c
				LEFT JOIN novel n ON n.id = c.novel_id
				WHERE n.id IS NULL ORDER BY c.id`,
			target: &report.Chapters,
		},
		{
			name: "novel genres",
			sql: `SELECT ng.novel_id FROM novel_genre ng
				LEFT JOIN novel n ON n.id = ng.novel_id
				LEFT JOIN genre g ON g.id = ng.genre_id
				WHERE n.id IS NULL OR g.id IS NULL ORDER BY ng.novel_id`,
			target: &report.NovelGenres,
		},
		{
			name: "reading progress",
			sql: `SELECT rp.id FROM reading_progress rp
				LEFT JOIN "user" u ON u.id = rp.user_id
				LEFT JOIN novel n ON n.id = rp.novel_id
				WHERE u.id IS NULL OR n.id IS NULL ORDER BY rp.id`,
			target: &report.Progress,
		},
	}

	for _, q := range queries {
		ids := []uint{}
		if err := c.db.Raw(q.sql).Scan(&ids).Error; err != nil {
			return nil, fmt.Errorf("check orphaned %s: %w", q.name, database.Translate(err))
		}
		*q.target = ids
	}
	return report, nil
}

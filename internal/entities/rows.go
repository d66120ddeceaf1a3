package entities

import "time"

// Row shapes returned by read queries. Each query declares exactly one of these,
// so callers can keep results after the connection handle is released.

// NovelSummary is a novel joined to its author's display name.
// AuthorName is nil only when the author reference is broken.
type NovelSummary struct {
	ID              uint    `json:"id"`
	Title           string  `json:"title"`
	Slug            string  `json:"slug"`
	Synopsis        string  `json:"synopsis"`
	PopularityScore float64 `json:"popularity_score"`
	AuthorName      *string `json:"author_name"`
}

// NovelWithGenres is a NovelSummary plus its genre names in alphabetical order.
type NovelWithGenres struct {
	NovelSummary
	Genres []string `json:"genres"`
}

// ChapterIndexEntry is the lightweight chapter listing view (no content).
type ChapterIndexEntry struct {
	ChapterNumber int    `json:"chapter_number"`
	Title         string `json:"title"`
}

// ChapterContent is a full chapter body.
type ChapterContent struct {
	NovelID       uint   `json:"novel_id"`
	ChapterNumber int    `json:"chapter_number"`
	Title         string `json:"title"`
	Content       string `json:"content"`
}

// ChapterView is a chapter with its reading-order neighbours.
type ChapterView struct {
	ChapterContent
	PreviousChapterNumber *int `json:"previous_chapter_number"`
	NextChapterNumber     *int `json:"next_chapter_number"`
}

// ContinueReadingEntry is a novel the reader has progress in.
type ContinueReadingEntry struct {
	ID                uint      `json:"id"`
	Title             string    `json:"title"`
	Slug              string    `json:"slug"`
	AuthorName        *string   `json:"author_name"`
	LastChapterNumber int       `json:"last_chapter_number"`
	UpdatedAt         time.Time `json:"updated_at"`
}

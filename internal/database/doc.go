// Package database provides the data access layer for the catalog.
//
// # Architecture
//
//	database/
//	├── database.go      # Engine selection (sqlite, postgres), migrations
//	├── manager.go       # Per-request connection handles and scopes
//	├── errors.go        # Error kinds and driver error translation
//	├── catalog/         # Novel listings, detail lookup, genres
//	├── chapters/        # Chapter content and reading-order navigation
//	├── progress/        # Reading progress upserts and continue-reading
//	├── integrity/       # Orphaned foreign key detection
//	└── seed/            # Sample catalog data
//
// # Request Lifecycle
//
// A request obtains one handle and passes it explicitly to each repository:
//
//	scope := manager.NewScope()
//	defer scope.Close()
//
//	h, err := scope.Acquire(ctx)
//	novels, err := catalog.NewRepository(h.DB()).ListPopularNovels(4)
//	view, err := chapters.NewNavigator(h.DB()).ReadChapter(novelID, 1)
//
// Repository results are plain row structs, safe to hold after Close.
//
// # Errors
//
// Every repository returns errors wrapping one of ErrNotFound, ErrInvalidArgument,
// ErrStorageUnavailable or ErrIntegrity. Match them with errors.Is.
package database

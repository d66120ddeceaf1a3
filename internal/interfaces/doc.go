// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Connection Interfaces
//
//   - integrity.HandleRunner: runs work on a released-after-use connection
//     (implemented by database.Manager)
//
// ## Task Queue Interfaces
//
//   - http.IntegrityTaskQueue: enqueue integrity checks and read their status
//     (implemented by tasks.Client)
//   - backlite.Task: queued work items (tasks.VerifyIntegrityTask)
//
// # Adding a New Catalog Query
//
//  1. Declare the row shape in internal/entities/rows.go
//
//     type AuthorSummary struct {
//         ID   uint   `json:"id"`
//         Name string `json:"name"`
//     }
//
//  2. Add the method to the repository that owns the table, translating errors:
//
//     func (r *Repository) ListAuthors() ([]entities.AuthorSummary, error) {
//         authors := []entities.AuthorSummary{}
//         if err := r.db.Table("author_profile AS ap")...Scan(&authors).Error; err != nil {
//             return nil, database.Translate(err)
//         }
//         return authors, nil
//     }
//
//  3. Serve it from a controller using the request's handle:
//
//     h, ok := acquireHandle(c)
//     authors, err := catalog.NewRepository(h.DB()).ListAuthors()
//
// # Adding a New Background Task
//
//  1. Define the task and its queue config in internal/tasks/
//
//     type RecomputePopularityTask struct{}
//
//     func (t RecomputePopularityTask) Config() backlite.QueueConfig
//
//  2. Create the processor with backlite.NewQueue and register it in entrypoint.go
//
//  3. Add a compile-time check:
//
//     var _ backlite.Task = tasks.RecomputePopularityTask{}
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for examples.
package interfaces

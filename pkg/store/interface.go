// Package store defines the data persistence interface of the booknotes
// application.
//
// The [Store] interface follows the repository pattern: handlers depend on it
// rather than on a concrete database, and the storage connection is injected
// into the application explicitly instead of living in a package-level
// singleton. The shipped implementation is
// [github.com/booknotes/booknotes/pkg/store/gormstore.GormStore], which runs
// on PostgreSQL in production and on SQLite for tests and local development.
//
// Conventions shared by all implementations:
//   - Get methods return nil without error for missing entities; absence is
//     an ordinary result, not control flow via errors.
//   - List methods return all matching rows; callers must treat a nil
//     result slice the same as an empty one.
//   - All methods take a context and perform a single synchronous unit of
//     work; there are no retries.
package store

import (
	"context"

	"github.com/booknotes/booknotes/pkg/models"
)

// Submission is the validated admin-form tuple handed to SubmitNote. All
// fields are expected to be non-empty; presence validation happens at the
// form boundary.
type Submission struct {
	Author  string
	Book    string
	Chapter string
	Content string
	Bio     string
}

// SubmitOutcome reports what SubmitNote did with a submission.
type SubmitOutcome int

const (
	// SubmitCreated means at least the note (and any missing parents) was
	// inserted.
	SubmitCreated SubmitOutcome = iota
	// SubmitDuplicate means the author, book, chapter and note all already
	// existed and nothing was written.
	SubmitDuplicate
)

// Store is the persistence interface for the library catalog and the admin
// credential table.
type Store interface {
	// Catalog lookups by natural key.
	GetAuthorByName(ctx context.Context, name string) (*models.Author, error)
	GetBookByTitle(ctx context.Context, title string) (*models.Book, error)

	// Catalog listings for the read-only API.
	ListBooks(ctx context.Context) ([]*models.Book, error)
	ListBooksByAuthor(ctx context.Context, authorID models.AuthorID) ([]*models.Book, error)
	ListAuthors(ctx context.Context) ([]*models.Author, error)
	// ListNotes and ListNotesByBook return notes with their Book and Chapter
	// associations populated so callers can render titles and chapter names.
	ListNotes(ctx context.Context) ([]*models.Note, error)
	ListNotesByBook(ctx context.Context, bookID models.BookID) ([]*models.Note, error)

	// SubmitNote runs the idempotent note-submission workflow: it looks up
	// the four entities named by the submission in dependency order, reuses
	// whichever exist, creates whichever are missing, and commits the result
	// atomically. If all four already exist it writes nothing and reports
	// SubmitDuplicate. Any storage failure rolls the whole submission back.
	SubmitNote(ctx context.Context, sub Submission) (SubmitOutcome, error)

	// Admin credentials. Admins are seeded out of band, never via HTTP.
	GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error)
	CreateAdmin(ctx context.Context, admin *models.Admin) error

	// Migrate creates or updates the database schema.
	Migrate(ctx context.Context) error
	// Close releases the underlying database connection.
	Close() error
}

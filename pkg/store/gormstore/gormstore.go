// Package gormstore provides the GORM-backed implementation of the
// [github.com/booknotes/booknotes/pkg/store.Store] interface.
//
// Two constructors are provided for the two supported dialects:
//   - [NewPostgresStore] for production deployments
//   - [NewSQLiteStore] for tests and local development
//
// The store logic itself is dialect-agnostic; everything goes through GORM.
// Individual operations are wrapped in transactions by GORM where needed, and
// the note-submission workflow runs its duplicate check and inserts inside a
// single explicit transaction so a failure anywhere rolls back every insert.
//
// The duplicate check is deliberately check-then-insert without a uniqueness
// constraint: two concurrent identical submissions can both observe "absent"
// and both insert. Single-admin usage makes this acceptable; see DESIGN.md.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/booknotes/booknotes/pkg/models"
	"github.com/booknotes/booknotes/pkg/store"
)

// GormStore implements the Store interface on top of a GORM connection.
type GormStore struct {
	db *gorm.DB

	// now is swapped out by tests that assert on note creation dates.
	now func() time.Time
}

// NewPostgresStore opens a PostgreSQL-backed store for the given DSN.
func NewPostgresStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &GormStore{db: db, now: time.Now}, nil
}

// NewSQLiteStore opens a SQLite-backed store at the given path. Pass
// ":memory:" for an in-memory database; in that case the connection pool is
// limited to a single connection, since every new connection to ":memory:"
// would otherwise see its own empty database.
func NewSQLiteStore(path string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == ":memory:" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return &GormStore{db: db, now: time.Now}, nil
}

// Migrate creates missing tables, columns, indexes and foreign keys for all
// application models using GORM's AutoMigrate. Safe to run repeatedly; it
// only adds schema elements and never drops data.
func (s *GormStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&models.Author{},
		&models.Book{},
		&models.Chapter{},
		&models.Note{},
		&models.Admin{},
	)
}

// Close closes the database connection
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Catalog lookups

func (s *GormStore) GetAuthorByName(ctx context.Context, name string) (*models.Author, error) {
	return firstAuthor(s.db.WithContext(ctx), "name = ?", name)
}

func (s *GormStore) GetBookByTitle(ctx context.Context, title string) (*models.Book, error) {
	return firstBook(s.db.WithContext(ctx), "title = ?", title)
}

// Catalog listings

func (s *GormStore) ListBooks(ctx context.Context) ([]*models.Book, error) {
	var books []*models.Book
	err := s.db.WithContext(ctx).Order("created_at").Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

func (s *GormStore) ListBooksByAuthor(ctx context.Context, authorID models.AuthorID) ([]*models.Book, error) {
	var books []*models.Book
	err := s.db.WithContext(ctx).Where("author_id = ?", authorID).Order("created_at").Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

func (s *GormStore) ListAuthors(ctx context.Context) ([]*models.Author, error) {
	var authors []*models.Author
	err := s.db.WithContext(ctx).Order("created_at").Find(&authors).Error
	if err != nil {
		return nil, err
	}
	return authors, nil
}

func (s *GormStore) ListNotes(ctx context.Context) ([]*models.Note, error) {
	var notes []*models.Note
	err := s.db.WithContext(ctx).
		Preload("Book").
		Preload("Chapter").
		Order("created_date").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (s *GormStore) ListNotesByBook(ctx context.Context, bookID models.BookID) ([]*models.Note, error) {
	var notes []*models.Note
	err := s.db.WithContext(ctx).
		Preload("Book").
		Preload("Chapter").
		Where("book_id = ?", bookID).
		Order("created_date").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// SubmitNote implements the idempotent submission workflow. The lookup chain
// runs in dependency order and a missing parent short-circuits its
// descendants to absent: a chapter is only looked up under a found book, a
// note only under a found chapter. Found ancestors are reused as-is, so an
// author or book matching by natural key is never duplicated.
func (s *GormStore) SubmitNote(ctx context.Context, sub store.Submission) (store.SubmitOutcome, error) {
	outcome := store.SubmitCreated

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		author, err := firstAuthor(tx, "name = ?", sub.Author)
		if err != nil {
			return err
		}

		var book *models.Book
		if author != nil {
			book, err = firstBook(tx, "title = ? AND author_id = ?", sub.Book, author.ID)
			if err != nil {
				return err
			}
		}

		var chapter *models.Chapter
		if book != nil {
			chapter, err = firstChapter(tx, "book_id = ? AND chapter_name = ?", book.ID, sub.Chapter)
			if err != nil {
				return err
			}
		}

		if chapter != nil {
			note, err := firstNote(tx, "book_id = ? AND chapter_id = ? AND content = ?", book.ID, chapter.ID, sub.Content)
			if err != nil {
				return err
			}
			if note != nil {
				outcome = store.SubmitDuplicate
				return nil
			}
		}

		if author == nil {
			author = &models.Author{Name: sub.Author, Biography: sub.Bio}
			if err := tx.Create(author).Error; err != nil {
				return err
			}
		}
		if book == nil {
			book = &models.Book{Title: sub.Book, AuthorID: author.ID}
			if err := tx.Create(book).Error; err != nil {
				return err
			}
		}
		if chapter == nil {
			chapter = &models.Chapter{BookID: book.ID, ChapterName: sub.Chapter}
			if err := tx.Create(chapter).Error; err != nil {
				return err
			}
		}

		// The note links to the same book row the chapter was linked to,
		// keeping Note.BookID and Note.Chapter.BookID in agreement.
		note := &models.Note{
			BookID:      book.ID,
			ChapterID:   chapter.ID,
			Content:     sub.Content,
			CreatedDate: today(s.now()),
		}
		return tx.Create(note).Error
	})
	if err != nil {
		return store.SubmitCreated, fmt.Errorf("submit note: %w", err)
	}
	return outcome, nil
}

// Admin credentials

func (s *GormStore) GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	err := s.db.WithContext(ctx).First(&admin, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

func (s *GormStore) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	return s.db.WithContext(ctx).Create(admin).Error
}

// today truncates a timestamp to its calendar date in UTC; notes record a
// creation date, not a time of day.
func today(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// first* helpers return nil without error when no row matches, keeping
// absence an ordinary result instead of a sentinel error.

func firstAuthor(db *gorm.DB, conds ...any) (*models.Author, error) {
	var author models.Author
	err := db.First(&author, conds...).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &author, nil
}

func firstBook(db *gorm.DB, conds ...any) (*models.Book, error) {
	var book models.Book
	err := db.First(&book, conds...).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &book, nil
}

func firstChapter(db *gorm.DB, conds ...any) (*models.Chapter, error) {
	var chapter models.Chapter
	err := db.First(&chapter, conds...).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &chapter, nil
}

func firstNote(db *gorm.DB, conds ...any) (*models.Note, error) {
	var note models.Note
	err := db.First(&note, conds...).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

// Package models defines the database entities of the booknotes library:
// authors, books, chapters, free-text notes, and the admin account used to
// gate the submission form.
//
// The catalog entities form a small hierarchy: a Book belongs to an Author,
// a Chapter belongs to a Book, and a Note belongs to both a Book and one of
// its Chapters. Catalog rows are created exclusively by the note-submission
// workflow and are immutable afterwards; the application exposes no update or
// delete operations for them.
//
// All entities use uuid-backed typed IDs (see typed_ids.go) so that, say, a
// BookID can never be passed where a ChapterID is expected.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Author represents a book author. Authors are created only as a side effect
// of submitting a note for a book whose author is not yet known; the name is
// the natural key used for lookups.
type Author struct {
	ID        AuthorID  `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Biography string    `gorm:"type:text;not null" json:"biography"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate hook to generate ID if not set
func (a *Author) BeforeCreate(tx *gorm.DB) error {
	if a.ID.IsZero() {
		a.ID = NewAuthorID()
	}
	return nil
}

// Book represents a book in the catalog. Many books may share one author.
type Book struct {
	ID        BookID    `gorm:"type:uuid;primary_key" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	AuthorID  AuthorID  `gorm:"type:uuid;not null" json:"author_id"`
	Author    *Author   `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate hook to generate ID if not set
func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID.IsZero() {
		b.ID = NewBookID()
	}
	return nil
}

// Chapter represents a named chapter of a book. The (book, chapter name)
// pair is the natural key.
type Chapter struct {
	ID          ChapterID `gorm:"type:uuid;primary_key" json:"id"`
	BookID      BookID    `gorm:"type:uuid;not null" json:"book_id"`
	Book        *Book     `gorm:"foreignKey:BookID" json:"book,omitempty"`
	ChapterName string    `gorm:"not null" json:"chapter_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// BeforeCreate hook to generate ID if not set
func (c *Chapter) BeforeCreate(tx *gorm.DB) error {
	if c.ID.IsZero() {
		c.ID = NewChapterID()
	}
	return nil
}

// Note represents a free-text reading note attached to a chapter. A note
// references both its chapter and the chapter's book; the two references must
// agree (Note.Chapter.BookID == Note.BookID) after every insert, which the
// submission workflow guarantees by linking the note to the same book row it
// linked the chapter to.
type Note struct {
	ID          NoteID    `gorm:"type:uuid;primary_key" json:"id"`
	BookID      BookID    `gorm:"type:uuid;not null" json:"book_id"`
	Book        *Book     `gorm:"foreignKey:BookID" json:"book,omitempty"`
	ChapterID   ChapterID `gorm:"type:uuid;not null" json:"chapter_id"`
	Chapter     *Chapter  `gorm:"foreignKey:ChapterID" json:"chapter,omitempty"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	CreatedDate time.Time `gorm:"not null" json:"created_date"`
}

// BeforeCreate hook to generate ID if not set
func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID.IsZero() {
		n.ID = NewNoteID()
	}
	return nil
}

// Admin represents the administrator account allowed to submit notes.
// Admin rows are seeded out of band (via the create-admin command) and are
// never created through the HTTP surface. PasswordHash holds a bcrypt hash.
type Admin struct {
	ID           AdminID   `gorm:"type:uuid;primary_key" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// BeforeCreate hook to generate ID if not set
func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID.IsZero() {
		a.ID = NewAdminID()
	}
	return nil
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// AuthorID is a typed ID for authors
type AuthorID struct {
	uuid uuid.UUID
}

func NewAuthorID() AuthorID {
	return AuthorID{uuid: uuid.New()}
}

func ParseAuthorID(s string) (AuthorID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return AuthorID{}, fmt.Errorf("invalid author ID: %w", err)
	}
	return AuthorID{uuid: id}, nil
}

func (a AuthorID) UUID() uuid.UUID { return a.uuid }
func (a AuthorID) String() string  { return a.uuid.String() }
func (a AuthorID) IsZero() bool    { return a.uuid == uuid.Nil }

func (a AuthorID) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.uuid.String())
}

func (a *AuthorID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	a.uuid = id
	return nil
}

func (a AuthorID) Value() (driver.Value, error) {
	if a.IsZero() {
		return nil, nil
	}
	return a.uuid.String(), nil
}

func (a *AuthorID) Scan(value any) error {
	return scanUUID(value, &a.uuid)
}

func (AuthorID) GormDataType() string { return "uuid" }

// BookID is a typed ID for books
type BookID struct {
	uuid uuid.UUID
}

func NewBookID() BookID {
	return BookID{uuid: uuid.New()}
}

func ParseBookID(s string) (BookID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return BookID{}, fmt.Errorf("invalid book ID: %w", err)
	}
	return BookID{uuid: id}, nil
}

func (b BookID) UUID() uuid.UUID { return b.uuid }
func (b BookID) String() string  { return b.uuid.String() }
func (b BookID) IsZero() bool    { return b.uuid == uuid.Nil }

func (b BookID) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.uuid.String())
}

func (b *BookID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	b.uuid = id
	return nil
}

func (b BookID) Value() (driver.Value, error) {
	if b.IsZero() {
		return nil, nil
	}
	return b.uuid.String(), nil
}

func (b *BookID) Scan(value any) error {
	return scanUUID(value, &b.uuid)
}

func (BookID) GormDataType() string { return "uuid" }

// ChapterID is a typed ID for chapters
type ChapterID struct {
	uuid uuid.UUID
}

func NewChapterID() ChapterID {
	return ChapterID{uuid: uuid.New()}
}

func ParseChapterID(s string) (ChapterID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ChapterID{}, fmt.Errorf("invalid chapter ID: %w", err)
	}
	return ChapterID{uuid: id}, nil
}

func (c ChapterID) UUID() uuid.UUID { return c.uuid }
func (c ChapterID) String() string  { return c.uuid.String() }
func (c ChapterID) IsZero() bool    { return c.uuid == uuid.Nil }

func (c ChapterID) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.uuid.String())
}

func (c *ChapterID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	c.uuid = id
	return nil
}

func (c ChapterID) Value() (driver.Value, error) {
	if c.IsZero() {
		return nil, nil
	}
	return c.uuid.String(), nil
}

func (c *ChapterID) Scan(value any) error {
	return scanUUID(value, &c.uuid)
}

func (ChapterID) GormDataType() string { return "uuid" }

// NoteID is a typed ID for notes
type NoteID struct {
	uuid uuid.UUID
}

func NewNoteID() NoteID {
	return NoteID{uuid: uuid.New()}
}

func ParseNoteID(s string) (NoteID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return NoteID{}, fmt.Errorf("invalid note ID: %w", err)
	}
	return NoteID{uuid: id}, nil
}

func (n NoteID) UUID() uuid.UUID { return n.uuid }
func (n NoteID) String() string  { return n.uuid.String() }
func (n NoteID) IsZero() bool    { return n.uuid == uuid.Nil }

func (n NoteID) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.uuid.String())
}

func (n *NoteID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	n.uuid = id
	return nil
}

func (n NoteID) Value() (driver.Value, error) {
	if n.IsZero() {
		return nil, nil
	}
	return n.uuid.String(), nil
}

func (n *NoteID) Scan(value any) error {
	return scanUUID(value, &n.uuid)
}

func (NoteID) GormDataType() string { return "uuid" }

// AdminID is a typed ID for admin accounts
type AdminID struct {
	uuid uuid.UUID
}

func NewAdminID() AdminID {
	return AdminID{uuid: uuid.New()}
}

func ParseAdminID(s string) (AdminID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return AdminID{}, fmt.Errorf("invalid admin ID: %w", err)
	}
	return AdminID{uuid: id}, nil
}

func (a AdminID) UUID() uuid.UUID { return a.uuid }
func (a AdminID) String() string  { return a.uuid.String() }
func (a AdminID) IsZero() bool    { return a.uuid == uuid.Nil }

func (a AdminID) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.uuid.String())
}

func (a *AdminID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	a.uuid = id
	return nil
}

func (a AdminID) Value() (driver.Value, error) {
	if a.IsZero() {
		return nil, nil
	}
	return a.uuid.String(), nil
}

func (a *AdminID) Scan(value any) error {
	return scanUUID(value, &a.uuid)
}

func (AdminID) GormDataType() string { return "uuid" }

// scanUUID is a helper for implementing the sql.Scanner interface for GORM.
// Database drivers hand back uuid columns as either string or []byte
// depending on the backend.
func scanUUID(value any, target *uuid.UUID) error {
	if value == nil {
		*target = uuid.Nil
		return nil
	}

	switch v := value.(type) {
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return err
		}
		*target = id
	case []byte:
		id, err := uuid.ParseBytes(v)
		if err != nil {
			return err
		}
		*target = id
	default:
		return fmt.Errorf("cannot scan type %T into UUID", value)
	}
	return nil
}

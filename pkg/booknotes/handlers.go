package booknotes

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/booknotes/booknotes/pkg/models"
)

// Read-only JSON API. No authentication; response shapes and error bodies
// are part of the public contract and are kept stable.

// handleAllBooks serves /get/all_books.
//
// Without a query parameter it returns every book:
//
//	{"books":[{"id":...,"title":...},...]}
//
// With ?author=NAME it returns that author's books keyed by the author name:
//
//	{"NAME":[{"id":...,"title":...},...]}
//
// An unknown author and an author with zero books both answer 404; the two
// cases are deliberately not distinguished in the response.
func (a *App) handleAllBooks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	authorName := r.URL.Query().Get("author")

	var (
		books []*models.Book
		err   error
	)
	if authorName == "" {
		books, err = a.store.ListBooks(ctx)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
	} else {
		author, err := a.store.GetAuthorByName(ctx, authorName)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if author == nil {
			respondError(w, http.StatusNotFound, "This author does not exists")
			return
		}
		books, err = a.store.ListBooksByAuthor(ctx, author.ID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	if len(books) == 0 {
		respondError(w, http.StatusNotFound, "Sorry, can not find any books")
		return
	}

	items := make([]map[string]any, 0, len(books))
	for _, book := range books {
		items = append(items, map[string]any{"id": book.ID, "title": book.Title})
	}

	if authorName != "" {
		respondJSON(w, http.StatusOK, map[string]any{authorName: items})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"books": items})
}

// handleAuthors serves /get/authors: every author with id, name and
// biography as a flat array.
func (a *App) handleAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := a.store.ListAuthors(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	items := make([]map[string]any, 0, len(authors))
	for _, author := range authors {
		items = append(items, map[string]any{
			"id":        author.ID,
			"name":      author.Name,
			"biography": author.Biography,
		})
	}
	respondJSON(w, http.StatusOK, items)
}

// handleNotes serves /get/notes.
//
// With ?book=TITLE the notes of that book are grouped under the title:
//
//	{"TITLE":[{"id":...,"content":...,"chapter":...},...]}
//
// and an unknown title answers 404 {"message":"Book not found"}. Without a
// parameter every note is returned flat, annotated with its book title and
// chapter name.
func (a *App) handleNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	bookTitle := r.URL.Query().Get("book")

	if bookTitle != "" {
		book, err := a.store.GetBookByTitle(ctx, bookTitle)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if book == nil {
			respondJSON(w, http.StatusNotFound, map[string]string{"message": "Book not found"})
			return
		}

		notes, err := a.store.ListNotesByBook(ctx, book.ID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}

		items := make([]map[string]any, 0, len(notes))
		for _, note := range notes {
			items = append(items, map[string]any{
				"id":      note.ID,
				"content": note.Content,
				"chapter": noteChapterName(note),
				"date":    note.CreatedDate.Format("2006-01-02"),
			})
		}
		respondJSON(w, http.StatusOK, map[string]any{book.Title: items})
		return
	}

	notes, err := a.store.ListNotes(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	items := make([]map[string]any, 0, len(notes))
	for _, note := range notes {
		items = append(items, map[string]any{
			"id":      note.ID,
			"book":    noteBookTitle(note),
			"content": note.Content,
			"chapter": noteChapterName(note),
			"date":    note.CreatedDate.Format("2006-01-02"),
		})
	}
	respondJSON(w, http.StatusOK, items)
}

// handleHealth is a liveness check for load balancers and monitoring.
func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

func noteChapterName(note *models.Note) string {
	if note.Chapter == nil {
		return ""
	}
	return note.Chapter.ChapterName
}

func noteBookTitle(note *models.Note) string {
	if note.Book == nil {
		return ""
	}
	return note.Book.Title
}

// respondJSON writes payload as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_, _ = w.Write(response)
	}
}

// respondError sends a JSON error body with the given status.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

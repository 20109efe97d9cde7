package booknotes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Router builds the HTTP route table.
//
// Public pages and JSON API:
//
//	GET  /               - rendered home page
//	GET  /get/all_books  - all books, or an author's books (?author=NAME)
//	GET  /get/authors    - all authors
//	GET  /get/notes      - all notes, or one book's notes (?book=TITLE)
//	GET  /health         - liveness check
//
// Admin surface:
//
//	GET  /admin            - rendered login form
//	POST /admin            - login (username, password, secret word)
//	GET  /admin/interface  - rendered submission form (session required)
//	POST /admin/interface  - submit a note (session required)
//	GET  /logout           - clear the session (session required)
func (a *App) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/", a.handleHome).Methods("GET")

	router.HandleFunc("/admin", a.handleAdminLoginPage).Methods("GET")
	router.HandleFunc("/admin", a.handleAdminLogin).Methods("POST")
	router.HandleFunc("/admin/interface", a.requireAdmin(a.handleInterfacePage)).Methods("GET")
	router.HandleFunc("/admin/interface", a.requireAdmin(a.handleSubmit)).Methods("POST")
	router.HandleFunc("/logout", a.requireAdmin(a.handleLogout)).Methods("GET")

	router.HandleFunc("/get/all_books", a.handleAllBooks).Methods("GET")
	router.HandleFunc("/get/authors", a.handleAuthors).Methods("GET")
	router.HandleFunc("/get/notes", a.handleNotes).Methods("GET")

	router.HandleFunc("/health", a.handleHealth).Methods("GET")

	router.Use(a.logRequests)

	return router
}

// Run starts the HTTP server and blocks until the context is cancelled or
// the server fails. Cancellation triggers a graceful shutdown with a short
// drain window.
func (a *App) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%s", a.config.ServerPort)
	a.logger.Info().Str("addr", addr).Msg("starting booknotes server")

	server := &http.Server{
		Addr:    addr,
		Handler: a.Router(),
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}

// logRequests logs one line per handled request.
func (a *App) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		a.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

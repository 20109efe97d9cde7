package booknotes

import (
	"net/http"

	"github.com/booknotes/booknotes/pkg/auth"
	"github.com/booknotes/booknotes/pkg/store"
)

const (
	sessionName     = "booknotes_session"
	sessionAdminKey = "admin_id"
)

// Flash messages shown on the admin pages. The wording is part of the admin
// UI contract.
const (
	flashSubmitted      = "Form submitted successfully"
	flashDuplicate      = "This information is already in the database"
	flashDatabaseError  = "Something went wrong with the database."
	flashBadCredentials = "Invalid username or password"
	flashMissingFields  = "All fields are required"
)

// requireAdmin wraps a handler and rejects requests without an authenticated
// session with 401. No redirect: the admin surface answers unauthorized
// access with a plain status, unlike the login-flow redirects.
func (a *App) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := a.sessions.Get(r, sessionName)
		if _, ok := session.Values[sessionAdminKey].(string); !ok {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r)
	}
}

// handleHome renders the public landing page.
func (a *App) handleHome(w http.ResponseWriter, r *http.Request) {
	a.render(w, "home.html", nil)
}

// handleAdminLoginPage renders the login form with any pending flashes.
func (a *App) handleAdminLoginPage(w http.ResponseWriter, r *http.Request) {
	a.render(w, "admin_login.html", pageData{Flashes: a.popFlashes(w, r)})
}

// handleAdminLogin runs the login flow. The shared secret word is checked
// first, before any credential lookup: its digest must match the configured
// one or the requester is redirected to the deterrent URL and learns nothing
// about whether the username exists. Only then are the credentials verified.
func (a *App) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	secret := r.PostFormValue("secret")

	if username == "" || password == "" || secret == "" {
		a.flash(w, r, flashMissingFields)
		http.Redirect(w, r, "/admin", http.StatusFound)
		return
	}

	if !auth.VerifySecret(secret, a.config.SecretWordDigest) {
		a.logger.Warn().Msg("admin login attempt with wrong secret word")
		http.Redirect(w, r, a.config.DeterrentURL, http.StatusFound)
		return
	}

	admin, err := a.store.GetAdminByUsername(r.Context(), username)
	if err != nil {
		a.logger.Error().Err(err).Msg("admin lookup failed")
		a.flash(w, r, flashDatabaseError)
		http.Redirect(w, r, "/admin", http.StatusFound)
		return
	}
	if admin == nil || !auth.VerifyPassword(password, admin.PasswordHash) {
		a.flash(w, r, flashBadCredentials)
		http.Redirect(w, r, "/admin", http.StatusFound)
		return
	}

	session, _ := a.sessions.Get(r, sessionName)
	session.Values[sessionAdminKey] = admin.ID.String()
	if err := session.Save(r, w); err != nil {
		a.logger.Error().Err(err).Msg("failed to save session")
		respondError(w, http.StatusInternalServerError, "Failed to establish session")
		return
	}

	a.logger.Info().Str("username", username).Msg("admin logged in")
	http.Redirect(w, r, "/admin/interface", http.StatusFound)
}

// handleLogout destroys the session unconditionally.
func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	session, _ := a.sessions.Get(r, sessionName)
	session.Options.MaxAge = -1
	delete(session.Values, sessionAdminKey)
	_ = session.Save(r, w)
	http.Redirect(w, r, "/", http.StatusFound)
}

// handleInterfacePage renders the submission form with any pending flashes.
func (a *App) handleInterfacePage(w http.ResponseWriter, r *http.Request) {
	a.render(w, "admin_interface.html", pageData{Flashes: a.popFlashes(w, r)})
}

// handleSubmit accepts the admin form and hands the tuple to the submission
// workflow. All outcomes land back on the form with a flash: success,
// duplicate, and storage failure alike. Storage failures never surface as
// 500s here; the transaction has already been rolled back by the store.
func (a *App) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	sub := store.Submission{
		Author:  r.PostFormValue("author"),
		Book:    r.PostFormValue("book"),
		Chapter: r.PostFormValue("chapter"),
		Content: r.PostFormValue("content"),
		Bio:     r.PostFormValue("bio"),
	}

	if sub.Author == "" || sub.Book == "" || sub.Chapter == "" || sub.Content == "" || sub.Bio == "" {
		a.flash(w, r, flashMissingFields)
		http.Redirect(w, r, "/admin/interface", http.StatusFound)
		return
	}

	outcome, err := a.store.SubmitNote(r.Context(), sub)
	switch {
	case err != nil:
		a.logger.Error().Err(err).Msg("note submission failed")
		a.flash(w, r, flashDatabaseError)
	case outcome == store.SubmitDuplicate:
		a.flash(w, r, flashDuplicate)
	default:
		a.logger.Info().
			Str("author", sub.Author).
			Str("book", sub.Book).
			Str("chapter", sub.Chapter).
			Msg("note submitted")
		a.flash(w, r, flashSubmitted)
	}
	http.Redirect(w, r, "/admin/interface", http.StatusFound)
}

// flash queues a message for the next rendered admin page.
func (a *App) flash(w http.ResponseWriter, r *http.Request, message string) {
	session, _ := a.sessions.Get(r, sessionName)
	session.AddFlash(message)
	_ = session.Save(r, w)
}

// popFlashes returns and clears the queued flash messages.
func (a *App) popFlashes(w http.ResponseWriter, r *http.Request) []string {
	session, _ := a.sessions.Get(r, sessionName)
	raw := session.Flashes()
	_ = session.Save(r, w)

	flashes := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			flashes = append(flashes, s)
		}
	}
	return flashes
}

// Package booknotes is the application layer of the personal-library notes
// service: configuration, command parsing, the HTTP server, and the handlers
// for the public JSON API and the password-protected admin form.
package booknotes

import (
	"context"
	"fmt"
	"html/template"

	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"

	"github.com/booknotes/booknotes/pkg/auth"
	"github.com/booknotes/booknotes/pkg/logger"
	"github.com/booknotes/booknotes/pkg/models"
	"github.com/booknotes/booknotes/pkg/store"
	"github.com/booknotes/booknotes/pkg/store/gormstore"
)

// App holds the application state. The storage connection is injected
// explicitly and never lives in a package-level singleton.
type App struct {
	store    store.Store
	config   *Config
	sessions *sessions.CookieStore
	logger   zerolog.Logger
	tmpl     *template.Template
}

// New creates an application instance, opening the store selected by the
// configuration: SQLite when SQLitePath is set, PostgreSQL otherwise.
func New(config *Config) (*App, error) {
	var (
		appStore store.Store
		err      error
	)
	if config.SQLitePath != "" {
		appStore, err = gormstore.NewSQLiteStore(config.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database: %w", err)
		}
	} else {
		appStore, err = gormstore.NewPostgresStore(config.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
	}
	return NewWithStore(appStore, config)
}

// NewWithStore creates an application instance on an already-opened store.
// Tests use this to run the full HTTP surface against an in-memory database.
func NewWithStore(appStore store.Store, config *Config) (*App, error) {
	logBuild := logger.New()
	if config.LogPath != "" {
		logBuild = logBuild.FromPath(config.LogPath)
	}
	logData, err := logBuild.Make()
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	cookieStore := sessions.NewCookieStore([]byte(config.SecretKey))
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
	}

	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &App{
		store:    appStore,
		config:   config,
		sessions: cookieStore,
		logger:   logData.Logger,
		tmpl:     tmpl,
	}, nil
}

// Close closes the application and its resources
func (a *App) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

// Store returns the underlying store (useful for testing)
func (a *App) Store() store.Store {
	return a.store
}

// Migrate creates or updates the database schema.
func (a *App) Migrate(ctx context.Context) error {
	if err := a.store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	a.logger.Info().Msg("schema migration complete")
	return nil
}

// CreateAdmin seeds an admin credential with a bcrypt-hashed password. This
// is the out-of-band path for credential creation; nothing on the HTTP
// surface can create one.
func (a *App) CreateAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("username and password must not be empty")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.Admin{Username: username, PasswordHash: hash}
	if err := a.store.CreateAdmin(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	a.logger.Info().Str("username", username).Msg("admin credential created")
	return nil
}

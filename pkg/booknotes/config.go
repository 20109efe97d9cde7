package booknotes

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration shared across all commands.
type Config struct {
	// DatabaseDSN is the PostgreSQL connection string. Ignored when
	// SQLitePath is set.
	DatabaseDSN string
	// SQLitePath selects the SQLite backend instead of PostgreSQL; intended
	// for local development and tests.
	SQLitePath string

	// SecretKey signs the session cookies.
	SecretKey string
	// SecretWordDigest is the hex SHA-256 digest of the shared secret word
	// required on the admin login form. The word itself is never configured
	// on the server.
	SecretWordDigest string
	// DeterrentURL is where login attempts with a wrong secret word are
	// redirected.
	DeterrentURL string

	ServerPort string
	// LogPath appends logs to a file instead of stdout when set.
	LogPath string
}

// Command represents a discrete application operation. Each implementation
// carries the parameters for its operation; Parse routes command-line
// arguments to the right one and Main dispatches on the concrete type.
type Command interface {
	// Name returns the command identifier used for routing.
	Name() string
}

// RunCommand starts the HTTP server.
type RunCommand struct{}

func (*RunCommand) Name() string { return "run" }

// MigrateCommand creates or updates the database schema. Safe to run
// repeatedly; it only adds missing schema elements.
type MigrateCommand struct{}

func (*MigrateCommand) Name() string { return "migrate" }

// CreateAdminCommand seeds an admin credential. This is the only way an
// admin account is ever created; the HTTP surface has no registration.
type CreateAdminCommand struct {
	Username string
	Password string
}

func (*CreateAdminCommand) Name() string { return "create-admin" }

const defaultDeterrentURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

// Parse parses command line arguments and returns the command to execute,
// the application configuration, and any error that occurred. A .env file in
// the working directory is loaded first if present, so local setups don't
// have to export everything by hand.
func Parse(args []string) (Command, *Config, error) {
	_ = godotenv.Load()

	flagSet := flag.NewFlagSet("booknotes", flag.ContinueOnError)

	var (
		port    = flagSet.String("port", "8080", "Server port")
		sqlite  = flagSet.String("sqlite", "", "Path to a SQLite database file (use instead of PostgreSQL)")
		logPath = flagSet.String("log", "", "Append logs to this file instead of stdout")
	)

	if err := flagSet.Parse(args); err != nil {
		return nil, nil, err
	}

	remainingArgs := flagSet.Args()
	if len(remainingArgs) == 0 {
		return nil, nil, fmt.Errorf(`subcommand required

Usage: booknotes [flags] <command>

Commands:
  run                               Start the booknotes server
  migrate                           Run database schema migrations
  create-admin <username> <password>  Seed an admin credential

Examples:
  booknotes migrate
  booknotes create-admin admin s3cret
  booknotes run
  booknotes -port=8090 run
  booknotes -sqlite=booknotes.db run`)
	}

	var cmd Command
	switch remainingArgs[0] {
	case "run":
		cmd = &RunCommand{}
	case "migrate":
		cmd = &MigrateCommand{}
	case "create-admin":
		if len(remainingArgs) != 3 {
			return nil, nil, fmt.Errorf("usage: booknotes create-admin <username> <password>")
		}
		cmd = &CreateAdminCommand{
			Username: remainingArgs[1],
			Password: remainingArgs[2],
		}
	default:
		return nil, nil, fmt.Errorf("unknown command: %s\n\nValid commands: run, migrate, create-admin", remainingArgs[0])
	}

	defaultDSN := fmt.Sprintf(
		"postgres://postgres:%s@localhost:5432/booknotes?sslmode=disable",
		os.Getenv("DB_PWD"),
	)

	config := &Config{
		DatabaseDSN:      getEnv("DATABASE_DSN", defaultDSN),
		SQLitePath:       getEnv("SQLITE_PATH", *sqlite),
		SecretKey:        os.Getenv("SECRET_KEY"),
		SecretWordDigest: os.Getenv("SECRET_WORD_DIGEST"),
		DeterrentURL:     getEnv("DETERRENT_URL", defaultDeterrentURL),
		ServerPort:       getEnv("PORT", *port),
		LogPath:          getEnv("LOG_PATH", *logPath),
	}

	if _, ok := cmd.(*RunCommand); ok {
		if config.SecretKey == "" {
			return nil, nil, fmt.Errorf("SECRET_KEY must be set")
		}
		if config.SecretWordDigest == "" {
			return nil, nil, fmt.Errorf("SECRET_WORD_DIGEST must be set")
		}
	}

	return cmd, config, nil
}

// getEnv retrieves an environment variable with a fallback default.
// Empty values are treated the same as unset ones.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package booknotes

import (
	"context"
	"fmt"
)

// Main is the entry point for the booknotes application. It parses the
// command line arguments, creates the application, and dispatches to the
// requested command. Tests can call it directly without building the binary;
// the context cancels the server for graceful shutdown.
//
// Commands:
//
//	booknotes migrate                             # create/update the schema
//	booknotes create-admin <username> <password>  # seed the admin credential
//	booknotes run                                 # start the server
//
// Configuration comes from environment variables (a .env file is loaded if
// present): DATABASE_DSN or DB_PWD, SQLITE_PATH, SECRET_KEY,
// SECRET_WORD_DIGEST, DETERRENT_URL, PORT, LOG_PATH.
func Main(ctx context.Context, args []string) error {
	cmd, config, err := Parse(args)
	if err != nil {
		return fmt.Errorf("failed to parse configuration: %w", err)
	}

	app, err := New(config)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	defer app.Close()

	switch c := cmd.(type) {
	case *MigrateCommand:
		if err := app.Migrate(ctx); err != nil {
			return err
		}
	case *CreateAdminCommand:
		if err := app.CreateAdmin(ctx, c.Username, c.Password); err != nil {
			return err
		}
	case *RunCommand:
		if err := app.Run(ctx); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	default:
		return fmt.Errorf("unknown command type: %T", cmd)
	}

	return nil
}

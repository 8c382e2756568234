// Package cli implements the notty command-line interface on top of the
// NotesAPI port and the application services.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/notty/internal/application"
	"github.com/ericfisherdev/notty/internal/domain/port/driven"
)

// Services are the dependencies commands operate on.
type Services struct {
	API      driven.NotesAPI
	Sessions *application.SessionService
	Exporter *application.ExportService
}

// Connector builds the services once flags are parsed and logging is set up.
// The returned close function, if non-nil, runs after the command finishes.
type Connector func(ctx context.Context, logger *slog.Logger) (*Services, func() error, error)

// App holds the state shared by all commands of one invocation.
type App struct {
	connect Connector
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer

	verbose bool
	output  string

	svc     *Services
	closeFn func() error
	logger  *slog.Logger
}

// New creates an App that reads from stdin and writes to stdout/stderr.
func New(connect Connector, stdin io.Reader, stdout, stderr io.Writer) *App {
	return &App{
		connect: connect,
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
		logger:  slog.Default(),
	}
}

// RootCommand builds the full command tree.
func (a *App) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "notty",
		Short: "Command-line client for the Notty notes API",
		Long: `notty talks to a Notty backend over its REST API.
Log in once with "notty login"; the session tokens are kept in a local
database. "notes list" refreshes an expired access token on its own; for
other commands run "notty refresh" when the API answers 401.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := parseOutputFormat(a.output); err != nil {
				return err
			}

			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(a.logger)

			svc, closeFn, err := a.connect(cmd.Context(), a.logger)
			if err != nil {
				return err
			}
			a.svc = svc
			a.closeFn = closeFn
			return nil
		},
	}

	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", string(outputTable), "Output format: table, json or yaml")

	root.AddCommand(
		a.registerCommand(),
		a.loginCommand(),
		a.refreshCommand(),
		a.statusCommand(),
		a.notesCommand(),
		a.categoriesCommand(),
		a.subcategoriesCommand(),
		a.exportCommand(),
	)

	return root
}

// Execute runs the command line args and returns the process exit code.
func (a *App) Execute(ctx context.Context, args []string) int {
	root := a.RootCommand()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)

	if a.closeFn != nil {
		if closeErr := a.closeFn(); closeErr != nil {
			a.logger.Error("error closing resources", "error", closeErr)
		}
	}

	if err == nil {
		return 0
	}
	fmt.Fprintln(a.stderr, "Error:", describeError(err))
	return 1
}

// describeError turns authentication failures into instructions. A plain 401
// usually means the access token expired, which a refresh fixes; a failed
// refresh needs a new login.
func describeError(err error) string {
	switch {
	case errors.Is(err, driven.ErrSessionExpired):
		return "session expired: run `notty login` to sign in again"
	case errors.Is(err, driven.ErrUnauthorized):
		return fmt.Sprintf("not authorized (%v): run `notty refresh`, or `notty login` if that fails", err)
	default:
		return err.Error()
	}
}

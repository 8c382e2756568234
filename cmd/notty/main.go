package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch containers

	"github.com/ericfisherdev/notty/internal/adapter/driven/rest"
	sqliteadapter "github.com/ericfisherdev/notty/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/notty/internal/adapter/driving/cli"
	"github.com/ericfisherdev/notty/internal/application"
	"github.com/ericfisherdev/notty/internal/config"
)

func main() {
	// Cancel in-flight requests on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := cli.New(connect, os.Stdin, os.Stdout, os.Stderr)
	code := app.Execute(ctx, os.Args[1:])

	stop()
	os.Exit(code)
}

// connect is the composition root: it loads configuration, opens the token
// database and wires the API client and services.
func connect(ctx context.Context, logger *slog.Logger) (*cli.Services, func() error, error) {
	// 1. Load configuration (fail fast on invalid env vars).
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("config loaded",
		"api_url", cfg.APIURL,
		"db_path", cfg.DBPath,
		"timeout", cfg.Timeout,
		"encrypted_tokens", cfg.HasSecretKey(),
	)

	// 2. Open the token database (dual reader/writer with WAL mode) and migrate it.
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening token database: %w", err)
	}
	closeDB := func() error {
		return db.Close()
	}

	version, err := sqliteadapter.RunMigrations(db.Writer)
	if err != nil {
		_ = closeDB()
		return nil, nil, err
	}
	logger.Debug("token database ready", "db_path", db.Path(), "schema_version", version)

	// 3. Wire the token store.
	if !cfg.HasSecretKey() {
		logger.Warn("NOTTY_SECRET_KEY not set, session tokens are stored unencrypted", "db_path", cfg.DBPath)
	}
	tokens, err := sqliteadapter.NewTokenRepo(db, cfg.SecretKey)
	if err != nil {
		_ = closeDB()
		return nil, nil, err
	}

	// 4. Create the API client.
	api, err := rest.NewClient(cfg.APIURL, tokens, cfg.Timeout, logger)
	if err != nil {
		_ = closeDB()
		return nil, nil, err
	}

	// 5. Create services.
	return &cli.Services{
		API:      api,
		Sessions: application.NewSessionService(api, tokens),
		Exporter: application.NewExportService(api, logger),
	}, closeDB, nil
}

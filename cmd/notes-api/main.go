package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrshanahan/student-notes/internal/config"
	"github.com/mrshanahan/student-notes/internal/logger"
	"github.com/mrshanahan/student-notes/internal/notes"
	"github.com/mrshanahan/student-notes/internal/server"
	"github.com/mrshanahan/student-notes/internal/utils"
	notesdb "github.com/mrshanahan/student-notes/pkg/notes-db"
)

var ShutdownTimeout = 10 * time.Second

func main() {
	exitCode := Run()
	os.Exit(exitCode)
}

func Run() int {
	if len(os.Args) > 1 && utils.Any(os.Args[1:], func(x string) bool { return x == "-h" || x == "--help" || x == "-?" }) {
		printHelp()
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %s\n", err)
		return 1
	}

	log, err := logger.New(cfg.LogLevel, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %s\n", err)
		return 1
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := notesdb.Open(ctx, cfg.StoreURI, log)
	if err != nil {
		log.Errorw("failed to open notes store",
			"err", err)
		return 1
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Errorw("failed to close notes store",
				"err", err)
		}
	}()

	app := server.New(notes.NewService(store), log, server.Options{
		AllowOrigins: cfg.AllowOrigins,
	})

	listenErr := make(chan error, 1)
	go func() {
		log.Infow("listening for requests", "port", cfg.Port)
		listenErr <- app.Listen(cfg.Addr())
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			log.Errorw("failed to initialize HTTP server",
				"err", err)
			return 1
		}
		return 0
	case <-ctx.Done():
	}

	log.Infow("shutting down")
	if err := app.ShutdownWithTimeout(ShutdownTimeout); err != nil {
		log.Errorw("failed to shut down HTTP server",
			"err", err)
		return 1
	}
	return 0
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `
notes-api [-h|--help|-?]

OPTIONS:
	-h|--help|-?	Display this help message and exit

ENVIRONMENT VARIABLES (also read from ./.env):
	PORT:                   (optional) Port on which API should be hosted (default: %d)
	MONGODB_URI:            (optional) Notes store location; mongodb://, mongodb+srv://, sqlite:// or memory:// (default: %s)
	NOTES_API_CORS_ORIGINS: (optional) Comma-separated origins allowed by CORS (default: %s)
	NOTES_API_LOG_LEVEL:    (optional) One of debug, info, warn, error (default: %s)
`,
		config.DefaultPort,
		config.DefaultStoreURI,
		config.DefaultAllowOrigins,
		config.DefaultLogLevel)
}

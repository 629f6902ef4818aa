// Package server wires the notes HTTP API and the browser client onto a fiber app.
package server

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"github.com/mrshanahan/student-notes/internal/middleware"
	notessvc "github.com/mrshanahan/student-notes/internal/notes"
	"github.com/mrshanahan/student-notes/pkg/notes"
	"github.com/mrshanahan/student-notes/web"
)

type NoteService interface {
	ListNotes(ctx context.Context) ([]*notes.Note, error)
	CreateNote(ctx context.Context, req notes.NoteRequest) (*notes.Note, error)
}

type Options struct {
	AllowOrigins string
	// DisableAccessLog turns off the per-request access log line.
	DisableAccessLog bool
}

func New(svc NoteService, log *zap.SugaredLogger, opts Options) *fiber.App {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if opts.AllowOrigins == "" {
		opts.AllowOrigins = "*"
	}

	app := fiber.New(fiber.Config{
		AppName:               "notes-api",
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(log),
	})
	app.Use(requestid.New())
	if !opts.DisableAccessLog {
		app.Use(logger.New())
	}
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: opts.AllowOrigins,
	}))

	h := &Handler{svc: svc, log: log}
	app.Route("/api/notes", func(api fiber.Router) {
		api.Get("/", h.ListNotes)
		api.Post("/", h.CreateNote)
	})

	app.Use("/", filesystem.New(filesystem.Config{
		Root: web.FS(),
	}))

	return app
}

type Handler struct {
	svc NoteService
	log *zap.SugaredLogger
}

func (h *Handler) ListNotes(c *fiber.Ctx) error {
	found, err := h.svc.ListNotes(c.UserContext())
	if err != nil {
		return middleware.NewResponseError(fiber.StatusInternalServerError, "Error fetching notes", unwrapStoreError(err))
	}
	return c.JSON(found)
}

func (h *Handler) CreateNote(c *fiber.Ctx) error {
	req := notes.NoteRequest{}
	if body := c.Body(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			return middleware.NewResponseError(fiber.StatusBadRequest, "Invalid request body", err)
		}
	}

	note, err := h.svc.CreateNote(c.UserContext(), req)
	if errors.Is(err, notessvc.ErrInvalidNote) {
		return middleware.NewResponseError(fiber.StatusBadRequest, "Title and description are required", nil)
	}
	if err != nil {
		return middleware.NewResponseError(fiber.StatusInternalServerError, "Error saving note", unwrapStoreError(err))
	}

	h.log.Infow("created note", "id", note.ID)
	return c.Status(fiber.StatusCreated).JSON(note)
}

// unwrapStoreError strips the service's operation prefix so clients see the
// store's own message.
func unwrapStoreError(err error) error {
	var storeErr *notessvc.StoreError
	if errors.As(err, &storeErr) && storeErr.Err != nil {
		return storeErr.Err
	}
	return err
}

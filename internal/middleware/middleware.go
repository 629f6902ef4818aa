package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/mrshanahan/student-notes/pkg/notes"
)

// ResponseError carries the status and public message a handler wants the
// client to see, alongside the underlying cause.
type ResponseError struct {
	Status  int
	Message string
	Err     error
}

func NewResponseError(status int, message string, err error) *ResponseError {
	return &ResponseError{Status: status, Message: message, Err: err}
}

func (e *ResponseError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}

// ErrorHandler renders handler errors as JSON error bodies. Server-side
// failures are logged with the request id.
func ErrorHandler(log *zap.SugaredLogger) fiber.ErrorHandler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		body := notes.ErrorResponse{Message: "Internal Server Error"}

		var respErr *ResponseError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &respErr):
			status = respErr.Status
			body.Message = respErr.Message
			if respErr.Err != nil {
				body.Error = respErr.Err.Error()
			}
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			body.Message = fiberErr.Message
		default:
			body.Error = err.Error()
		}

		if status >= fiber.StatusInternalServerError {
			log.Errorw("request failed",
				"method", c.Method(),
				"path", c.Path(),
				"status", status,
				"requestID", c.Locals("requestid"),
				"err", err)
		}

		return c.Status(status).JSON(body)
	}
}

package httperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// E is the body of every error reply: {"error": "..."}.
type E struct {
	Status  int    `json:"-" example:"400"`
	Message string `json:"error" example:"Bad Request"`
}

func (e E) Error() string {
	return e.Message
}

// JSON writes e with its status.
func (e E) JSON(c *fiber.Ctx) error {
	return c.Status(e.Status).JSON(e)
}

// New builds an E.
func New(status int, message string) E {
	return E{Status: status, Message: message}
}

// Fail hands e to the global error handler.
func Fail(e E) error {
	return e
}

// InvalidInput is a 400 prefixed with "Invalid input: ".
func InvalidInput(err error) error {
	return New(fiber.StatusBadRequest, "Invalid input: "+err.Error())
}

// NotFound is a 404 carrying err's message.
func NotFound(err error) error {
	return New(fiber.StatusNotFound, err.Error())
}

// Conflict is a 409 carrying err's message.
func Conflict(err error) error {
	return New(fiber.StatusConflict, err.Error())
}

// InternalError is a 500 with a caller-chosen, client-safe message.
func InternalError(message string) E {
	return New(fiber.StatusInternalServerError, message)
}

var (
	ErrBadRequest      = New(fiber.StatusBadRequest, "Bad Request")
	ErrNotFound        = New(fiber.StatusNotFound, "Not Found")
	ErrTooManyRequests = New(fiber.StatusTooManyRequests, "Too Many Requests")
	ErrInternal        = InternalError("Internal Server Error")
)

// From converts any error into the reply it should produce. Errors that are
// neither E nor *fiber.Error become ErrInternal so internals never leak.
func From(err error) E {
	var e E
	if errors.As(err, &e) {
		return e
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return New(fe.Code, fe.Message)
	}
	return ErrInternal
}

// Handler is the app-wide fiber.ErrorHandler.
func Handler(c *fiber.Ctx, err error) error {
	return From(err).JSON(c)
}

package handlerutil

import (
	"errors"
	"strings"

	"note-slides/cmd/server/handlers/httperr"
	"note-slides/internal/logger"
	"note-slides/internal/services/notes"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ParseAndValidateBody parses request body and validates it
func ParseAndValidateBody(c *fiber.Ctx, req any, validator *validator.Validate, handlerName string) error {
	if err := c.BodyParser(req); err != nil {
		logger.L().Warn("failed to parse request body", "handler", handlerName, "path", c.Path(), "error", err)
		return httperr.Fail(httperr.ErrBadRequest)
	}

	if err := validator.Struct(req); err != nil {
		logger.L().Warn("request validation failed", "handler", handlerName, "path", c.Path(), "error", err)
		return httperr.InvalidInput(err)
	}

	return nil
}

// ExtractNoteID reads the note id from the URL. A blank id can never match a
// stored note, so it is reported as not found.
func ExtractNoteID(c *fiber.Ctx, handlerName string) (string, error) {
	noteID := strings.TrimSpace(c.Params("id"))
	if noteID == "" {
		logger.L().Warn("missing note ID parameter", "handler", handlerName, "path", c.Path())
		return "", httperr.NotFound(notes.ErrNoteNotFound)
	}

	return noteID, nil
}

// HandleServiceError maps notes service errors onto HTTP responses.
// Storage faults keep their operation message but never the driver detail.
func HandleServiceError(err error, handlerName, noteID string) error {
	logFields := []any{"handler", handlerName, "error", err}
	if noteID != "" {
		logFields = append(logFields, "noteID", noteID)
	}

	switch {
	case errors.Is(err, notes.ErrValidation):
		logger.L().Info("invalid note input", logFields...)
		return httperr.Fail(httperr.New(fiber.StatusBadRequest, err.Error()))
	case errors.Is(err, notes.ErrNoteNotFound):
		logger.L().Info("resource not found", logFields...)
		return httperr.NotFound(notes.ErrNoteNotFound)
	case errors.Is(err, notes.ErrOrderConflict):
		logger.L().Info("order conflict", logFields...)
		return httperr.Conflict(notes.ErrOrderConflict)
	}

	logger.L().Error("service operation failed", logFields...)
	for _, sentinel := range []error{
		notes.ErrCreateNote,
		notes.ErrListNotes,
		notes.ErrGetNote,
		notes.ErrUpdateNote,
		notes.ErrDeleteNote,
	} {
		if errors.Is(err, sentinel) {
			return httperr.InternalError(sentinel.Error())
		}
	}
	return httperr.Fail(httperr.ErrInternal)
}

package notes

import (
	"context"

	"note-slides/cmd/server/handlers/handlerutil"
	"note-slides/internal/services/notes"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MsgDeleted is the body message returned after a successful delete.
const MsgDeleted = "Note deleted successfully"

// Service defines the interface for notes service
type Service interface {
	List(ctx context.Context) ([]*notes.Note, error)
	Get(ctx context.Context, id string) (*notes.Note, error)
	Create(ctx context.Context, req notes.CreateNoteRequest) (*notes.Note, error)
	Update(ctx context.Context, id string, req notes.UpdateNoteRequest) (*notes.Note, error)
	Delete(ctx context.Context, id string) error
}

// Handlers contains the notes HTTP handlers
type Handlers struct {
	service   Service
	validator *validator.Validate
}

// NewHandlers creates new notes handlers
func NewHandlers(service Service, validator *validator.Validate) *Handlers {
	return &Handlers{
		service:   service,
		validator: validator,
	}
}

// List handles notes listing
// @Summary List every note in display order
// @Tags notes
// @Produce json
// @Success 200 {array} notes.Note
// @Failure 500 {object} httperr.E
// @Router /notes [get]
func (h *Handlers) List(c *fiber.Ctx) error {
	resp, err := h.service.List(c.UserContext())
	if err != nil {
		return handlerutil.HandleServiceError(err, "List", "")
	}

	return c.JSON(resp)
}

// Get handles single note lookup
// @Summary Get a note
// @Tags notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} notes.Note
// @Failure 404 {object} httperr.E
// @Failure 500 {object} httperr.E
// @Router /notes/{id} [get]
func (h *Handlers) Get(c *fiber.Ctx) error {
	noteID, err := handlerutil.ExtractNoteID(c, "Get")
	if err != nil {
		return err
	}

	resp, err := h.service.Get(c.UserContext(), noteID)
	if err != nil {
		return handlerutil.HandleServiceError(err, "Get", noteID)
	}

	return c.JSON(resp)
}

// Create handles note creation
// @Summary Create a new note
// @Description The note is placed after every existing note.
// @Tags notes
// @Accept json
// @Produce json
// @Param request body notes.CreateNoteRequest true "Create note request"
// @Success 201 {object} notes.Note
// @Failure 400 {object} httperr.E
// @Failure 429 {object} httperr.E
// @Failure 500 {object} httperr.E
// @Router /notes [post]
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req notes.CreateNoteRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "Create"); err != nil {
		return err
	}

	resp, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return handlerutil.HandleServiceError(err, "Create", "")
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Update handles note updates
// @Summary Update a note
// @Description Fields present in the body overwrite the stored ones.
// @Tags notes
// @Accept json
// @Produce json
// @Param id path string true "Note ID"
// @Param request body notes.UpdateNoteRequest true "Update note request"
// @Success 200 {object} notes.Note
// @Failure 400 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Failure 409 {object} httperr.E
// @Failure 429 {object} httperr.E
// @Failure 500 {object} httperr.E
// @Router /notes/{id} [put]
func (h *Handlers) Update(c *fiber.Ctx) error {
	noteID, err := handlerutil.ExtractNoteID(c, "Update")
	if err != nil {
		return err
	}

	var req notes.UpdateNoteRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "Update"); err != nil {
		return err
	}

	resp, err := h.service.Update(c.UserContext(), noteID, req)
	if err != nil {
		return handlerutil.HandleServiceError(err, "Update", noteID)
	}

	return c.JSON(resp)
}

// Delete handles note deletion
// @Summary Delete a note
// @Tags notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} notes.DeleteNoteResponse
// @Failure 404 {object} httperr.E
// @Failure 429 {object} httperr.E
// @Failure 500 {object} httperr.E
// @Router /notes/{id} [delete]
func (h *Handlers) Delete(c *fiber.Ctx) error {
	noteID, err := handlerutil.ExtractNoteID(c, "Delete")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.UserContext(), noteID); err != nil {
		return handlerutil.HandleServiceError(err, "Delete", noteID)
	}

	return c.JSON(notes.DeleteNoteResponse{Message: MsgDeleted})
}

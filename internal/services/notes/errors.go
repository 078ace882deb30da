package notes

import (
	"errors"
	"fmt"
)

// ErrValidation matches every *ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError names the field group that failed validation.
type ValidationError struct {
	Group   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrValidation) true.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ErrNoteNotFound - note not found in storage
var ErrNoteNotFound = errors.New("note not found")

// ErrOrderConflict is returned when an order value is already taken.
var ErrOrderConflict = errors.New("order already taken by another note")

// ErrStorage is the parent of every persistence failure.
var ErrStorage = errors.New("storage failure")

// ErrCreateNote is returned when note creation fails.
var ErrCreateNote = fmt.Errorf("failed to create note: %w", ErrStorage)

// ErrListNotes is returned when notes listing fails.
var ErrListNotes = fmt.Errorf("failed to list notes: %w", ErrStorage)

// ErrGetNote is returned when a note lookup fails.
var ErrGetNote = fmt.Errorf("failed to get note: %w", ErrStorage)

// ErrUpdateNote is returned when note update fails.
var ErrUpdateNote = fmt.Errorf("failed to update note: %w", ErrStorage)

// ErrDeleteNote is returned when note deletion fails.
var ErrDeleteNote = fmt.Errorf("failed to delete note: %w", ErrStorage)

// ErrCreateNotesRepo is returned when the notes repository cannot be prepared.
var ErrCreateNotesRepo = errors.New("failed to create notes repository")

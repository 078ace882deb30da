package notes

import (
	"context"
	"errors"
	"log/slog"
	"time"

	util "note-slides/internal/utils"
)

// Service handles notes business logic
type Service struct {
	repo            Repository
	log             *slog.Logger
	defaultGradient string
	now             func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithDefaultGradient overrides the gradient stored when a create request
// carries none.
func WithDefaultGradient(g string) Option {
	return func(s *Service) {
		if g != "" {
			s.defaultGradient = g
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new notes service
func NewService(repo Repository, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:            repo,
		log:             log,
		defaultGradient: DefaultGradient,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// timestamp is truncated to milliseconds so every backend round-trips it.
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// List returns every note in display order
func (s *Service) List(ctx context.Context) ([]*Note, error) {
	notes, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error(ErrListNotes.Error(), "error", err)
		return nil, ErrListNotes
	}
	if notes == nil {
		notes = []*Note{}
	}
	return notes, nil
}

// Get returns a single note
func (s *Service) Get(ctx context.Context, id string) (*Note, error) {
	note, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNoteNotFound) {
			return nil, ErrNoteNotFound
		}
		s.log.Error(ErrGetNote.Error(), "error", err, "note_id", id)
		return nil, ErrGetNote
	}
	return note, nil
}

// Create validates the request, then stores a note placed after every
// existing one
func (s *Service) Create(ctx context.Context, req CreateNoteRequest) (*Note, error) {
	in, err := req.Input()
	if err != nil {
		return nil, err
	}

	gradient := req.Gradient
	if gradient == "" {
		gradient = s.defaultGradient
	}
	if !util.IsGradient(gradient) {
		return nil, &ValidationError{Group: "gradient", Message: "invalid gradient"}
	}

	now := s.timestamp()
	note := &Note{
		Gradient:  gradient,
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.fill(note)

	if err := s.repo.Create(ctx, note); err != nil {
		s.log.Error(ErrCreateNote.Error(), "error", err, "type", string(in.Variant()))
		return nil, ErrCreateNote
	}

	s.log.Debug("note created", "note_id", note.ID, "order", note.Order)
	return note, nil
}

// Update overwrites the fields present in req
func (s *Service) Update(ctx context.Context, id string, req UpdateNoteRequest) (*Note, error) {
	patch, err := req.patch()
	if err != nil {
		return nil, err
	}
	patch.UpdatedAt = s.timestamp()

	note, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoteNotFound):
			return nil, ErrNoteNotFound
		case errors.Is(err, ErrOrderConflict):
			return nil, ErrOrderConflict
		}
		s.log.Error(ErrUpdateNote.Error(), "error", err, "note_id", id)
		return nil, ErrUpdateNote
	}

	return note, nil
}

// Delete removes a note. Remaining orders are not renumbered.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNoteNotFound) {
			return ErrNoteNotFound
		}
		s.log.Error(ErrDeleteNote.Error(), "error", err, "note_id", id)
		return ErrDeleteNote
	}

	s.log.Debug("note deleted", "note_id", id)
	return nil
}

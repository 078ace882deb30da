// Package memory keeps notes in process memory. It backs tests and the
// STORAGE_DRIVER=memory mode; nothing survives a restart.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/oklog/ulid/v2"

	"note-slides/internal/services/notes"
)

// NotesRepo implements notes.Repository over a map guarded by a mutex.
type NotesRepo struct {
	mu    sync.RWMutex
	notes map[string]*notes.Note
}

var _ notes.Repository = (*NotesRepo)(nil)

// NewNotesRepo returns an empty repository.
func NewNotesRepo() *NotesRepo {
	return &NotesRepo{notes: make(map[string]*notes.Note)}
}

// List returns copies of every note in display order.
func (r *NotesRepo) List(ctx context.Context) ([]*notes.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*notes.Note, 0, len(r.notes))
	for _, n := range r.notes {
		cp := *n
		out = append(out, &cp)
	}
	notes.SortByDisplayOrder(out)
	return out, nil
}

// Get returns a copy of the note with the given id.
func (r *NotesRepo) Get(ctx context.Context, id string) (*notes.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.notes[id]
	if !ok {
		return nil, notes.ErrNoteNotFound
	}
	cp := *n
	return &cp, nil
}

// Create assigns an id and the next order under the write lock.
func (r *NotesRepo) Create(ctx context.Context, n *notes.Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	n.ID = ulid.Make().String()
	n.Order = notes.NextOrder(slices.Collect(maps.Values(r.notes)))
	cp := *n
	r.notes[n.ID] = &cp
	return nil
}

// Update applies patch; a taken order yields notes.ErrOrderConflict.
func (r *NotesRepo) Update(ctx context.Context, id string, patch notes.UpdateNote) (*notes.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notes[id]
	if !ok {
		return nil, notes.ErrNoteNotFound
	}
	if patch.Order != nil {
		for otherID, other := range r.notes {
			if otherID != id && other.Order == *patch.Order {
				return nil, notes.ErrOrderConflict
			}
		}
	}

	patch.Apply(n)
	cp := *n
	return &cp, nil
}

// Delete removes the note; other orders are untouched.
func (r *NotesRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[id]; !ok {
		return notes.ErrNoteNotFound
	}
	delete(r.notes, id)
	return nil
}

// Ping always succeeds.
func (r *NotesRepo) Ping(context.Context) error {
	return nil
}

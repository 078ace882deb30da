package notes

import "context"

// Repository defines the interface for notes repository operations.
//
// Create assigns ID and Order on n; the order must be strictly greater than
// every existing order even under concurrent callers. Get, Update and Delete
// return ErrNoteNotFound for unknown ids, and Update returns ErrOrderConflict
// when the patched order is already taken.
type Repository interface {
	List(ctx context.Context) ([]*Note, error)
	Get(ctx context.Context, id string) (*Note, error)
	Create(ctx context.Context, n *Note) error
	Update(ctx context.Context, id string, patch UpdateNote) (*Note, error)
	Delete(ctx context.Context, id string) error
}

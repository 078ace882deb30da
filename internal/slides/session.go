// Package slides drives one browsing session: it holds the note list last
// fetched from the store and the navigator state over it.
//
// A Session is not safe for concurrent use; feed it from a single event loop.
package slides

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"note-slides/internal/navigator"
	"note-slides/internal/services/notes"
)

// Store is the note API the session talks to. *client.Client implements it.
type Store interface {
	List(ctx context.Context) ([]*notes.Note, error)
	Create(ctx context.Context, req notes.CreateNoteRequest) (*notes.Note, error)
	Delete(ctx context.Context, id string) error
}

// Notifier shows a blocking notice to the user.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

// Notify calls f(msg).
func (f NotifierFunc) Notify(msg string) { f(msg) }

// ReconcilePolicy picks how the index is repaired after a delete.
type ReconcilePolicy int

const (
	// ReconcileClamp keeps the index unless it fell off the refreshed list.
	ReconcileClamp ReconcilePolicy = iota
	// ReconcileReference applies the first web client's max(0, N-2) rule on
	// the pre-delete count.
	ReconcileReference
)

// User-facing notices.
const (
	MsgLoadFailed   = "Failed to load notes. Please check your connection."
	MsgCreateFailed = "Failed to create note. Please try again."
	MsgDeleteFailed = "Failed to delete note. Please try again."
)

// ErrNoSlide is returned by actions that need a current slide on an empty list.
var ErrNoSlide = errors.New("no slide selected")

// Option customises a Session.
type Option func(*Session)

// WithReconcilePolicy selects the post-delete reconcile rule.
func WithReconcilePolicy(p ReconcilePolicy) Option {
	return func(s *Session) {
		s.policy = p
	}
}

// Session couples the displayed note list with the navigator.
type Session struct {
	store    Store
	notifier Notifier
	log      *slog.Logger
	policy   ReconcilePolicy

	notes []*notes.Note
	state navigator.State
}

// NewSession returns an empty session; call Load to fetch notes.
func NewSession(store Store, notifier Notifier, log *slog.Logger, opts ...Option) *Session {
	if notifier == nil {
		notifier = NotifierFunc(func(string) {})
	}
	if log == nil {
		log = slog.Default()
	}
	s := &Session{
		store:    store,
		notifier: notifier,
		log:      log,
		state:    navigator.New(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Notes returns the list from the last successful fetch.
func (s *Session) Notes() []*notes.Note {
	return s.notes
}

// State returns the navigator snapshot.
func (s *Session) State() navigator.State {
	return s.state
}

// Current returns the visible note, or nil on an empty list.
func (s *Session) Current() *notes.Note {
	if s.state.Index < 0 || s.state.Index >= len(s.notes) {
		return nil
	}
	return s.notes[s.state.Index]
}

// fail logs err, shows msg and hands err back.
func (s *Session) fail(msg, op string, err error) error {
	s.log.Error(msg, "op", op, "error", err)
	s.notifier.Notify(msg)
	return err
}

// fetch replaces the list with the store's view. On failure nothing changes.
func (s *Session) fetch(ctx context.Context) error {
	list, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	s.notes = list
	return nil
}

// Load fetches the ordered list and fits the index to it.
func (s *Session) Load(ctx context.Context) error {
	if err := s.fetch(ctx); err != nil {
		return s.fail(MsgLoadFailed, "load", err)
	}
	s.reconcile(s.state.Reconcile(len(s.notes)))
	return nil
}

// reconcile installs next and collapses an article that left the list.
func (s *Session) reconcile(next navigator.State) {
	if next.Expanded != "" && s.indexOf(next.Expanded) < 0 {
		next = next.Collapse()
	}
	s.state = next
}

func (s *Session) indexOf(id string) int {
	for i, n := range s.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// Create stores a note and refreshes the list. The index stays where it was.
func (s *Session) Create(ctx context.Context, req notes.CreateNoteRequest) (*notes.Note, error) {
	created, err := s.store.Create(ctx, req)
	if err != nil {
		return nil, s.fail(MsgCreateFailed, "create", err)
	}
	if err := s.Load(ctx); err != nil {
		return created, err
	}
	return created, nil
}

// Delete removes the note with id, refreshes the list and repairs the index
// with the configured policy.
func (s *Session) Delete(ctx context.Context, id string) error {
	prevN := len(s.notes)

	if err := s.store.Delete(ctx, id); err != nil {
		return s.fail(MsgDeleteFailed, "delete", err)
	}
	if err := s.fetch(ctx); err != nil {
		return s.fail(MsgLoadFailed, "load", err)
	}

	n := len(s.notes)
	switch s.policy {
	case ReconcileReference:
		s.reconcile(s.state.ReconcileLegacy(prevN, n))
	default:
		s.reconcile(s.state.Reconcile(n))
	}
	s.log.Debug("note deleted", "note_id", id, "index", s.state.Index, "count", n)
	return nil
}

// DeleteCurrent deletes the visible note.
func (s *Session) DeleteCurrent(ctx context.Context) error {
	cur := s.Current()
	if cur == nil {
		return ErrNoSlide
	}
	return s.Delete(ctx, cur.ID)
}

// PointerDown starts a drag at x.
func (s *Session) PointerDown(x float64) {
	s.state = s.state.Begin(x)
}

// PointerMove follows the drag.
func (s *Session) PointerMove(x float64) {
	s.state = s.state.Move(x)
}

// PointerUp commits the drag.
func (s *Session) PointerUp() {
	s.state = s.state.End()
}

// PointerLeave ends the drag the same way as PointerUp.
func (s *Session) PointerLeave() {
	s.state = s.state.End()
}

// Select jumps to slide i, as clicking its indicator dot does.
func (s *Session) Select(i int) error {
	next, ok := s.state.Select(i)
	if !ok {
		return fmt.Errorf("slide %d out of range [0, %d)", i, s.state.Count)
	}
	s.state = next
	return nil
}

// OpenArticle shows the full content of the visible article.
func (s *Session) OpenArticle() error {
	cur := s.Current()
	if cur == nil {
		return ErrNoSlide
	}
	if cur.Variant != notes.VariantArticle {
		return fmt.Errorf("slide %d is a %s, not an article", s.state.Index+1, cur.Variant)
	}
	s.state = s.state.Expand(cur.ID)
	return nil
}

// CloseArticle returns to the slide previews.
func (s *Session) CloseArticle() {
	s.state = s.state.Collapse()
}

package slides

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"note-slides/internal/services/notes"
)

var silentLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// MockStore is a mock implementation of Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) List(ctx context.Context) ([]*notes.Note, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notes.Note), args.Error(1)
}

func (m *MockStore) Create(ctx context.Context, req notes.CreateNoteRequest) (*notes.Note, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notes.Note), args.Error(1)
}

func (m *MockStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type recorder struct {
	msgs []string
}

func (r *recorder) Notify(msg string) { r.msgs = append(r.msgs, msg) }

func quotes(n int) []*notes.Note {
	out := make([]*notes.Note, n)
	for i := range out {
		out[i] = &notes.Note{
			ID:          fmt.Sprintf("q%d", i),
			Variant:     notes.VariantQuote,
			QuoteText:   fmt.Sprintf("text %d", i),
			QuoteAuthor: "author",
			Order:       i,
		}
	}
	return out
}

func without(list []*notes.Note, id string) []*notes.Note {
	var out []*notes.Note
	for _, n := range list {
		if n.ID != id {
			out = append(out, n)
		}
	}
	return out
}

func loaded(t *testing.T, list []*notes.Note, opts ...Option) (*Session, *MockStore, *recorder) {
	t.Helper()
	store := new(MockStore)
	store.On("List", mock.Anything).Return(list, nil).Once()
	rec := &recorder{}

	s := NewSession(store, rec, silentLogger, opts...)
	require.NoError(t, s.Load(context.Background()))
	return s, store, rec
}

func TestLoad(t *testing.T) {
	s, _, _ := loaded(t, quotes(3))
	assert.Equal(t, 0, s.State().Index)
	assert.Equal(t, 3, s.State().Count)
	assert.Equal(t, "q0", s.Current().ID)
}

func TestLoadEmpty(t *testing.T) {
	s, _, _ := loaded(t, []*notes.Note{})
	assert.Nil(t, s.Current())
	assert.Equal(t, -1, s.State().Index)
	assert.Contains(t, s.Render(), EmptyTitle)
}

func TestLoadFailureKeepsState(t *testing.T) {
	s, store, rec := loaded(t, quotes(3))
	require.NoError(t, s.Select(2))

	store.On("List", mock.Anything).Return(nil, errors.New("offline")).Once()
	err := s.Load(context.Background())

	require.Error(t, err)
	assert.Equal(t, []string{MsgLoadFailed}, rec.msgs)
	assert.Len(t, s.Notes(), 3)
	assert.Equal(t, 2, s.State().Index)
}

func TestSwipeGestures(t *testing.T) {
	s, _, _ := loaded(t, quotes(5))
	require.NoError(t, s.Select(2))

	s.PointerDown(100)
	s.PointerMove(40)
	s.PointerUp()
	assert.Equal(t, 3, s.State().Index)

	s.PointerDown(100)
	s.PointerMove(70)
	s.PointerLeave()
	assert.Equal(t, 3, s.State().Index)

	s.PointerMove(500)
	s.PointerUp()
	assert.Equal(t, 3, s.State().Index, "moves without a press are ignored")

	require.NoError(t, s.Select(0))
	s.PointerDown(0)
	s.PointerMove(300)
	s.PointerUp()
	assert.Equal(t, 0, s.State().Index)
}

func TestSelectOutOfRange(t *testing.T) {
	s, _, _ := loaded(t, quotes(2))
	assert.Error(t, s.Select(2))
	assert.Error(t, s.Select(-1))
	assert.Equal(t, 0, s.State().Index)
}

func TestCreateRefetches(t *testing.T) {
	s, store, _ := loaded(t, quotes(2))
	require.NoError(t, s.Select(1))

	req := notes.CreateNoteRequest{Variant: "quote", QuoteText: "new", QuoteAuthor: "me"}
	created := &notes.Note{ID: "q2", Variant: notes.VariantQuote, Order: 2}
	store.On("Create", mock.Anything, req).Return(created, nil).Once()
	store.On("List", mock.Anything).Return(append(quotes(2), created), nil).Once()

	got, err := s.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Len(t, s.Notes(), 3)
	assert.Equal(t, 1, s.State().Index, "creating does not move the view")
	store.AssertExpectations(t)
}

func TestCreateFailureNotifiesAndKeepsList(t *testing.T) {
	s, store, rec := loaded(t, quotes(2))
	store.On("Create", mock.Anything, mock.Anything).Return(nil, notes.ErrStorage).Once()

	_, err := s.Create(context.Background(), notes.CreateNoteRequest{Variant: "quote"})

	assert.ErrorIs(t, err, notes.ErrStorage)
	assert.Equal(t, []string{MsgCreateFailed}, rec.msgs)
	assert.Len(t, s.Notes(), 2)
	store.AssertNumberOfCalls(t, "List", 1)
}

func TestDeleteLastSlide(t *testing.T) {
	for _, policy := range []ReconcilePolicy{ReconcileClamp, ReconcileReference} {
		t.Run(fmt.Sprint(policy), func(t *testing.T) {
			list := quotes(5)
			s, store, _ := loaded(t, list, WithReconcilePolicy(policy))
			require.NoError(t, s.Select(4))

			store.On("Delete", mock.Anything, "q4").Return(nil).Once()
			store.On("List", mock.Anything).Return(without(list, "q4"), nil).Once()

			require.NoError(t, s.DeleteCurrent(context.Background()))
			assert.Equal(t, 3, s.State().Index, "max(0, N-2) with N=5")
			assert.Equal(t, "q3", s.Current().ID)
		})
	}
}

func TestDeleteMiddleSlideKeepsIndex(t *testing.T) {
	list := quotes(5)
	s, store, _ := loaded(t, list)
	require.NoError(t, s.Select(2))

	store.On("Delete", mock.Anything, "q2").Return(nil).Once()
	store.On("List", mock.Anything).Return(without(list, "q2"), nil).Once()

	require.NoError(t, s.Delete(context.Background(), "q2"))
	assert.Equal(t, 2, s.State().Index)
	assert.Equal(t, "q3", s.Current().ID, "the next note slides into place")
}

func TestDeleteOnlySlide(t *testing.T) {
	list := quotes(1)
	s, store, _ := loaded(t, list)

	store.On("Delete", mock.Anything, "q0").Return(nil).Once()
	store.On("List", mock.Anything).Return([]*notes.Note{}, nil).Once()

	require.NoError(t, s.DeleteCurrent(context.Background()))
	assert.Nil(t, s.Current())
	assert.ErrorIs(t, s.DeleteCurrent(context.Background()), ErrNoSlide)
}

func TestDeleteFailureLeavesStateIntact(t *testing.T) {
	s, store, rec := loaded(t, quotes(3))
	require.NoError(t, s.Select(2))
	before := s.State()

	store.On("Delete", mock.Anything, "q2").Return(notes.ErrNoteNotFound).Once()

	err := s.Delete(context.Background(), "q2")
	assert.ErrorIs(t, err, notes.ErrNoteNotFound)
	assert.Equal(t, []string{MsgDeleteFailed}, rec.msgs)
	assert.Equal(t, before, s.State())
	assert.Len(t, s.Notes(), 3)
	store.AssertNumberOfCalls(t, "List", 1)
}

func TestArticleExpansion(t *testing.T) {
	list := []*notes.Note{
		{ID: "a1", Variant: notes.VariantArticle, ArticleTitle: "Title", ArticleExcerpt: "Excerpt", ArticleContent: "Full body"},
		{ID: "q1", Variant: notes.VariantQuote, QuoteText: "hi", QuoteAuthor: "me"},
	}
	s, store, _ := loaded(t, list)

	preview := s.Render()
	assert.Contains(t, preview, "Article 1/2")
	assert.Contains(t, preview, ReadMore)
	assert.NotContains(t, preview, "Full body")

	require.NoError(t, s.OpenArticle())
	full := s.Render()
	assert.Contains(t, full, "Full body")
	assert.Contains(t, full, BackLabel)
	assert.Equal(t, 0, s.State().Index)

	s.CloseArticle()
	assert.NotContains(t, s.Render(), "Full body")

	require.NoError(t, s.Select(1))
	assert.Error(t, s.OpenArticle(), "quotes cannot be expanded")

	require.NoError(t, s.Select(0))
	require.NoError(t, s.OpenArticle())
	store.On("Delete", mock.Anything, "a1").Return(nil).Once()
	store.On("List", mock.Anything).Return(list[1:], nil).Once()
	require.NoError(t, s.DeleteCurrent(context.Background()))
	assert.Empty(t, s.State().Expanded, "expansion of a deleted article is dropped")
}

func TestRenderQuote(t *testing.T) {
	s, _, _ := loaded(t, quotes(3))
	require.NoError(t, s.Select(1))

	out := s.Render()
	assert.Contains(t, out, "Quote 2/3")
	assert.Contains(t, out, `"text 1"`)
	assert.Contains(t, out, "— author")
	assert.Contains(t, out, SwipeHint)
	assert.Contains(t, out, "○ ● ○")

	require.NoError(t, s.Select(2))
	assert.NotContains(t, s.Render(), SwipeHint, "no hint on the last slide")
}

func TestRenderDragIndicator(t *testing.T) {
	s, _, _ := loaded(t, quotes(3))

	assert.NotContains(t, s.Render(), "drag", "idle shows no drag")

	s.PointerDown(100)
	s.PointerMove(40)
	assert.Contains(t, s.Render(), "drag -60")

	s.PointerMove(130)
	assert.Contains(t, s.Render(), "drag +30")

	s.PointerUp()
	assert.NotContains(t, s.Render(), "drag")
	assert.Equal(t, 0, s.State().Index, "30 is below the threshold")
}

package mongo

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"note-slides/internal/services/notes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func TestNoteDocRoundTrip(t *testing.T) {
	at := time.Date(2025, 6, 1, 23, 0, 26, 5000000, time.UTC)
	in := &notes.Note{
		Variant:     notes.VariantQuote,
		QuoteText:   "Stay hungry",
		QuoteAuthor: "Jobs",
		Gradient:    notes.DefaultGradient,
		Order:       4,
		CreatedAt:   at,
		UpdatedAt:   at,
	}

	doc := toDoc(in)
	doc.ID = bson.NewObjectID()
	out := doc.toNote()

	assert.Equal(t, doc.ID.Hex(), out.ID)
	in.ID = out.ID
	assert.Equal(t, in, out)
}

func TestNoteDocUsesLegacyFieldNames(t *testing.T) {
	raw, err := bson.Marshal(toDoc(&notes.Note{Variant: notes.VariantArticle, ArticleTitle: "T"}))
	require.NoError(t, err)

	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	assert.Equal(t, "article", m["type"])
	assert.Equal(t, "T", m["articleTitle"])
	assert.Contains(t, m, "createdAt")
	assert.NotContains(t, m, "quoteText", "the other variant's group is not stored")
	assert.NotContains(t, m, "_id", "zero ids are left to the caller")
}

func TestSetDoc(t *testing.T) {
	empty := ""
	order := 3
	variant := notes.VariantArticle
	now := time.Now()

	set := setDoc(notes.UpdateNote{QuoteText: &empty, Order: &order, Variant: &variant, UpdatedAt: now})

	assert.Equal(t, bson.M{
		"quoteText": "",
		"order":     3,
		"type":      "article",
		"updatedAt": now.UTC(),
	}, set)
	assert.Empty(t, setDoc(notes.UpdateNote{}))
}

func TestParseIDTreatsGarbageAsNotFound(t *testing.T) {
	_, err := parseID("not-an-object-id")
	assert.ErrorIs(t, err, notes.ErrNoteNotFound)

	oid := bson.NewObjectID()
	got, err := parseID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, got)
}

func TestTranslateNotFound(t *testing.T) {
	assert.ErrorIs(t, translateNotFound(mongo.ErrNoDocuments), notes.ErrNoteNotFound)
	assert.ErrorIs(t, translateNotFound(context.Canceled), context.Canceled)
}

func TestBounded(t *testing.T) {
	t.Run("adds deadline", func(t *testing.T) {
		ctx, cancel := bounded(context.Background())
		defer cancel()
		_, ok := ctx.Deadline()
		assert.True(t, ok)
	})

	t.Run("keeps stricter parent deadline", func(t *testing.T) {
		parent, cancelParent := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancelParent()
		ctx, cancel := bounded(parent)
		defer cancel()
		assert.Equal(t, parent, ctx)
	})

	t.Run("cancelled parent passes through", func(t *testing.T) {
		parent, cancelParent := context.WithCancel(context.Background())
		cancelParent()
		ctx, cancel := bounded(parent)
		defer cancel()
		assert.ErrorIs(t, ctx.Err(), context.Canceled)
	})
}

// setupTestDB connects to MONGO_TEST_URI (or a local default) and skips the
// test when no server is reachable.
func setupTestDB(t *testing.T) (*mongo.Client, *mongo.Database, func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017/?serverSelectionTimeoutMS=500"
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		t.Skip("MongoDB not available for testing:", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		t.Skip("MongoDB ping failed:", err)
	}

	db := client.Database("test_noteslides_" + bson.NewObjectID().Hex())

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	}

	return client, db, cleanup
}

func newQuote(text string) *notes.Note {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &notes.Note{
		Variant:     notes.VariantQuote,
		QuoteText:   text,
		QuoteAuthor: "author",
		Gradient:    notes.DefaultGradient,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestNotesRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping MongoDB integration test")
	}

	ctx := context.Background()
	_, db, cleanup := setupTestDB(t)
	defer cleanup()

	repo, err := NewNotesRepo(ctx, db)
	require.NoError(t, err)

	first := newQuote("first")
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, 0, first.Order)

	second := newQuote("second")
	require.NoError(t, repo.Create(ctx, second))
	assert.Equal(t, 1, second.Order)

	got, err := repo.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	taken := second.Order
	_, err = repo.Update(ctx, first.ID, notes.UpdateNote{Order: &taken})
	assert.ErrorIs(t, err, notes.ErrOrderConflict)

	text := "edited"
	updated, err := repo.Update(ctx, first.ID, notes.UpdateNote{QuoteText: &text})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.QuoteText)
	assert.Equal(t, "author", updated.QuoteAuthor)

	require.NoError(t, repo.Delete(ctx, first.ID))
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), notes.ErrNoteNotFound)
	_, err = repo.Get(ctx, "garbage")
	assert.ErrorIs(t, err, notes.ErrNoteNotFound)

	third := newQuote("third")
	require.NoError(t, repo.Create(ctx, third))
	assert.Equal(t, 2, third.Order, "gap left by the delete is not reused")

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].QuoteText)
	assert.Equal(t, "third", list[1].QuoteText)
	assert.NoError(t, repo.Ping(ctx))
}

func TestNotesRepoConcurrentCreates(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping MongoDB integration test")
	}

	ctx := context.Background()
	_, db, cleanup := setupTestDB(t)
	defer cleanup()

	repo, err := NewNotesRepo(ctx, db)
	require.NoError(t, err)

	const n = 5
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.Create(ctx, newQuote("x")))
		}()
	}
	wg.Wait()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, n)
	for i, note := range list {
		assert.Equal(t, i, note.Order)
	}
}

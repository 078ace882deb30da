package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"note-slides/internal/logger"
	"note-slides/internal/services/notes"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// maxOrderRetries bounds how often Create re-reads the max order after
// losing a race on the unique order index.
const maxOrderRetries = 32

var errOrderRetriesExhausted = errors.New("could not assign a unique order")

// NotesRepo implements the notes.Repository interface for MongoDB
type NotesRepo struct {
	collection *mongo.Collection
}

var _ notes.Repository = (*NotesRepo)(nil)

// noteDoc is the stored shape of a note. Field names match the documents
// written by earlier versions of the app.
type noteDoc struct {
	ID             bson.ObjectID `bson:"_id,omitempty"`
	Type           string        `bson:"type"`
	QuoteText      string        `bson:"quoteText,omitempty"`
	QuoteAuthor    string        `bson:"quoteAuthor,omitempty"`
	ArticleTitle   string        `bson:"articleTitle,omitempty"`
	ArticleExcerpt string        `bson:"articleExcerpt,omitempty"`
	ArticleContent string        `bson:"articleContent,omitempty"`
	Gradient       string        `bson:"gradient"`
	Order          int           `bson:"order"`
	CreatedAt      time.Time     `bson:"createdAt"`
	UpdatedAt      time.Time     `bson:"updatedAt"`
}

func toDoc(n *notes.Note) noteDoc {
	return noteDoc{
		Type:           string(n.Variant),
		QuoteText:      n.QuoteText,
		QuoteAuthor:    n.QuoteAuthor,
		ArticleTitle:   n.ArticleTitle,
		ArticleExcerpt: n.ArticleExcerpt,
		ArticleContent: n.ArticleContent,
		Gradient:       n.Gradient,
		Order:          n.Order,
		CreatedAt:      n.CreatedAt.UTC(),
		UpdatedAt:      n.UpdatedAt.UTC(),
	}
}

func (d noteDoc) toNote() *notes.Note {
	return &notes.Note{
		ID:             d.ID.Hex(),
		Variant:        notes.Variant(d.Type),
		QuoteText:      d.QuoteText,
		QuoteAuthor:    d.QuoteAuthor,
		ArticleTitle:   d.ArticleTitle,
		ArticleExcerpt: d.ArticleExcerpt,
		ArticleContent: d.ArticleContent,
		Gradient:       d.Gradient,
		Order:          d.Order,
		CreatedAt:      d.CreatedAt.UTC(),
		UpdatedAt:      d.UpdatedAt.UTC(),
	}
}

// translateNotFound maps the driver ErrNoDocuments to the domain-level ErrNoteNotFound.
func translateNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return notes.ErrNoteNotFound
	}
	return err
}

// parseID treats malformed ids as unknown notes.
func parseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, notes.ErrNoteNotFound
	}
	return oid, nil
}

// NewNotesRepo creates a new notes repository and its indexes
func NewNotesRepo(parentCtx context.Context, db *mongo.Database) (*NotesRepo, error) {
	collection := db.Collection("notes")

	indexes := []mongo.IndexModel{
		// Orders are unique so two creates can never share a slot.
		{
			Keys:    bson.D{{Key: "order", Value: 1}},
			Options: options.Index().SetName("order_unique").SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "order", Value: 1},
				{Key: "createdAt", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("display_order"),
		},
	}

	ctx, cancel := context.WithTimeout(parentCtx, OpTimeout)
	defer cancel()

	for _, indexModel := range indexes {
		_, err := collection.Indexes().CreateOne(ctx, indexModel)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				logger.L().Error("existing notes share an order, unique index not created", "collection", "notes", "error", err)
			} else {
				logger.L().Error("failed to create index", "collection", "notes", "error", err)
			}
			return nil, fmt.Errorf("failed to create notes collection index: %w", err)
		}
	}

	return &NotesRepo{
		collection: collection,
	}, nil
}

// Ping checks the primary is reachable.
func (r *NotesRepo) Ping(ctx context.Context) error {
	ctx, cancel := bounded(ctx)
	defer cancel()

	return r.collection.Database().Client().Ping(ctx, readpref.Primary())
}

// List retrieves every note sorted by (order, createdAt, _id)
func (r *NotesRepo) List(ctx context.Context) ([]*notes.Note, error) {
	ctx, cancel := bounded(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "order", Value: 1},
		{Key: "createdAt", Value: 1},
		{Key: "_id", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func(ctxToClose context.Context) {
		if cerr := cursor.Close(ctxToClose); cerr != nil {
			logger.L().Error("failed to close cursor", "error", cerr)
		}
	}(ctx)

	var docs []noteDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]*notes.Note, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toNote())
	}
	return out, nil
}

// Get retrieves a note by id
func (r *NotesRepo) Get(ctx context.Context, id string) (*notes.Note, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := bounded(ctx)
	defer cancel()

	var doc noteDoc
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translateNotFound(err)
	}
	return doc.toNote(), nil
}

// nextOrder reads max(order)+1, or 0 for an empty collection.
func (r *NotesRepo) nextOrder(ctx context.Context) (int, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "order", Value: -1}}).
		SetProjection(bson.M{"order": 1})

	var top struct {
		Order int `bson:"order"`
	}
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&top)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return top.Order + 1, nil
}

// Create inserts the note after every existing one. A concurrent create that
// grabs the same order trips the unique index, and the loser re-reads.
func (r *NotesRepo) Create(ctx context.Context, note *notes.Note) error {
	ctx, cancel := bounded(ctx)
	defer cancel()

	doc := toDoc(note)
	doc.ID = bson.NewObjectID()

	for range maxOrderRetries {
		order, err := r.nextOrder(ctx)
		if err != nil {
			return err
		}
		doc.Order = order

		_, err = r.collection.InsertOne(ctx, doc)
		if err == nil {
			note.ID = doc.ID.Hex()
			note.Order = order
			return nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return err
		}
		logger.L().Debug("order taken, retrying", "order", order)
	}

	return errOrderRetriesExhausted
}

// setDoc renders the present patch fields as a $set document.
func setDoc(patch notes.UpdateNote) bson.M {
	set := bson.M{}
	if patch.Variant != nil {
		set["type"] = string(*patch.Variant)
	}
	if patch.QuoteText != nil {
		set["quoteText"] = *patch.QuoteText
	}
	if patch.QuoteAuthor != nil {
		set["quoteAuthor"] = *patch.QuoteAuthor
	}
	if patch.ArticleTitle != nil {
		set["articleTitle"] = *patch.ArticleTitle
	}
	if patch.ArticleExcerpt != nil {
		set["articleExcerpt"] = *patch.ArticleExcerpt
	}
	if patch.ArticleContent != nil {
		set["articleContent"] = *patch.ArticleContent
	}
	if patch.Gradient != nil {
		set["gradient"] = *patch.Gradient
	}
	if patch.Order != nil {
		set["order"] = *patch.Order
	}
	if !patch.UpdatedAt.IsZero() {
		set["updatedAt"] = patch.UpdatedAt.UTC()
	}
	return set
}

// Update applies the patch and returns the stored result
func (r *NotesRepo) Update(ctx context.Context, id string, patch notes.UpdateNote) (*notes.Note, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := bounded(ctx)
	defer cancel()

	filter := bson.M{"_id": oid}
	set := setDoc(patch)

	if len(set) == 0 {
		var existing noteDoc
		if err := r.collection.FindOne(ctx, filter).Decode(&existing); err != nil {
			return nil, translateNotFound(err)
		}
		return existing.toNote(), nil
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated noteDoc
	err = r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, notes.ErrOrderConflict
		}
		return nil, translateNotFound(err)
	}

	return updated.toNote(), nil
}

// Delete deletes a note by id
func (r *NotesRepo) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := bounded(ctx)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return notes.ErrNoteNotFound
	}

	return nil
}

// Package sqlite provides a SQLite-backed notes repository.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"note-slides/internal/clients/sqlite/migrations"
	"note-slides/internal/services/notes"
)

// NotesRepo persists notes in a single SQLite table.
type NotesRepo struct {
	db *sql.DB
}

var _ notes.Repository = (*NotesRepo)(nil)

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

// Open opens (creating if needed) the database at path and applies the
// embedded migrations.
func Open(ctx context.Context, path string) (*NotesRepo, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One connection serialises writers, so the max+1 insert never races.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &NotesRepo{db: db}, nil
}

// Close closes the SQLite handle.
func (r *NotesRepo) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Ping checks the database is reachable.
func (r *NotesRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

const noteColumns = `id, variant, quote_text, quote_author, article_title, article_excerpt,
       article_content, gradient, sort_order, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*notes.Note, error) {
	var (
		n                  notes.Note
		variant            string
		createdAt, updated int64
	)
	if err := row.Scan(
		&n.ID, &variant, &n.QuoteText, &n.QuoteAuthor, &n.ArticleTitle, &n.ArticleExcerpt,
		&n.ArticleContent, &n.Gradient, &n.Order, &createdAt, &updated,
	); err != nil {
		return nil, err
	}
	n.Variant = notes.Variant(variant)
	n.CreatedAt = fromMillis(createdAt)
	n.UpdatedAt = fromMillis(updated)
	return &n, nil
}

// List returns every note in display order.
func (r *NotesRepo) List(ctx context.Context) ([]*notes.Note, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+noteColumns+` FROM notes ORDER BY sort_order ASC, created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	out := make([]*notes.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return out, nil
}

// Get returns one note by id.
func (r *NotesRepo) Get(ctx context.Context, id string) (*notes.Note, error) {
	return getNote(ctx, r.db, id)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getNote(ctx context.Context, q queryRower, id string) (*notes.Note, error) {
	n, err := scanNote(q.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notes.ErrNoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

// Create inserts n with order = max(sort_order)+1 in a single statement.
func (r *NotesRepo) Create(ctx context.Context, n *notes.Note) error {
	id := ulid.Make().String()

	var order int
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO notes (
		   id, variant, quote_text, quote_author, article_title, article_excerpt,
		   article_content, gradient, sort_order, created_at, updated_at
		 )
		 SELECT ?, ?, ?, ?, ?, ?, ?, ?, COALESCE(MAX(sort_order), -1) + 1, ?, ?
		   FROM notes
		 RETURNING sort_order`,
		id, string(n.Variant), n.QuoteText, n.QuoteAuthor, n.ArticleTitle, n.ArticleExcerpt,
		n.ArticleContent, n.Gradient, toMillis(n.CreatedAt), toMillis(n.UpdatedAt),
	).Scan(&order)
	if err != nil {
		return fmt.Errorf("create note: %w", err)
	}

	n.ID = id
	n.Order = order
	return nil
}

// Update applies patch inside a transaction.
func (r *NotesRepo) Update(ctx context.Context, id string, patch notes.UpdateNote) (*notes.Note, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	n, err := getNote(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(n)

	_, err = tx.ExecContext(ctx,
		`UPDATE notes SET
		   variant = ?, quote_text = ?, quote_author = ?, article_title = ?,
		   article_excerpt = ?, article_content = ?, gradient = ?, sort_order = ?, updated_at = ?
		 WHERE id = ?`,
		string(n.Variant), n.QuoteText, n.QuoteAuthor, n.ArticleTitle,
		n.ArticleExcerpt, n.ArticleContent, n.Gradient, n.Order, toMillis(n.UpdatedAt),
		id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, notes.ErrOrderConflict
		}
		return nil, fmt.Errorf("update note: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}
	return n, nil
}

// Delete removes one note.
func (r *NotesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if affected == 0 {
		return notes.ErrNoteNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

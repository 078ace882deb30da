package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"note-slides/internal/config"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	// OpTimeout caps a single repository call.
	OpTimeout = 5 * time.Second

	connectTimeout    = 10 * time.Second
	disconnectTimeout = 5 * time.Second
)

// ErrClosed is returned by Close once the connection is already released.
var ErrClosed = errors.New("mongo connection already closed")

// dialer is the seam between Conn and the driver.
type dialer interface {
	Dial(opts *options.ClientOptions) (*mongo.Client, error)
	Ping(ctx context.Context, cli *mongo.Client) error
	Hangup(ctx context.Context, cli *mongo.Client) error
}

type driverDialer struct{}

func (driverDialer) Dial(opts *options.ClientOptions) (*mongo.Client, error) {
	return mongo.Connect(opts)
}

func (driverDialer) Ping(ctx context.Context, cli *mongo.Client) error {
	return cli.Ping(ctx, readpref.Primary())
}

func (driverDialer) Hangup(ctx context.Context, cli *mongo.Client) error {
	return cli.Disconnect(ctx)
}

var dial dialer = driverDialer{}

// Conn is one verified client plus the database holding the notes.
type Conn struct {
	mu     sync.Mutex
	cli    *mongo.Client
	db     *mongo.Database
	closed bool
}

// Connect dials cfg.MongoURI and pings the primary. A client that fails its
// ping is disconnected before the error is returned.
func Connect(ctx context.Context, cfg config.Config, log *slog.Logger) (*Conn, error) {
	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetConnectTimeout(connectTimeout).
		SetAppName("note-slides")

	cli, err := dial.Dial(opts)
	if err != nil {
		log.Error("mongo dial failed", "err", err)
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := dial.Ping(ctx, cli); err != nil {
		log.Error("mongo ping failed", "err", err)
		_ = dial.Hangup(ctx, cli)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	log.Info("mongo reachable", "db", cfg.MongoDBName)
	return &Conn{cli: cli, db: cli.Database(cfg.MongoDBName)}, nil
}

// Database returns the notes database, nil after Close.
func (c *Conn) Database() *mongo.Database {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db
}

// Close disconnects the client. Later calls return ErrClosed.
func (c *Conn) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	c.closed = true

	ctx, cancel := context.WithTimeout(ctx, disconnectTimeout)
	defer cancel()

	err := dial.Hangup(ctx, c.cli)
	c.cli, c.db = nil, nil
	if err != nil {
		return fmt.Errorf("disconnect mongo: %w", err)
	}
	return nil
}

// bounded applies OpTimeout unless ctx already expires sooner or is done.
// The returned cancel is always safe to defer.
func bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx.Err() != nil {
		return ctx, func() {}
	}
	if dl, ok := ctx.Deadline(); ok && time.Until(dl) <= OpTimeout {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, OpTimeout)
}

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MaxListedCollections caps ListCollectionNames for display.
const MaxListedCollections = 10

// ErrNotConnected is returned by every Store operation when no database
// handle was configured.
var ErrNotConnected = errors.New("database not connected")

// StoreError wraps a failed store call. Its message is the raw driver
// message so handlers can pass it through unchanged.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

// Connect creates a client for uri. The driver connects lazily, so an
// unreachable server is only reported by the first operation or Ping.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	if uri == "" {
		return nil, ErrNotConnected
	}

	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	return client, nil
}

// Store is a thin adapter over a mongo database. It is safe for
// concurrent use; pooling is left to the driver.
type Store struct {
	db *mongo.Database
}

func NewStore(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) connected() bool {
	return s != nil && s.db != nil
}

// Name returns the database name, or "" when not connected.
func (s *Store) Name() string {
	if !s.connected() {
		return ""
	}
	return s.db.Name()
}

// Insert persists record and returns the generated identifier as a hex
// string.
func (s *Store) Insert(ctx context.Context, collection string, record any) (string, error) {
	if !s.connected() {
		return "", wrap("insert", ErrNotConnected)
	}

	res, err := s.db.Collection(collection).InsertOne(ctx, record)
	if err != nil {
		return "", wrap("insert", err)
	}

	switch id := res.InsertedID.(type) {
	case primitive.ObjectID:
		return id.Hex(), nil
	case string:
		return id, nil
	default:
		return fmt.Sprint(id), nil
	}
}

// Query decodes every document matching filter into out, which must be a
// pointer to a slice. A nil filter matches all documents.
func (s *Store) Query(ctx context.Context, collection string, filter bson.M, out any) error {
	if !s.connected() {
		return wrap("query", ErrNotConnected)
	}
	if filter == nil {
		filter = bson.M{}
	}

	cursor, err := s.db.Collection(collection).Find(ctx, filter)
	if err != nil {
		return wrap("query", err)
	}
	defer cursor.Close(ctx)

	return wrap("query", cursor.All(ctx, out))
}

// DistinctValues returns the unique string values of field. Non-string
// values are skipped.
func (s *Store) DistinctValues(ctx context.Context, collection, field string) ([]string, error) {
	if !s.connected() {
		return nil, wrap("distinct", ErrNotConnected)
	}

	raw, err := s.db.Collection(collection).Distinct(ctx, field, bson.M{})
	if err != nil {
		return nil, wrap("distinct", err)
	}

	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if str, ok := v.(string); ok {
			values = append(values, str)
		}
	}
	return values, nil
}

func (s *Store) Count(ctx context.Context, collection string, filter bson.M) (int64, error) {
	if !s.connected() {
		return 0, wrap("count", ErrNotConnected)
	}
	if filter == nil {
		filter = bson.M{}
	}

	n, err := s.db.Collection(collection).CountDocuments(ctx, filter)
	if err != nil {
		return 0, wrap("count", err)
	}
	return n, nil
}

// ListCollectionNames returns at most MaxListedCollections names.
func (s *Store) ListCollectionNames(ctx context.Context) ([]string, error) {
	if !s.connected() {
		return nil, wrap("list collections", ErrNotConnected)
	}

	names, err := s.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, wrap("list collections", err)
	}
	if len(names) > MaxListedCollections {
		names = names[:MaxListedCollections]
	}
	return names, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if !s.connected() {
		return wrap("ping", ErrNotConnected)
	}
	return wrap("ping", s.db.Client().Ping(ctx, nil))
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	if !s.connected() {
		return nil
	}
	return s.db.Client().Disconnect(ctx)
}

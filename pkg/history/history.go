// Package history records past analyses.
//
// # Overview
//
// A [Record] is a compact copy of one [analyzer.Result] plus an ID and a
// timestamp. Records are written to a [Store]:
//
//   - [SQLiteStore]: a local database file, the CLI default
//   - [MongoStore]: a shared MongoDB collection for server deployments
//   - [NullStore]: discards everything (history disabled)
//
// [Open] picks the store from configuration.
//
// # Usage
//
//	store, err := history.Open(ctx, history.Options{Backend: "sqlite", Path: path})
//	defer store.Close()
//
//	_ = store.Save(ctx, history.NewRecord(input, result))
//	recent, err := store.List(ctx, 20)
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/bigo/pkg/analyzer"
	errs "github.com/matzehuels/bigo/pkg/errors"
)

// DefaultListLimit is the number of records List returns when asked for
// zero or fewer.
const DefaultListLimit = 20

// Record is one stored analysis.
type Record struct {
	ID         string    `json:"id" bson:"_id"`
	Input      string    `json:"input" bson:"input"`
	Normalized string    `json:"normalized,omitempty" bson:"normalized,omitempty"`
	OK         bool      `json:"ok" bson:"ok"`
	BigO       string    `json:"bigO,omitempty" bson:"big_o,omitempty"`
	Dominant   string    `json:"dominant,omitempty" bson:"dominant,omitempty"`
	Code       string    `json:"code,omitempty" bson:"code,omitempty"`
	Error      string    `json:"error,omitempty" bson:"error,omitempty"`
	CreatedAt  time.Time `json:"createdAt" bson:"created_at"`
}

// NewRecord builds a record for the analysis of input with a fresh ID.
func NewRecord(input string, r analyzer.Result) Record {
	return Record{
		ID:         uuid.NewString(),
		Input:      input,
		Normalized: r.Normalized,
		OK:         r.OK,
		BigO:       r.BigO,
		Dominant:   r.Dominant,
		Code:       string(r.Code),
		Error:      r.Error,
		CreatedAt:  time.Now().UTC().Truncate(time.Millisecond),
	}
}

// Store persists records. Implementations must be safe for concurrent use.
type Store interface {
	// Save stores a record. Saving an ID twice replaces the earlier record.
	Save(ctx context.Context, r Record) error

	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]Record, error)

	// Get returns the record with the given ID or a NotFound error.
	Get(ctx context.Context, id string) (Record, error)

	Close() error
}

func notFound(id string) error {
	return errs.New(errs.ErrCodeNotFound, "no history record %q", id)
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

// =============================================================================
// Null store
// =============================================================================

// NullStore discards records.
type NullStore struct{}

func (NullStore) Save(context.Context, Record) error                { return nil }
func (NullStore) List(context.Context, int) ([]Record, error)       { return nil, nil }
func (NullStore) Get(_ context.Context, id string) (Record, error) { return Record{}, notFound(id) }
func (NullStore) Close() error                                      { return nil }

// =============================================================================
// Factory
// =============================================================================

// Backend names accepted by [Open].
const (
	BackendNone   = "none"
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
)

// Options selects and configures a history backend.
type Options struct {
	Backend string // none, sqlite or mongo; empty means none

	// Path is the SQLite database file.
	Path string

	// MongoURI, MongoDatabase and MongoCollection locate the Mongo collection.
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// Open creates the store selected by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendNone:
		return NullStore{}, nil
	case BackendSQLite:
		s, err := OpenSQLite(ctx, opts.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendMongo:
		s, err := OpenMongo(ctx, opts.MongoURI, opts.MongoDatabase, opts.MongoCollection)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown history backend %q", opts.Backend)
}

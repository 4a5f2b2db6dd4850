// Package pipeline runs analyses for bigo's front ends.
//
// The CLI, the HTTP API and the MCP server all analyze expressions through a
// [Runner]. The runner wraps [analyzer.Analyze] with the concerns the pure
// core does not have: a result cache keyed by the normalized expression, an
// optional history of past analyses, bounded-concurrency batches, expression
// tree rendering, structured logging and observability hooks.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, store, logger)
//	defer runner.Close()
//
//	res, err := runner.Analyze(ctx, "3n^2 + 2^n", pipeline.Options{Record: true})
//	if err != nil {
//	    return err // context cancelled
//	}
//	fmt.Println(res.Analysis.BigO) // O(2^n)
//
// Batches keep the order of their inputs:
//
//	items, err := runner.AnalyzeBatch(ctx, []string{"n", "n^2"}, pipeline.Options{MaxWorkers: 4})
//
// A failed analysis is a result, not an error: its Analysis.OK is false and
// Analysis.Code names the failure. Runner methods return errors only for
// invalid requests and cancelled contexts.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bigo/pkg/analyzer"
	errs "github.com/matzehuels/bigo/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and MCP
// =============================================================================

const (
	// DefaultMaxWorkers bounds the number of concurrent analyses in a batch.
	DefaultMaxWorkers = 8

	// MaxBatchSize is the largest batch AnalyzeBatch accepts.
	MaxBatchSize = 1000
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a single analysis or a batch.
// This struct supports JSON serialization for API requests.
type Options struct {
	// MaxWorkers bounds batch concurrency. Zero means DefaultMaxWorkers.
	MaxWorkers int `json:"max_workers,omitempty"`

	// Refresh skips the cache lookup. The fresh result still replaces the
	// cached one.
	Refresh bool `json:"refresh,omitempty"`

	// Record saves every analysis to the runner's history store.
	Record bool `json:"record,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if o.MaxWorkers <= 0 {
		o.MaxWorkers = DefaultMaxWorkers
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateBatch checks the size of a batch request.
func ValidateBatch(inputs []string) error {
	if len(inputs) == 0 {
		return errs.New(errs.ErrCodeEmptyInput, "batch has no inputs")
	}
	if len(inputs) > MaxBatchSize {
		return errs.New(errs.ErrCodeEmptyInput, "batch has %d inputs (limit is %d)", len(inputs), MaxBatchSize)
	}
	return nil
}

// =============================================================================
// Results
// =============================================================================

// Result is one analysis as produced by a [Runner].
type Result struct {
	// Input is the expression as given.
	Input string

	// Analysis is the analyzer's verdict.
	Analysis analyzer.Result

	// RecordID is the history record ID when Options.Record was set and
	// the record was saved.
	RecordID string

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks whether the analysis came from the cache.
	CacheInfo CacheInfo
}

// Stats contains execution statistics.
type Stats struct {
	Duration time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	Hit bool // Whether the result came from cache
}

// BatchItem is one entry of a batch response. The analyzer result fields are
// inlined when encoded as JSON.
type BatchItem struct {
	Input string `json:"input"`
	analyzer.Result
	Cached bool `json:"cached"`
}

package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/bigo/pkg/analyzer"
	"github.com/matzehuels/bigo/pkg/cache"
	"github.com/matzehuels/bigo/pkg/core/syntax"
	errs "github.com/matzehuels/bigo/pkg/errors"
	"github.com/matzehuels/bigo/pkg/history"
	"github.com/matzehuels/bigo/pkg/observability"
	"github.com/matzehuels/bigo/pkg/render/treeviz"
)

// Cache key types reported to observability hooks.
const (
	keyTypeResult = "result"
	keyTypeTree   = "tree"
)

// Runner encapsulates analysis execution with caching and history.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for its cache, history store and logger.
// Multiple goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	History history.Store
	Logger  *log.Logger

	// ResultTTL is the lifetime of cached results. Zero means
	// cache.TTLResult.
	ResultTTL time.Duration
}

// NewRunner creates a runner.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
// If store is nil, a NullStore is used (history disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, store history.Store, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if store == nil {
		store = history.NullStore{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:     c,
		Keyer:     keyer,
		History:   store,
		Logger:    logger,
		ResultTTL: cache.TTLResult,
	}
}

// AnalyzeWithCacheInfo analyzes input with caching and returns cache hit info.
// The error is non-nil only when ctx is done.
func (r *Runner) AnalyzeWithCacheInfo(ctx context.Context, input string, opts Options) (*Result, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)
	opts.SetDefaults()

	start := time.Now()
	observability.Analysis().OnAnalyzeStart(ctx, input)
	res, hit := r.analyze(ctx, input, opts)
	d := time.Since(start)
	observability.Analysis().OnAnalyzeComplete(ctx, input, res.BigO, string(res.Code), d)

	result := &Result{
		Input:     input,
		Analysis:  res,
		Stats:     Stats{Duration: d},
		CacheInfo: CacheInfo{Hit: hit},
	}

	if opts.Record {
		rec := history.NewRecord(input, res)
		if err := r.History.Save(ctx, rec); err != nil {
			opts.Logger.Warn("failed to record analysis", "input", input, "error", err)
		} else {
			result.RecordID = rec.ID
		}
	}

	if res.OK {
		opts.Logger.Debug("analyzed expression",
			"input", input,
			"bigo", res.BigO,
			"cached", hit,
			"duration", d)
	} else {
		opts.Logger.Debug("analysis failed",
			"input", input,
			"code", res.Code,
			"cached", hit,
			"duration", d)
	}

	return result, hit, nil
}

// Analyze is a convenience wrapper that calls AnalyzeWithCacheInfo and discards the cache hit info.
func (r *Runner) Analyze(ctx context.Context, input string, opts Options) (*Result, error) {
	res, _, err := r.AnalyzeWithCacheInfo(ctx, input, opts)
	return res, err
}

func (r *Runner) analyze(ctx context.Context, input string, opts Options) (analyzer.Result, bool) {
	// Results are a function of the normalized text only for inputs that
	// pass validation; the rest are rejected before normalization.
	if err := errs.ValidateInput(input); err != nil {
		return analyzer.Analyze(input), false
	}
	key := r.Keyer.ResultKey(syntax.Normalize(input))

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Debug("cache get failed", "key", key, "error", err)
		}
		if err == nil && hit {
			var cached analyzer.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeResult)
				return cached, true
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeResult)
	}

	res := analyzer.Analyze(input)
	if res.Code == errs.ErrCodeInternal {
		return res, false
	}

	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.resultTTL()); err != nil {
			opts.Logger.Debug("cache set failed", "key", key, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeResult, len(data))
		}
	}
	return res, false
}

// AnalyzeBatch analyzes inputs concurrently, at most opts.MaxWorkers at a
// time. Items are returned in input order. The batch stops at the first
// context error.
func (r *Runner) AnalyzeBatch(ctx context.Context, inputs []string, opts Options) ([]BatchItem, error) {
	if err := ValidateBatch(inputs); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)
	opts.SetDefaults()

	start := time.Now()
	items := make([]BatchItem, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.MaxWorkers)
	for i, input := range inputs {
		g.Go(func() error {
			res, hit, err := r.AnalyzeWithCacheInfo(gctx, input, opts)
			if err != nil {
				return err
			}
			items[i] = BatchItem{Input: input, Result: res.Analysis, Cached: hit}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	opts.Logger.Info("analyzed batch",
		"inputs", len(inputs),
		"workers", opts.MaxWorkers,
		"duration", time.Since(start))
	return items, nil
}

// TreeWithCacheInfo renders the expression tree of input in the given format
// (treeviz.FormatDOT or treeviz.FormatSVG) and returns cache hit info.
// Inputs that do not parse return the analyzer's error.
func (r *Runner) TreeWithCacheInfo(ctx context.Context, input, format string, opts Options) ([]byte, bool, error) {
	if err := treeviz.ValidateFormat(format); err != nil {
		return nil, false, err
	}
	if err := errs.ValidateInput(input); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)
	opts.SetDefaults()

	normalized := syntax.Normalize(input)
	key := r.Keyer.TreeKey(normalized, format)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, keyTypeTree)
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeTree)
	}

	if normalized == "" {
		return nil, false, errs.New(errs.ErrCodeEmptyInput, "input has no expression after the t(n)= prefix")
	}
	node, err := syntax.Parse(normalized)
	if err != nil {
		return nil, false, err
	}

	start := time.Now()
	data, err := treeviz.Render(ctx, node, format, treeviz.Options{})
	if err != nil {
		return nil, false, errs.Wrap(errs.ErrCodeInternal, err, "render %s tree", format)
	}
	opts.Logger.Debug("rendered tree", "input", input, "format", format, "duration", time.Since(start))

	if err := r.Cache.Set(ctx, key, data, cache.TTLTree); err == nil {
		observability.Cache().OnCacheSet(ctx, keyTypeTree, len(data))
	}
	return data, false, nil
}

// Tree is a convenience wrapper that calls TreeWithCacheInfo and discards the cache hit info.
func (r *Runner) Tree(ctx context.Context, input, format string, opts Options) ([]byte, error) {
	data, _, err := r.TreeWithCacheInfo(ctx, input, format, opts)
	return data, err
}

// Close releases resources held by the runner (cache and history store).
func (r *Runner) Close() error {
	var cerr, herr error
	if r.Cache != nil {
		cerr = r.Cache.Close()
	}
	if r.History != nil {
		herr = r.History.Close()
	}
	return errors.Join(cerr, herr)
}

func (r *Runner) resultTTL() time.Duration {
	if r.ResultTTL > 0 {
		return r.ResultTTL
	}
	return cache.TTLResult
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

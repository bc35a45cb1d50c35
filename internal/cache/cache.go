// Package cache memoizes parse results by source text. It is used by the CLI
// when the same statements are checked repeatedly (batch scripts with
// duplicated statements, check over many files).
package cache

import (
	"fmt"

	"github.com/dgraph-io/ristretto"
	"go.uber.org/zap"

	sqlerrors "github.com/sqlparse/sqlparse/compiler/errors"
	"github.com/sqlparse/sqlparse/compiler/lexer"
	"github.com/sqlparse/sqlparse/compiler/parser"
)

const (
	defaultMaxCost     = 64 << 20
	defaultNumCounters = 100_000

	// entryOverhead approximates the AST size per source byte
	entryOverhead = 8
)

// Config sizes the cache
type Config struct {
	// MaxCost bounds the total cost of cached entries, in approximate bytes
	MaxCost int64
	// NumCounters is the number of admission counters, ideally 10x the
	// number of entries expected when full
	NumCounters int64
}

// Result is one memoized parse outcome. Exactly one of Statement and Err is
// set.
type Result struct {
	Statement *parser.Statement
	Err       *sqlerrors.ParseError
}

// Stats reports cache effectiveness
type Stats struct {
	Hits   uint64
	Misses uint64
	Ratio  float64
}

// ParseCache is a concurrency-safe, size-bounded parse cache. Cached
// statements are shared between callers and must not be mutated.
type ParseCache struct {
	cache  *ristretto.Cache
	logger *zap.Logger
}

// New creates a ParseCache. Zero fields in cfg take defaults.
func New(cfg Config, logger *zap.Logger) (*ParseCache, error) {
	if cfg.MaxCost <= 0 {
		cfg.MaxCost = defaultMaxCost
	}
	if cfg.NumCounters <= 0 {
		cfg.NumCounters = defaultNumCounters
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: 64,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create parse cache: %w", err)
	}
	return &ParseCache{cache: c, logger: logger}, nil
}

// Parse returns the cached result for source, parsing and storing it on a
// miss. The error, if any, is a *errors.ParseError.
func (pc *ParseCache) Parse(source string) (*parser.Statement, error) {
	res := pc.Lookup(source)
	if res.Err != nil {
		return nil, res.Err
	}
	return res.Statement, nil
}

// Lookup is like Parse but returns the Result itself
func (pc *ParseCache) Lookup(source string) Result {
	if v, ok := pc.cache.Get(source); ok {
		pc.logger.Debug("parse cache hit", zap.Int("bytes", len(source)))
		return v.(Result)
	}

	var res Result
	stmt, perr := parser.New(lexer.Tokenize(source), source, parser.WithLogger(pc.logger)).ParseStatement()
	if perr != nil {
		res.Err = perr
	} else {
		res.Statement = stmt
	}

	if !pc.cache.Set(source, res, cost(source)) {
		pc.logger.Debug("parse cache set dropped", zap.Int("bytes", len(source)))
	}
	// Make the entry visible to the next Get
	pc.cache.Wait()
	return res
}

// Stats returns hit and miss counts since creation
func (pc *ParseCache) Stats() Stats {
	m := pc.cache.Metrics
	return Stats{Hits: m.Hits(), Misses: m.Misses(), Ratio: m.Ratio()}
}

// Clear removes every entry
func (pc *ParseCache) Clear() {
	pc.cache.Clear()
}

// Close stops the cache's background goroutines
func (pc *ParseCache) Close() {
	pc.cache.Close()
}

func cost(source string) int64 {
	return int64(len(source)+1) * entryOverhead
}

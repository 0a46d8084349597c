// Package db defines the storage contract shared by the repository layer.
package db

import (
	"context"
	"time"

	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain/search/filter"
)

// Store is the main database facade combining all sub-interfaces.
// Consumers use the narrow sub-interfaces (ISP).
type Store interface {
	Pinger
	KVStore
	Searcher
	StreamStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides simple key-value operations (embedding cache).
// Cache entries always carry a TTL so stale embeddings age out.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Searcher provides search operations over FT indexes.
type Searcher interface {
	SearchPattern(ctx context.Context, q *PatternQuery) (*SearchResult, error)
	SearchKNN(ctx context.Context, q *KNNQuery) (*SearchResult, error)
}

// StreamStore appends entries to capped streams (usage telemetry).
type StreamStore interface {
	StreamAdd(ctx context.Context, stream string, maxLen int64, fields map[string]string) error
}

// PatternQuery is the input for a case-insensitive substring search, pushed
// to the store as an OR of per-field wildcard conditions.
type PatternQuery struct {
	IndexName    string
	Term         string   // raw user query, wildcarded by the driver
	Fields       []string // text fields to match (ORed)
	Filters      filter.Filter
	Limit        int
	ReturnFields []string
}

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	IndexName    string
	Vector       []float32
	K            int
	Filters      filter.Filter
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}

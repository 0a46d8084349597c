package search

import (
	"context"

	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain"
	domdoc "github.com/rmeshram/docu-vault-essence-sub001/internal/domain/document"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain/search/filter"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain/search/result"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain/usage"
)

// DocumentStore retrieves candidate documents for lexical matching.
type DocumentStore interface {
	FindByTextPredicate(
		ctx context.Context, query string, filters filter.Filter, limit int,
	) ([]domdoc.Record, error)
}

// VectorIndex retrieves nearest-neighbor hits for semantic matching.
type VectorIndex interface {
	Nearest(
		ctx context.Context, vector []float32, scope string,
		threshold float64, limit int,
	) ([]result.Hit, error)
}

// Embedder vectorizes query text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Telemetry records search usage events. Implementations must never block.
type Telemetry interface {
	Record(event usage.Event)
}

// Package vector adapts the vault's vector index to the search core's
// VectorIndex contract.
package vector

import (
	"context"
	"fmt"
	"strings"

	"github.com/rmeshram/docu-vault-essence-sub001/internal/db"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain/search/filter"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain/search/result"
	docrepo "github.com/rmeshram/docu-vault-essence-sub001/internal/repository/document"
)

// IndexName is the FT index carrying document embeddings.
const IndexName = domain.KeyPrefix + "docs:idx"

// returnFields mirror the document projection; the vector itself stays server-side.
var returnFields = []string{
	"name", "category", "extracted_text", "ai_summary",
	"tags", "file_type", "file_size", "created_at", "vault_scope",
}

// store is the consumer interface for KNN search (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Repo implements the search core's VectorIndex contract.
type Repo struct {
	store store
}

// New creates a vector index repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Nearest returns up to limit documents whose embeddings are closest to the
// query vector, restricted to the given vault scope and with similarity at or
// above threshold. Hits below threshold are dropped here, not by the index.
func (r *Repo) Nearest(
	ctx context.Context, vec []float32, scope string, threshold float64, limit int,
) ([]result.Hit, error) {
	scopeFilter, err := filter.New("", "", nil, scope)
	if err != nil {
		return nil, fmt.Errorf("scope filter: %w", err)
	}

	q := &db.KNNQuery{
		IndexName:    IndexName,
		Vector:       vec,
		K:            limit,
		Filters:      scopeFilter,
		ReturnFields: returnFields,
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	return hitsFromEntries(sr, threshold), nil
}

func hitsFromEntries(sr *db.SearchResult, threshold float64) []result.Hit {
	if sr == nil || sr.Total == 0 {
		return nil
	}

	prefix := domain.KeyPrefix + "docs:"
	hits := make([]result.Hit, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		if entry.Score < threshold {
			continue
		}
		id := strings.TrimPrefix(entry.Key, prefix)
		rec := docrepo.RecordFromFields(id, entry.Fields)
		hits = append(hits, result.NewHit(rec, entry.Score))
	}
	return hits
}

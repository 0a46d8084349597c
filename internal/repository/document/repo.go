// Package document adapts the vault's document index to the search core's
// DocumentStore contract.
package document

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rmeshram/docu-vault-essence-sub001/internal/db"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain"
	domdoc "github.com/rmeshram/docu-vault-essence-sub001/internal/domain/document"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain/search/filter"
)

// IndexName is the FT index over vault document hashes.
const IndexName = domain.KeyPrefix + "docs:idx"

// patternFields are the text fields the substring predicate is pushed against.
var patternFields = []string{"name", "extracted_text", "ai_summary"}

// returnFields are the projection fields hydrated from each hit.
var returnFields = []string{
	"name", "category", "extracted_text", "ai_summary",
	"tags", "file_type", "file_size", "created_at", "vault_scope",
}

// store is the consumer interface for document retrieval (ISP).
type store interface {
	SearchPattern(ctx context.Context, q *db.PatternQuery) (*db.SearchResult, error)
}

// Repo implements the search core's DocumentStore contract.
type Repo struct {
	store store
}

// New creates a document repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// FindByTextPredicate returns documents whose name, extracted text, or AI
// summary contain the query as a case-insensitive substring. Tag and date
// constraints that the index understands are pushed down; the caller still
// applies the full filter pipeline to the result.
func (r *Repo) FindByTextPredicate(
	ctx context.Context, query string, f filter.Filter, limit int,
) ([]domdoc.Record, error) {
	q := &db.PatternQuery{
		IndexName:    IndexName,
		Term:         query,
		Fields:       patternFields,
		Filters:      f,
		Limit:        limit,
		ReturnFields: returnFields,
	}

	sr, err := r.store.SearchPattern(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	return recordsFromEntries(sr), nil
}

// recordsFromEntries hydrates document projections from flat hash fields.
func recordsFromEntries(sr *db.SearchResult) []domdoc.Record {
	if sr == nil || sr.Total == 0 {
		return nil
	}

	prefix := domain.KeyPrefix + "docs:"
	records := make([]domdoc.Record, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		id := strings.TrimPrefix(entry.Key, prefix)
		records = append(records, RecordFromFields(id, entry.Fields))
	}
	return records
}

// RecordFromFields builds a Record from a stored field map.
func RecordFromFields(id string, fields map[string]string) domdoc.Record {
	return domdoc.Reconstruct(
		id,
		fields["name"],
		fields["category"],
		fields["extracted_text"],
		fields["ai_summary"],
		splitTags(fields["tags"]),
		fields["file_type"],
		parseInt64(fields["file_size"]),
		parseInt64(fields["created_at"]),
		fields["vault_scope"],
	)
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func parseInt64(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

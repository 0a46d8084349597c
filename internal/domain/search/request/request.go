package request

import (
	"fmt"
	"strings"

	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain/search/filter"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain/search/strategy"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 1024
	DefaultLimit   = 20
	MaxLimit       = 100
)

// Request is a validated search query.
type Request struct {
	query   string
	strat   strategy.Strategy
	filters filter.Filter
	limit   int
	offset  int
	owner   string
}

// New validates and normalizes search parameters.
// Defaults: strategy=hybrid, limit=20, offset=0. The owner scope fills the
// filter's vault scope when the caller did not request one explicitly.
func New(
	query string,
	strat strategy.Strategy,
	filters filter.Filter,
	limit, offset int,
	owner string,
) (Request, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, fmt.Errorf("%w: query is required", domain.ErrInvalidRequest)
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidRequest, MaxQueryLength)
	}
	if strat == "" {
		strat = strategy.Hybrid
	}
	if !strat.IsValid() {
		return Request{}, fmt.Errorf("%w: unknown strategy %q", domain.ErrInvalidRequest, strat)
	}
	if limit < 0 {
		return Request{}, fmt.Errorf("%w: limit must be positive", domain.ErrInvalidRequest)
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		return Request{}, fmt.Errorf("%w: offset must be non-negative", domain.ErrInvalidRequest)
	}
	if owner == "" {
		return Request{}, fmt.Errorf("%w: owner scope is required", domain.ErrInvalidRequest)
	}

	return Request{
		query:   query,
		strat:   strat,
		filters: filters.WithDefaultScope(owner),
		limit:   limit,
		offset:  offset,
		owner:   owner,
	}, nil
}

// Query returns the trimmed search query text.
func (r *Request) Query() string { return r.query }

// Strategy returns the retrieval strategy.
func (r *Request) Strategy() strategy.Strategy { return r.strat }

// Filters returns the filter pipeline input, scope already defaulted.
func (r *Request) Filters() filter.Filter { return r.filters }

// Limit returns the page size.
func (r *Request) Limit() int { return r.limit }

// Offset returns the pagination offset.
func (r *Request) Offset() int { return r.offset }

// Owner returns the requesting identity's personal vault scope.
func (r *Request) Owner() string { return r.owner }

// Package filter implements the shared filter pipeline applied to both
// retrieval paths so they see the same universe of eligible documents.
package filter

import (
	"fmt"
	"strings"

	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain/document"
)

// Filter is a validated set of AND-combined search constraints.
type Filter struct {
	category   string
	fileType   string
	dateRange  *DateRange
	vaultScope string
}

// New validates and creates a Filter. All constraints are optional.
func New(category, fileType string, dateRange *DateRange, vaultScope string) (Filter, error) {
	if dateRange != nil {
		if err := dateRange.validate(); err != nil {
			return Filter{}, fmt.Errorf("%w: %w", domain.ErrInvalidFilter, err)
		}
	}
	return Filter{
		category:   category,
		fileType:   fileType,
		dateRange:  dateRange,
		vaultScope: vaultScope,
	}, nil
}

// Category returns the exact-match category constraint.
func (f Filter) Category() string { return f.category }

// FileType returns the case-insensitive substring file-type constraint.
func (f Filter) FileType() string { return f.fileType }

// DateRange returns the inclusive createdAt bounds.
func (f Filter) DateRange() *DateRange { return f.dateRange }

// VaultScope returns the exact-match vault scope constraint.
func (f Filter) VaultScope() string { return f.vaultScope }

// IsEmpty reports whether the filter has no constraints.
func (f Filter) IsEmpty() bool {
	return f.category == "" && f.fileType == "" && f.dateRange == nil && f.vaultScope == ""
}

// WithDefaultScope returns a copy with the caller's personal scope filled in
// when no explicit scope was requested. Searches are never unscoped.
func (f Filter) WithDefaultScope(scope string) Filter {
	if f.vaultScope != "" {
		return f
	}
	c := f
	c.vaultScope = scope
	return c
}

// Apply filters candidates in order, AND-combining all constraints.
// Pure and order-preserving; both matchers call it so the two paths
// agree on eligibility.
func (f Filter) Apply(candidates []document.Record) []document.Record {
	if f.IsEmpty() {
		return candidates
	}
	out := make([]document.Record, 0, len(candidates))
	for _, rec := range candidates {
		if f.Matches(&rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Matches reports whether a single candidate satisfies every constraint.
func (f Filter) Matches(rec *document.Record) bool {
	if f.category != "" && rec.Category() != f.category {
		return false
	}
	if f.fileType != "" &&
		!strings.Contains(strings.ToLower(rec.FileType()), strings.ToLower(f.fileType)) {
		return false
	}
	if f.dateRange != nil && !f.dateRange.contains(rec.CreatedAt()) {
		return false
	}
	if f.vaultScope != "" && rec.VaultScope() != f.vaultScope {
		return false
	}
	return true
}

// DateRange is an inclusive createdAt window in unix millis.
type DateRange struct {
	start int64
	end   int64
}

// NewDateRange creates an inclusive date range. Zero bounds are open.
func NewDateRange(start, end int64) DateRange {
	return DateRange{start: start, end: end}
}

// Start returns the inclusive lower bound (0 = open).
func (d DateRange) Start() int64 { return d.start }

// End returns the inclusive upper bound (0 = open).
func (d DateRange) End() int64 { return d.end }

func (d DateRange) validate() error {
	if d.start < 0 || d.end < 0 {
		return fmt.Errorf("date range bounds must be non-negative")
	}
	if d.start == 0 && d.end == 0 {
		return fmt.Errorf("date range requires at least one bound")
	}
	if d.start > 0 && d.end > 0 && d.start > d.end {
		return fmt.Errorf("date range start is after end")
	}
	return nil
}

func (d DateRange) contains(at int64) bool {
	if d.start > 0 && at < d.start {
		return false
	}
	if d.end > 0 && at > d.end {
		return false
	}
	return true
}

package request

import (
	"errors"
	"strings"
	"testing"

	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain/search/filter"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain/search/strategy"
)

func TestNew_Defaults(t *testing.T) {
	r, err := New("invoice", "", filter.Filter{}, 0, 0, "personal")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Strategy() != strategy.Hybrid {
		t.Errorf("expected default strategy hybrid, got %s", r.Strategy())
	}
	if r.Limit() != DefaultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLimit, r.Limit())
	}
	if r.Offset() != 0 {
		t.Errorf("expected offset 0, got %d", r.Offset())
	}
	if r.Filters().VaultScope() != "personal" {
		t.Errorf("expected owner scope on filters, got %q", r.Filters().VaultScope())
	}
}

func TestNew_TrimsQuery(t *testing.T) {
	r, err := New("  invoice  ", strategy.Lexical, filter.Filter{}, 10, 0, "personal")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Query() != "invoice" {
		t.Errorf("expected trimmed query, got %q", r.Query())
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		strat  strategy.Strategy
		limit  int
		offset int
		owner  string
	}{
		{"empty query", "", strategy.Hybrid, 10, 0, "personal"},
		{"blank query", "   ", strategy.Hybrid, 10, 0, "personal"},
		{"long query", strings.Repeat("a", MaxQueryLength+1), strategy.Hybrid, 10, 0, "personal"},
		{"unknown strategy", "q", "fuzzy", 10, 0, "personal"},
		{"negative limit", "q", strategy.Hybrid, -1, 0, "personal"},
		{"negative offset", "q", strategy.Hybrid, 10, -1, "personal"},
		{"missing owner", "q", strategy.Hybrid, 10, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.query, tt.strat, filter.Filter{}, tt.limit, tt.offset, tt.owner)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, domain.ErrInvalidRequest) {
				t.Errorf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}

func TestNew_ClampsLimit(t *testing.T) {
	r, err := New("q", strategy.Hybrid, filter.Filter{}, MaxLimit+500, 0, "personal")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Limit() != MaxLimit {
		t.Errorf("expected limit clamped to %d, got %d", MaxLimit, r.Limit())
	}
}

func TestNew_ExplicitScopeSurvives(t *testing.T) {
	f, err := filter.New("", "", nil, "shared")
	if err != nil {
		t.Fatalf("filter.New: %v", err)
	}
	r, err := New("q", strategy.Hybrid, f, 10, 0, "personal")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Filters().VaultScope() != "shared" {
		t.Errorf("explicit scope must not be overwritten, got %q", r.Filters().VaultScope())
	}
}

func TestNew_QueryAtMaxLength(t *testing.T) {
	_, err := New(strings.Repeat("a", MaxQueryLength), strategy.Hybrid, filter.Filter{}, 10, 0, "personal")
	if err != nil {
		t.Fatalf("query at max length should be accepted: %v", err)
	}
}

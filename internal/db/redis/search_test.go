package redis

import (
	"strings"
	"testing"

	"github.com/rmeshram/docu-vault-essence-sub001/internal/db"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain/search/filter"
)

// hasSubsequence reports whether want appears as consecutive tokens in args.
func hasSubsequence(args, want []string) bool {
	for i := 0; i+len(want) <= len(args); i++ {
		match := true
		for j := range want {
			if args[i+j] != want[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func mustFilter(t *testing.T, category, fileType string, dr *filter.DateRange, scope string) filter.Filter {
	t.Helper()
	f, err := filter.New(category, fileType, dr, scope)
	if err != nil {
		t.Fatalf("filter.New: %v", err)
	}
	return f
}

func TestBuildFilter_Empty(t *testing.T) {
	if got := buildFilter(filter.Filter{}); got != "" {
		t.Errorf("expected empty filter expression, got %q", got)
	}
}

func TestBuildFilter_Category(t *testing.T) {
	f := mustFilter(t, "Financial", "", nil, "")
	if got := buildFilter(f); got != "@category:{Financial}" {
		t.Errorf("unexpected expression: %q", got)
	}
}

func TestBuildFilter_EscapesTagValue(t *testing.T) {
	f := mustFilter(t, "Tax & Legal", "", nil, "")
	got := buildFilter(f)
	if !strings.Contains(got, `\&`) || !strings.Contains(got, `\ `) {
		t.Errorf("tag value not escaped: %q", got)
	}
}

func TestBuildFilter_DateRange(t *testing.T) {
	dr := filter.NewDateRange(100, 200)
	f := mustFilter(t, "", "", &dr, "")
	if got := buildFilter(f); got != "@created_at:[100 200]" {
		t.Errorf("unexpected expression: %q", got)
	}
}

func TestBuildFilter_OpenBounds(t *testing.T) {
	start := filter.NewDateRange(100, 0)
	f := mustFilter(t, "", "", &start, "")
	if got := buildFilter(f); got != "@created_at:[100 +inf]" {
		t.Errorf("unexpected open-end expression: %q", got)
	}

	end := filter.NewDateRange(0, 200)
	f = mustFilter(t, "", "", &end, "")
	if got := buildFilter(f); got != "@created_at:[-inf 200]" {
		t.Errorf("unexpected open-start expression: %q", got)
	}
}

func TestBuildFilter_Combined(t *testing.T) {
	dr := filter.NewDateRange(100, 200)
	f := mustFilter(t, "Financial", "pdf", &dr, "personal")
	got := buildFilter(f)

	for _, part := range []string{
		"@category:{Financial}",
		"@vault_scope:{personal}",
		"@created_at:[100 200]",
	} {
		if !strings.Contains(got, part) {
			t.Errorf("expression %q missing %q", got, part)
		}
	}
	// The file type predicate is substring-based and cannot be a TAG
	// filter; it must not leak into the index expression.
	if strings.Contains(got, "file_type") {
		t.Errorf("file_type must stay in-process: %q", got)
	}
}

func TestBuildKNNArgs_WidensResultWindowToK(t *testing.T) {
	args := buildKNNArgs(&db.KNNQuery{
		IndexName:    "vault:docs:idx",
		Vector:       []float32{0.1, 0.2},
		K:            1000,
		ReturnFields: []string{"name"},
	})

	// Without an explicit LIMIT, FT.SEARCH returns at most 10 rows
	// regardless of the KNN K.
	if !hasSubsequence(args, []string{"LIMIT", "0", "1000"}) {
		t.Errorf("expected LIMIT 0 1000 in args: %v", args)
	}
	if args[len(args)-2] != "DIALECT" || args[len(args)-1] != "2" {
		t.Errorf("expected DIALECT 2 last: %v", args)
	}
	if !strings.Contains(args[1], "[KNN 1000 @vector $BLOB]") {
		t.Errorf("unexpected query string: %q", args[1])
	}
}

func TestBuildKNNArgs_ScopePrefilter(t *testing.T) {
	args := buildKNNArgs(&db.KNNQuery{
		IndexName: "vault:docs:idx",
		Vector:    []float32{0.1},
		K:         10,
		Filters:   mustFilter(t, "", "", nil, "personal"),
	})

	if args[1] != "(@vault_scope:{personal})=>[KNN 10 @vector $BLOB]" {
		t.Errorf("unexpected query string: %q", args[1])
	}
}

func TestBuildPatternArgs_Limit(t *testing.T) {
	args := buildPatternArgs(&db.PatternQuery{
		IndexName: "vault:docs:idx",
		Term:      "invoice",
		Fields:    []string{"name", "extracted_text"},
		Limit:     1000,
	})

	if !hasSubsequence(args, []string{"LIMIT", "0", "1000"}) {
		t.Errorf("expected LIMIT 0 1000 in args: %v", args)
	}
	if !strings.Contains(args[1], "@name:(*invoice*)") {
		t.Errorf("unexpected query string: %q", args[1])
	}
}

func TestEscapeQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"invoice", "invoice"},
		{"a-b", `a\-b`},
		{"50%", `50\%`},
		{`path\x`, `path\\x`},
		{"q(1)", `q\(1\)`},
	}

	for _, tt := range tests {
		if got := escapeQuery(tt.in); got != tt.want {
			t.Errorf("escapeQuery(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestVectorToBytes(t *testing.T) {
	got := vectorToBytes([]float32{1.0})
	if len(got) != 4 {
		t.Fatalf("expected 4 bytes per float, got %d", len(got))
	}
	// 1.0 is 0x3F800000, little-endian
	if got[0] != 0x00 || got[1] != 0x00 || got[2] != 0x80 || got[3] != 0x3F {
		t.Errorf("unexpected encoding: %x", got)
	}
}

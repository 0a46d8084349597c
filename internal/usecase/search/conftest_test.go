package search

import (
	"context"
	"testing"

	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain"
	domdoc "github.com/rmeshram/docu-vault-essence-sub001/internal/domain/document"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain/search/filter"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain/search/request"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain/search/result"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain/search/strategy"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain/usage"
)

// --- Mocks ---

type mockDocs struct {
	docs      []domdoc.Record
	err       error
	called    bool
	lastQuery string
	lastLimit int
}

func (m *mockDocs) FindByTextPredicate(
	_ context.Context, query string, _ filter.Filter, limit int,
) ([]domdoc.Record, error) {
	m.called = true
	m.lastQuery = query
	m.lastLimit = limit
	return m.docs, m.err
}

type mockVectors struct {
	hits          []result.Hit
	err           error
	called        bool
	lastScope     string
	lastThreshold float64
}

func (m *mockVectors) Nearest(
	_ context.Context, _ []float32, scope string, threshold float64, _ int,
) ([]result.Hit, error) {
	m.called = true
	m.lastScope = scope
	m.lastThreshold = threshold
	return m.hits, m.err
}

type mockEmbedder struct {
	vec    []float32
	err    error
	called bool
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.called = true
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec}, nil
}

type mockTelemetry struct {
	events []usage.Event
}

func (m *mockTelemetry) Record(ev usage.Event) {
	m.events = append(m.events, ev)
}

// --- Helpers ---

func makeDoc(id, name, category, summary, text string, tags []string, createdAt int64) domdoc.Record {
	return domdoc.Reconstruct(
		id, name, category, text, summary,
		tags, "application/pdf", 1024, createdAt, "personal",
	)
}

func makeRequest(t *testing.T, query string, strat strategy.Strategy) *request.Request {
	t.Helper()
	r, err := request.New(query, strat, filter.Filter{}, 20, 0, "personal")
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return &r
}

func makePagedRequest(t *testing.T, query string, strat strategy.Strategy, limit, offset int) *request.Request {
	t.Helper()
	r, err := request.New(query, strat, filter.Filter{}, limit, offset, "personal")
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return &r
}

func newTestService(docs DocumentStore, vectors VectorIndex, embed Embedder, telemetry Telemetry) *Service {
	return New(docs, vectors, embed, telemetry, Options{})
}

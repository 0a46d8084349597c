// Package search implements the search orchestrator: request dispatch across
// the lexical and semantic paths, result fusion, windowing, and telemetry.
package search

import (
	"context"
	"time"

	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain/search/request"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain/search/result"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain/search/strategy"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain/usage"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/metrics"
)

// maxCandidates bounds per-path candidate retrieval. The vault is
// personal-scale, so the bound is effectively "everything".
const maxCandidates = 1000

// Options tunes scoring and the semantic path. Zero values fall back to
// the service defaults.
type Options struct {
	Weights             Weights
	SimilarityThreshold float64
	SemanticTimeout     time.Duration
}

// Service orchestrates document search across lexical, semantic, and
// hybrid strategies.
type Service struct {
	docs      DocumentStore
	vectors   VectorIndex
	embed     Embedder
	telemetry Telemetry

	weights         Weights
	threshold       float64
	semanticTimeout time.Duration
}

// New creates a search service. embed may be nil when no embedding
// provider is configured; the semantic path then degrades to empty.
func New(docs DocumentStore, vectors VectorIndex, embed Embedder, telemetry Telemetry, opts Options) *Service {
	if opts.Weights == (Weights{}) {
		opts.Weights = Weights{Name: 50, AISummary: 30, Text: 20, Tag: 25}
	}
	if opts.SimilarityThreshold <= 0 {
		opts.SimilarityThreshold = 0.70
	}
	if opts.SemanticTimeout <= 0 {
		opts.SemanticTimeout = 5 * time.Second
	}
	return &Service{
		docs:            docs,
		vectors:         vectors,
		embed:           embed,
		telemetry:       telemetry,
		weights:         opts.Weights,
		threshold:       opts.SimilarityThreshold,
		semanticTimeout: opts.SemanticTimeout,
	}
}

// Response is one page of ranked results plus the pre-window total.
type Response struct {
	Results    []result.Scored
	TotalCount int
	Strategy   strategy.Strategy
}

// Search executes a validated request: dispatches to the requested
// strategy, fuses and windows the ranked list, and emits telemetry.
func (s *Service) Search(ctx context.Context, req *request.Request) (*Response, error) {
	start := time.Now()

	resp, err := s.search(ctx, req)

	duration := time.Since(start)

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.SearchRequestsTotal.WithLabelValues(string(req.Strategy()), status).Inc()
	metrics.SearchDuration.WithLabelValues(string(req.Strategy())).Observe(duration.Seconds())

	if err != nil {
		return nil, err
	}

	metrics.SearchResultsCount.Observe(float64(resp.TotalCount))
	s.recordUsage(req, resp, duration)

	return resp, nil
}

func (s *Service) search(ctx context.Context, req *request.Request) (*Response, error) {
	var (
		ranked []result.Scored
		err    error
	)

	switch req.Strategy() {
	case strategy.Lexical:
		ranked, err = s.searchLexical(ctx, req, maxCandidates)
	case strategy.Semantic:
		ranked = s.searchSemantic(ctx, req, maxCandidates)
	case strategy.Hybrid:
		ranked, err = s.searchHybrid(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	total := len(ranked)

	return &Response{
		Results:    window(ranked, req.Offset(), req.Limit()),
		TotalCount: total,
		Strategy:   req.Strategy(),
	}, nil
}

// searchHybrid runs both paths concurrently and fuses their results.
// A lexical failure is fatal and cancels the semantic path; a semantic
// failure was already absorbed inside searchSemantic.
func (s *Service) searchHybrid(ctx context.Context, req *request.Request) ([]result.Scored, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type lexOut struct {
		results []result.Scored
		err     error
	}

	lexCh := make(chan lexOut, 1)
	semCh := make(chan []result.Scored, 1)

	go func() {
		results, err := s.searchLexical(ctx, req, maxCandidates)
		lexCh <- lexOut{results: results, err: err}
	}()
	go func() {
		semCh <- s.searchSemantic(ctx, req, maxCandidates)
	}()

	lex := <-lexCh
	if lex.err != nil {
		return nil, lex.err
	}

	return fuse(lex.results, <-semCh), nil
}

// window slices one page out of the ranked list. An offset at or past
// the end yields an empty page, never an error.
func window(ranked []result.Scored, offset, limit int) []result.Scored {
	if offset >= len(ranked) {
		return []result.Scored{}
	}
	page := ranked[offset:]
	if len(page) > limit {
		page = page[:limit]
	}
	return page
}

// recordUsage emits a fire-and-forget telemetry event. The sink never
// blocks and its failures never surface to the caller.
func (s *Service) recordUsage(req *request.Request, resp *Response, duration time.Duration) {
	if s.telemetry == nil {
		return
	}

	filters := req.Filters()

	s.telemetry.Record(usage.Event{
		Query:        req.Query(),
		Strategy:     string(resp.Strategy),
		ResultCount:  len(resp.Results),
		TotalCount:   resp.TotalCount,
		Category:     filters.Category(),
		FileType:     filters.FileType(),
		VaultScope:   filters.VaultScope(),
		HasDateRange: filters.DateRange() != nil,
		DurationMS:   duration.Milliseconds(),
	})
}

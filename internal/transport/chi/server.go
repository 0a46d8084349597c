// Package chi implements the HTTP API over the go-chi router.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain/search/filter"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain/search/request"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain/search/result"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain/search/strategy"
	healthuc "github.com/rmeshram/docu-vault-essence-sub001/internal/usecase/health"
	searchuc "github.com/rmeshram/docu-vault-essence-sub001/internal/usecase/search"
)

// ownerHeader carries the caller's vault scope. Absent, the configured
// default scope applies.
const ownerHeader = "X-Vault-Owner"

// Error response codes.
const (
	codeBadRequest      = "bad_request"
	codeInvalidRequest  = "invalid_request"
	codeInvalidFilter   = "invalid_filter"
	codeRetrievalFailed = "retrieval_failed"
	codeInternalError   = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// searcher is the search use case surface the server needs.
type searcher interface {
	Search(ctx context.Context, req *request.Request) (*searchuc.Response, error)
}

// healthChecker is the health use case surface the server needs.
type healthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server exposes the vault search API.
type Server struct {
	search        searcher
	health        healthChecker
	logger        *zap.Logger
	defaultScope  string
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search searcher, health healthChecker, logger *zap.Logger, defaultScope string) *Server {
	s := &Server{
		search:       search,
		health:       health,
		logger:       logger,
		defaultScope: defaultScope,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, codeInvalidRequest),
		sentinelHandler(domain.ErrInvalidFilter, http.StatusBadRequest, codeInvalidFilter),
		sentinelHandler(domain.ErrRetrievalFailed, http.StatusBadGateway, codeRetrievalFailed),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusBadGateway, codeRetrievalFailed),
	}
	return s
}

// Routes mounts the server's handlers on a chi router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/api/v1/search", s.SearchDocuments)
	r.Get("/health", s.Health)
	r.Get("/metrics", s.Metrics)
}

type dateRangeDTO struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

type filtersDTO struct {
	Category   string        `json:"category,omitempty"`
	FileType   string        `json:"fileType,omitempty"`
	DateRange  *dateRangeDTO `json:"dateRange,omitempty"`
	VaultScope string        `json:"vaultScope,omitempty"`
}

type searchRequestDTO struct {
	Query    string      `json:"query"`
	Strategy string      `json:"strategy,omitempty"`
	Filters  *filtersDTO `json:"filters,omitempty"`
	Limit    int         `json:"limit,omitempty"`
	Offset   int         `json:"offset,omitempty"`
}

type searchResultItemDTO struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Category   string   `json:"category,omitempty"`
	AISummary  string   `json:"aiSummary,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	FileType   string   `json:"fileType,omitempty"`
	FileSize   int64    `json:"fileSize,omitempty"`
	CreatedAt  int64    `json:"createdAt"`
	Score      float64  `json:"score"`
	MatchType  string   `json:"matchType"`
	Similarity float64  `json:"similarity,omitempty"`
}

type searchResponseDTO struct {
	Query      string                `json:"query"`
	Strategy   string                `json:"strategyUsed"`
	Filters    filtersDTO            `json:"filters"`
	Results    []searchResultItemDTO `json:"results"`
	TotalCount int                   `json:"totalCount"`
	Limit      int                   `json:"limit"`
	Offset     int                   `json:"offset"`
}

// SearchDocuments handles POST /api/v1/search.
func (s *Server) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	var dto searchRequestDTO
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	filters, err := filtersFromDTO(dto.Filters)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	owner := r.Header.Get(ownerHeader)
	if owner == "" {
		owner = s.defaultScope
	}

	req, err := request.New(
		dto.Query, strategy.Strategy(dto.Strategy), filters,
		dto.Limit, dto.Offset, owner,
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]searchResultItemDTO, len(resp.Results))
	for i := range resp.Results {
		items[i] = resultToDTO(&resp.Results[i])
	}

	writeJSON(w, http.StatusOK, searchResponseDTO{
		Query:      req.Query(),
		Strategy:   string(resp.Strategy),
		Filters:    filtersToDTO(req.Filters()),
		Results:    items,
		TotalCount: resp.TotalCount,
		Limit:      req.Limit(),
		Offset:     req.Offset(),
	})
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func resultToDTO(res *result.Scored) searchResultItemDTO {
	doc := res.Doc()
	return searchResultItemDTO{
		ID:         doc.ID(),
		Name:       doc.Name(),
		Category:   doc.Category(),
		AISummary:  doc.AISummary(),
		Tags:       doc.Tags(),
		FileType:   doc.FileType(),
		FileSize:   doc.FileSize(),
		CreatedAt:  doc.CreatedAt(),
		Score:      res.Score(),
		MatchType:  string(res.MatchType()),
		Similarity: res.Similarity(),
	}
}

// filtersToDTO echoes the applied filters back to the caller, with date
// bounds formatted as RFC 3339 UTC and open bounds omitted.
func filtersToDTO(f filter.Filter) filtersDTO {
	dto := filtersDTO{
		Category:   f.Category(),
		FileType:   f.FileType(),
		VaultScope: f.VaultScope(),
	}
	if dr := f.DateRange(); dr != nil {
		echoed := dateRangeDTO{}
		if dr.Start() > 0 {
			echoed.Start = time.UnixMilli(dr.Start()).UTC().Format(time.RFC3339)
		}
		if dr.End() > 0 {
			echoed.End = time.UnixMilli(dr.End()).UTC().Format(time.RFC3339)
		}
		dto.DateRange = &echoed
	}
	return dto
}

// filtersFromDTO builds the validated filter set, converting RFC 3339
// timestamps (or plain dates) to unix millis.
func filtersFromDTO(dto *filtersDTO) (filter.Filter, error) {
	if dto == nil {
		return filter.Filter{}, nil
	}

	var dateRange *filter.DateRange
	if dto.DateRange != nil {
		start, err := parseFilterTime(dto.DateRange.Start)
		if err != nil {
			return filter.Filter{}, err
		}
		end, err := parseFilterTime(dto.DateRange.End)
		if err != nil {
			return filter.Filter{}, err
		}
		dr := filter.NewDateRange(start, end)
		dateRange = &dr
	}

	return filter.New(dto.Category, dto.FileType, dateRange, dto.VaultScope)
}

// parseFilterTime parses an RFC 3339 timestamp or a plain yyyy-mm-dd
// date into unix millis. Empty means an open bound.
func parseFilterTime(value string) (int64, error) {
	if value == "" {
		return 0, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UnixMilli(), nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid date %q", domain.ErrInvalidFilter, value)
	}
	return t.UnixMilli(), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidRequest,
		domain.ErrInvalidFilter,
		domain.ErrRetrievalFailed,
		domain.ErrStoreUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

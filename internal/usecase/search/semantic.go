package search

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain/search/request"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain/search/result"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/logger"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/metrics"
)

// defaultSemanticFanout bounds nearest-neighbor retrieval when the
// caller did not cap candidates.
const defaultSemanticFanout = 100

// searchSemantic embeds the query and runs nearest-neighbor retrieval.
// Any failure on this path degrades to an empty result set instead of
// failing the request: semantic retrieval is an enhancement, not a
// prerequisite. limit <= 0 falls back to the default fan-out.
func (s *Service) searchSemantic(
	ctx context.Context, req *request.Request, limit int,
) []result.Scored {
	if s.embed == nil {
		s.degrade(ctx, "not_configured", nil)
		return nil
	}

	embedCtx, cancel := context.WithTimeout(ctx, s.semanticTimeout)
	defer cancel()

	embResult, err := s.embed.Embed(embedCtx, req.Query())
	if err != nil {
		s.degrade(ctx, "embed_failed", err)
		return nil
	}

	if limit <= 0 {
		limit = defaultSemanticFanout
	}

	hits, err := s.vectors.Nearest(
		ctx, embResult.Embedding, req.Filters().VaultScope(), s.threshold, limit,
	)
	if err != nil {
		s.degrade(ctx, "index_failed", err)
		return nil
	}

	filters := req.Filters()

	scored := make([]result.Scored, 0, len(hits))
	for i := range hits {
		hit := &hits[i]
		doc := hit.Doc()
		// The vector index only pushes down the scope predicate; the
		// remaining constraints run here over hydrated projections.
		if !filters.Matches(&doc) {
			continue
		}
		score := math.Round(hit.Similarity() * 100)
		scored = append(scored, result.NewSemantic(doc, score, hit.Similarity()))
	}

	sortScored(scored)
	return scored
}

// degrade records a semantic-path failure without propagating it.
func (s *Service) degrade(ctx context.Context, reason string, err error) {
	metrics.SemanticDegradedTotal.WithLabelValues(reason).Inc()
	log := logger.FromContext(ctx)
	if err != nil {
		log.Warn("semantic search degraded",
			zap.String("reason", reason), zap.Error(err))
		return
	}
	log.Debug("semantic search skipped", zap.String("reason", reason))
}

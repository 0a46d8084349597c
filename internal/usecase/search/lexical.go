package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain"
	domdoc "github.com/rmeshram/docu-vault-essence-sub001/internal/domain/document"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain/search/request"
	"github.com/rmeshram/docu-vault-essence-sub001/internal/domain/search/result"
)

// Weights are the per-field contributions to a lexical match score.
// A document's score is the sum of the weights of every field that
// contains the query as a case-insensitive substring.
type Weights struct {
	Name      float64
	AISummary float64
	Text      float64
	Tag       float64
}

// searchLexical retrieves candidates from the store and scores them field
// by field. limit bounds both candidate retrieval and the scored results.
func (s *Service) searchLexical(
	ctx context.Context, req *request.Request, limit int,
) ([]result.Scored, error) {
	docs, err := s.docs.FindByTextPredicate(ctx, req.Query(), req.Filters(), limit)
	if err != nil {
		return nil, fmt.Errorf("%w: find by text predicate: %w", domain.ErrRetrievalFailed, err)
	}

	// The store pushes down category, scope, and date range; the file
	// type predicate is substring-based and only applies here.
	docs = req.Filters().Apply(docs)

	term := strings.ToLower(req.Query())

	scored := make([]result.Scored, 0, len(docs))
	for _, doc := range docs {
		score := scoreDocument(doc, term, s.weights)
		if score <= 0 {
			continue
		}
		scored = append(scored, result.NewLexical(doc, score))
	}

	sortScored(scored)

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// scoreDocument sums the weights of every field containing term.
// A term matching several tags still contributes the tag weight once.
func scoreDocument(doc domdoc.Record, term string, w Weights) float64 {
	score := 0.0
	if strings.Contains(strings.ToLower(doc.Name()), term) {
		score += w.Name
	}
	if strings.Contains(strings.ToLower(doc.AISummary()), term) {
		score += w.AISummary
	}
	if strings.Contains(strings.ToLower(doc.ExtractedText()), term) {
		score += w.Text
	}
	for _, tag := range doc.Tags() {
		if strings.Contains(strings.ToLower(tag), term) {
			score += w.Tag
			break
		}
	}
	return score
}

// sortScored orders results by score descending, then newest first,
// then id ascending for a stable ordering.
func sortScored(results []result.Scored) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score() != results[j].Score() {
			return results[i].Score() > results[j].Score()
		}
		if results[i].CreatedAt() != results[j].CreatedAt() {
			return results[i].CreatedAt() > results[j].CreatedAt()
		}
		return results[i].ID() < results[j].ID()
	})
}

package result

import "github.com/rmeshram/docu-vault-essence-sub001/internal/domain/document"

// MatchType identifies which retrieval path produced a result.
type MatchType string

// Match type constants.
const (
	// MatchLexical is an exact/substring text match.
	MatchLexical MatchType = "lexical"
	// MatchSemantic is an embedding-similarity match.
	MatchSemantic MatchType = "semantic"
)

// Scored wraps a document projection with its relevance score.
// Lexical and semantic scores share one 0-100+ scale so fusion can
// compare them directly.
type Scored struct {
	doc        document.Record
	score      float64
	matchType  MatchType
	similarity float64 // raw cosine similarity, semantic matches only
}

// NewLexical creates a lexically matched result.
func NewLexical(doc document.Record, score float64) Scored {
	return Scored{doc: doc, score: score, matchType: MatchLexical}
}

// NewSemantic creates a semantically matched result, keeping the raw
// similarity that produced the score.
func NewSemantic(doc document.Record, score, similarity float64) Scored {
	return Scored{doc: doc, score: score, matchType: MatchSemantic, similarity: similarity}
}

// Doc returns the matched document projection.
func (s *Scored) Doc() document.Record { return s.doc }

// ID returns the matched document identifier.
func (s *Scored) ID() string { return s.doc.ID() }

// CreatedAt returns the matched document's creation time (unix millis).
func (s *Scored) CreatedAt() int64 { return s.doc.CreatedAt() }

// Score returns the relevance score (higher = more relevant).
func (s *Scored) Score() float64 { return s.score }

// MatchType returns the retrieval path that produced this result.
func (s *Scored) MatchType() MatchType { return s.matchType }

// Similarity returns the raw similarity for semantic matches (0 otherwise).
func (s *Scored) Similarity() float64 { return s.similarity }

// Hit is a raw vector-index hit before score mapping.
type Hit struct {
	doc        document.Record
	similarity float64
}

// NewHit creates a vector-index hit.
func NewHit(doc document.Record, similarity float64) Hit {
	return Hit{doc: doc, similarity: similarity}
}

// Doc returns the hit document projection.
func (h *Hit) Doc() document.Record { return h.doc }

// Similarity returns the cosine similarity on a 0-1 scale.
func (h *Hit) Similarity() float64 { return h.similarity }

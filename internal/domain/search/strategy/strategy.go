package strategy

// Strategy is the retrieval strategy for a search request.
type Strategy string

// Search strategy constants.
const (
	// Hybrid combines lexical and semantic retrieval.
	Hybrid  Strategy = "hybrid"
	Lexical Strategy = "lexical"
	// Semantic matches by embedding similarity rather than exact text.
	Semantic Strategy = "semantic"
)

// IsValid checks if the strategy is one of the supported values.
func (s Strategy) IsValid() bool {
	return s == Hybrid || s == Lexical || s == Semantic
}

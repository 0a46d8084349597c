package search

import "github.com/rmeshram/docu-vault-essence-sub001/internal/domain/search/result"

// fuse merges lexical and semantic result sets into one ranked list.
// A document matched by both paths appears once with its higher score;
// on an exact tie the lexical entry wins so the match type reflects the
// cheaper, deterministic path.
func fuse(lexical, semantic []result.Scored) []result.Scored {
	byID := make(map[string]result.Scored, len(lexical)+len(semantic))

	for _, r := range lexical {
		byID[r.ID()] = r
	}
	for _, r := range semantic {
		if existing, ok := byID[r.ID()]; ok && existing.Score() >= r.Score() {
			continue
		}
		byID[r.ID()] = r
	}

	fused := make([]result.Scored, 0, len(byID))
	for _, r := range byID {
		fused = append(fused, r)
	}

	sortScored(fused)
	return fused
}

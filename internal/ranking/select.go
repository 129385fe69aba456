package ranking

import (
	"sort"

	"resumematch/internal/domain"
)

// DefaultLimit is the number of matches returned when no limit is given.
const DefaultLimit = 3

// Select returns up to limit candidates with the highest scores, best first.
// A name is reported once, at its best-ranked occurrence. Equal scores keep
// their input order. A limit <= 0 means DefaultLimit.
func Select(candidates []domain.ScoredDocument, limit int) []domain.ScoredDocument {
	if limit <= 0 {
		limit = DefaultLimit
	}
	out := make([]domain.ScoredDocument, 0, min(limit, len(candidates)))
	seen := make(map[string]struct{}, limit)
	for _, idx := range argsortDesc(candidates) {
		c := candidates[idx]
		if _, dup := seen[c.Name]; dup {
			continue
		}
		seen[c.Name] = struct{}{}
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out
}

func argsortDesc(candidates []domain.ScoredDocument) []int {
	idxs := make([]int, len(candidates))
	for i := range idxs {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(i, j int) bool {
		return candidates[idxs[i]].Score > candidates[idxs[j]].Score
	})
	return idxs
}

// Package rank scores batches of search results against the query that
// produced them.
package rank

import (
	"sort"
	"strings"

	"github.com/querent-dev/querent/pkg/core"
)

// Rank scores every result in the batch and returns the batch sorted by
// score, highest first. The score is the case-insensitive number of times
// the original query occurs in the result's snippet text, doubled, plus
// whatever score the record already carried. Freshly built records carry 0,
// so the prior-score term only matters for records scored elsewhere first.
//
// Scores are written back to the records in place. The sort is stable:
// results with equal scores keep their insertion order.
func Rank(results []*core.Result, originalQuery string) []*core.Result {
	needle := strings.ToLower(originalQuery)
	for _, r := range results {
		relevance := float64(strings.Count(strings.ToLower(r.Snippet()), needle) * 2)
		r.RankScore = relevance + r.RankScore
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RankScore > results[j].RankScore
	})
	return results
}

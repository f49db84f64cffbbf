package index

import (
	"sort"

	"github.com/tessera-app/tessera/core"
)

// distanceNoise is the minimum difference, in canvas units, before two
// results' distances to the viewport center are treated as distinct.
// Sub-threshold differences fall through to the next ranking criterion.
const distanceNoise = 100.0

// rankResults sorts results into the total order used for display:
//
//  1. results whose node title contains the query substring
//  2. results whose matched unit contains the verbatim query
//  3. smaller distance to the viewport center, when one is supplied and
//     the difference exceeds the noise threshold
//  4. more recently constructed result
func rankResults(results []*SearchResult, viewportCenter *core.Point) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]

		if a.titleMatch != b.titleMatch {
			return a.titleMatch
		}
		if a.exact != b.exact {
			return a.exact
		}
		if viewportCenter != nil {
			da := a.Position.DistanceTo(*viewportCenter)
			db := b.Position.DistanceTo(*viewportCenter)
			diff := da - db
			if diff < -distanceNoise {
				return true
			}
			if diff > distanceNoise {
				return false
			}
		}
		return a.seq > b.seq
	})
}

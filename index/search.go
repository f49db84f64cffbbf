package index

import (
	"slices"
	"strings"
	"time"

	"github.com/tessera-app/tessera/core"
)

// maxResults caps both the fallback scan and the final ranked list, to
// keep as-you-type queries responsive on large canvases.
const maxResults = 100

// Search executes a query against the index and returns ranked results.
// viewportCenter, when non-nil, lets spatially closer nodes rank higher.
// The empty query, and queries matching nothing, return an empty list;
// Search never fails.
func (s *Store) Search(query string, viewportCenter *core.Point) []*SearchResult {
	return s.SearchWithMonitor(query, viewportCenter, nil)
}

// SearchWithMonitor executes a query with per-stage observer callbacks.
//
// The query is tokenized and each token is prefix-expanded against the
// postings table; candidate units must match every token (AND across
// terms, OR across prefix expansions within a term). When tokenization
// yields nothing or the intersection is empty, a brute-force substring
// scan over all unit texts takes over. Candidates that do not contain the
// literal query substring are dropped rather than given a token-based
// snippet; see CandidateDropped.
func (s *Store) SearchWithMonitor(query string, viewportCenter *core.Point, monitor Monitor) []*SearchResult {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	monitor.Start(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	tokens := Tokenize(query)
	terms := make([]string, len(tokens))
	for i, token := range tokens {
		terms[i] = token.Term
	}
	monitor.AfterTokenize(terms)

	var candidates []core.ID
	if len(terms) > 0 {
		candidates = s.intersectPrefixCandidates(terms)
		monitor.AfterPrefixIntersection(slices.Values(candidates))
	}
	if len(candidates) == 0 {
		candidates = s.scanForSubstring(query)
		monitor.AfterFallbackScan(slices.Values(candidates))
	}

	results := make([]*SearchResult, 0, len(candidates))
	for _, unitID := range candidates {
		unit, ok := s.units[unitID]
		if !ok {
			continue
		}
		start, end := matchRange(unit.text, query)
		if start < 0 {
			// Token-AND matched but the literal query substring is absent
			// (terms present but not contiguous). Dropped by policy.
			monitor.CandidateDropped(unitID)
			continue
		}
		meta, ok := s.meta[unit.nodeID]
		if !ok {
			continue
		}

		results = append(results, &SearchResult{
			NodeID:     unit.nodeID,
			NodeTitle:  meta.Title,
			NodeColor:  meta.Color,
			Position:   meta.Position,
			UnitID:     unitID,
			Kind:       unit.kind,
			Role:       unit.role,
			RoleLabel:  meta.RoleLabel,
			Snippet:    buildSnippet(unit.text, start, end),
			UnitText:   unit.text,
			Timestamp:  time.Now(),
			titleMatch: containsFold(meta.Title, query),
			exact:      true, // literal match is required above
			seq:        len(results),
		})
	}

	rankResults(results, viewportCenter)
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	monitor.Finish(results)

	return results
}

// intersectPrefixCandidates returns the unit IDs matching every term via
// prefix expansion, sorted for deterministic result construction. Returns
// nil as soon as any intersection is empty.
func (s *Store) intersectPrefixCandidates(terms []string) []core.ID {
	var intersection map[core.ID]struct{}

	for _, term := range terms {
		expanded := make(map[core.ID]struct{})
		for key, bucket := range s.postings {
			if !strings.HasPrefix(key, term) {
				continue
			}
			for _, p := range bucket {
				expanded[p.UnitID] = struct{}{}
			}
		}
		if len(expanded) == 0 {
			return nil
		}

		if intersection == nil {
			intersection = expanded
			continue
		}
		for unitID := range intersection {
			if _, ok := expanded[unitID]; !ok {
				delete(intersection, unitID)
			}
		}
		if len(intersection) == 0 {
			return nil
		}
	}

	ids := make([]core.ID, 0, len(intersection))
	for unitID := range intersection {
		ids = append(ids, unitID)
	}
	slices.Sort(ids)
	return ids
}

// scanForSubstring is the fallback path: a case-insensitive substring scan
// over every stored unit text, capped at maxResults.
func (s *Store) scanForSubstring(query string) []core.ID {
	ids := make([]core.ID, 0, len(s.units))
	for unitID := range s.units {
		ids = append(ids, unitID)
	}
	slices.Sort(ids)

	matched := make([]core.ID, 0)
	for _, unitID := range ids {
		if containsFold(s.units[unitID].text, query) {
			matched = append(matched, unitID)
			if len(matched) >= maxResults {
				break
			}
		}
	}
	return matched
}

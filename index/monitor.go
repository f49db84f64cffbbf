package index

import (
	"iter"

	"github.com/tessera-app/tessera/core"
)

// Monitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during
// a query, for example in diagnostics tooling or tests.
type Monitor interface {
	Start(query string)
	AfterTokenize(terms []string)
	AfterPrefixIntersection(units iter.Seq[core.ID])
	AfterFallbackScan(units iter.Seq[core.ID])
	// CandidateDropped reports a unit that satisfied token matching but
	// did not contain the literal query substring.
	CandidateDropped(unitID core.ID)
	Finish(results []*SearchResult)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                              {}
func (n *noopMonitor) AfterTokenize(_ []string)                    {}
func (n *noopMonitor) AfterPrefixIntersection(_ iter.Seq[core.ID]) {}
func (n *noopMonitor) AfterFallbackScan(_ iter.Seq[core.ID])       {}
func (n *noopMonitor) CandidateDropped(_ core.ID)                  {}
func (n *noopMonitor) Finish(_ []*SearchResult)                    {}

package query

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tessera-app/tessera/core"
	"github.com/tessera-app/tessera/index"
)

// fakeSearcher records the queries it receives and returns canned results.
type fakeSearcher struct {
	mu      sync.Mutex
	queries []string
	centers []*core.Point
	results []*index.SearchResult
	block   chan struct{} // When non-nil, Search waits for a receive before returning
}

func (f *fakeSearcher) Search(query string, viewportCenter *core.Point) []*index.SearchResult {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	f.centers = append(f.centers, viewportCenter)
	return f.results
}

func (f *fakeSearcher) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

func TestNewController(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		c, err := NewController(&fakeSearcher{})
		require.NoError(t, err)
		assert.NotNil(t, c)
	})

	t.Run("nil searcher", func(t *testing.T) {
		_, err := NewController(nil)
		assert.Equal(t, ErrSearcherRequired, err)
	})

	t.Run("negative debounce clamps to zero", func(t *testing.T) {
		c, err := NewController(&fakeSearcher{}, WithDebounce(-time.Second))
		require.NoError(t, err)
		assert.Equal(t, time.Duration(0), c.delay)
	})
}

func TestController_DebounceCoalescesKeystrokes(t *testing.T) {
	searcher := &fakeSearcher{}
	c, err := NewController(searcher, WithDebounce(30*time.Millisecond))
	require.NoError(t, err)
	defer c.Stop()

	c.SetQuery("b")
	c.SetQuery("bu")
	c.SetQuery("bud")
	assert.True(t, c.IsSearching())

	require.Eventually(t, func() bool {
		return c.HasSearched()
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"bud"}, searcher.seen(), "only the final keystroke should reach the searcher")
	assert.False(t, c.IsSearching())
	assert.Equal(t, "bud", c.Query())
}

func TestController_SearchNowBypassesDebounce(t *testing.T) {
	hit := &index.SearchResult{NodeID: "n1"}
	searcher := &fakeSearcher{results: []*index.SearchResult{hit}}
	c, err := NewController(searcher, WithDebounce(time.Hour))
	require.NoError(t, err)
	defer c.Stop()

	c.SetQuery("budget")
	results := c.SearchNow()

	require.Len(t, results, 1)
	assert.Equal(t, core.ID("n1"), results[0].NodeID)
	assert.True(t, c.HasSearched())
	assert.False(t, c.IsSearching())
	assert.Equal(t, results, c.Results())
	assert.Equal(t, []string{"budget"}, searcher.seen(), "the pending debounce timer must not fire as well")
}

func TestController_Clear(t *testing.T) {
	searcher := &fakeSearcher{results: []*index.SearchResult{{NodeID: "n1"}}}
	c, err := NewController(searcher, WithDebounce(0))
	require.NoError(t, err)

	c.SetQuery("budget")
	c.SearchNow()
	require.True(t, c.HasSearched())

	c.Clear()

	assert.Equal(t, "", c.Query())
	assert.Empty(t, c.Results())
	assert.False(t, c.IsSearching())
	assert.False(t, c.HasSearched())
}

func TestController_StaleResultsDiscarded(t *testing.T) {
	slow := &fakeSearcher{
		results: []*index.SearchResult{{NodeID: "stale"}},
		block:   make(chan struct{}),
	}
	c, err := NewController(slow, WithDebounce(0))
	require.NoError(t, err)
	defer c.Stop()

	// First search starts and blocks inside the searcher.
	c.SetQuery("old")
	time.Sleep(20 * time.Millisecond)

	// A newer request invalidates the one in flight.
	c.Clear()
	slow.block <- struct{}{}
	time.Sleep(20 * time.Millisecond)

	assert.Empty(t, c.Results(), "completion of the superseded search must be discarded")
	assert.False(t, c.HasSearched())
}

func TestController_ViewportCenterForwarded(t *testing.T) {
	searcher := &fakeSearcher{}
	c, err := NewController(searcher, WithDebounce(0))
	require.NoError(t, err)

	c.UpdateViewportCenter(core.Point{X: 42, Y: -7})
	c.SetQuery("anything")
	c.SearchNow()

	searcher.mu.Lock()
	defer searcher.mu.Unlock()
	require.NotEmpty(t, searcher.centers)
	center := searcher.centers[len(searcher.centers)-1]
	require.NotNil(t, center)
	assert.Equal(t, core.Point{X: 42, Y: -7}, *center)
}

func TestController_SelectionForwarded(t *testing.T) {
	var selected *index.SearchResult
	c, err := NewController(&fakeSearcher{}, WithSelectionHandler(func(r *index.SearchResult) {
		selected = r
	}))
	require.NoError(t, err)

	hit := &index.SearchResult{NodeID: "n1"}
	c.Select(hit)

	assert.Same(t, hit, selected)
}

func TestController_SelectWithoutHandler(t *testing.T) {
	c, err := NewController(&fakeSearcher{})
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		c.Select(&index.SearchResult{NodeID: "n1"})
	})
}

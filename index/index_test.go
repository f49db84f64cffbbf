package index

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tessera-app/tessera/core"
)

func testNode() *core.Node {
	return &core.Node{
		Id:        "n1",
		Title:     "Budget Plan",
		Color:     "emerald",
		Position:  core.Point{X: 100, Y: 200},
		Kind:      core.NodeKindStandard,
		RoleLabel: "Finance Analyst",
		Messages: []core.Message{
			{Id: "m1", Role: core.RoleUser, Content: "What is our Q3 budget?"},
			{Id: "m2", Role: core.RoleAssistant, Content: "Roughly forty thousand."},
		},
	}
}

func TestNewStore(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		store, err := NewStore()
		require.NoError(t, err)
		assert.NotNil(t, store)
		assert.Equal(t, Stats{}, store.Stats())
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		store, err := NewStore(WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, store)
	})
}

func TestIndexNode_Units(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	store.IndexNode(testNode())

	stats := store.Stats()
	assert.Equal(t, 1, stats.Nodes)
	// Title unit, role-label unit, and two conversation units.
	assert.Equal(t, 4, stats.Units)

	roleUnit, ok := store.units[core.RoleUnitID("n1")]
	require.True(t, ok, "role-label unit should be stored under its synthetic ID")
	assert.Equal(t, core.ID("n1"), roleUnit.nodeID)
	assert.Equal(t, MatchRole, roleUnit.kind)
	assert.Equal(t, RoleLabelPrefix+"Finance Analyst", roleUnit.text)

	titleUnit, ok := store.units["n1"]
	require.True(t, ok)
	assert.Equal(t, MatchTitle, titleUnit.kind)
	assert.Equal(t, "Title: Budget Plan", titleUnit.text)
}

func TestIndexNode_Idempotent(t *testing.T) {
	node := testNode()

	once, err := NewStore()
	require.NoError(t, err)
	once.IndexNode(node)

	twice, err := NewStore()
	require.NoError(t, err)
	twice.IndexNode(node)
	twice.IndexNode(node)

	assert.True(t, reflect.DeepEqual(once.postings, twice.postings), "postings differ after reindex")
	assert.True(t, reflect.DeepEqual(once.units, twice.units), "units differ after reindex")
	assert.True(t, reflect.DeepEqual(once.nodeUnits, twice.nodeUnits), "node-to-units differ after reindex")
	assert.True(t, reflect.DeepEqual(once.unitTokens, twice.unitTokens), "reverse index differs after reindex")
	assert.True(t, reflect.DeepEqual(once.meta, twice.meta), "metadata differs after reindex")
}

func TestIndexNode_ReindexDropsStaleContent(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	node := testNode()
	store.IndexNode(node)
	require.Len(t, store.Search("forty", nil), 1)

	node.Messages = []core.Message{
		{Id: "m1", Role: core.RoleUser, Content: "What is our Q3 budget?"},
	}
	store.IndexNode(node)

	assert.Empty(t, store.Search("forty", nil), "stale message should be gone after reindex")
	assert.Len(t, store.Search("budget", nil), 2)
}

func TestRemoveNode(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	store.IndexNode(testNode())
	store.IndexNode(&core.Node{
		Id:    "n2",
		Title: "Groceries",
		Kind:  core.NodeKindStandard,
		Messages: []core.Message{
			{Id: "m3", Role: core.RoleUser, Content: "buy milk and bread"},
		},
	})

	store.RemoveNode("n1")

	assert.Empty(t, store.Search("budget", nil))
	assert.Empty(t, store.Search("finance", nil))

	stats := store.Stats()
	assert.Equal(t, 1, stats.Nodes)
	assert.Equal(t, 2, stats.Units)

	for term, bucket := range store.postings {
		for _, p := range bucket {
			assert.NotEqual(t, core.ID("n1"), p.NodeID, "posting for removed node left in bucket %q", term)
		}
	}
	assert.NotContains(t, store.meta, core.ID("n1"))
	assert.NotContains(t, store.nodeUnits, core.ID("n1"))

	// Other node is unaffected.
	assert.Len(t, store.Search("milk", nil), 1)
}

func TestRemoveNode_Unknown(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	store.IndexNode(testNode())
	before := store.Stats()

	store.RemoveNode("never-indexed")

	assert.Equal(t, before, store.Stats())
}

func TestRebuild_ReplacesState(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	store.IndexNode(testNode())
	store.Rebuild([]*core.Node{
		{
			Id:    "n9",
			Title: "Roadmap",
			Kind:  core.NodeKindStandard,
			Messages: []core.Message{
				{Id: "m9", Role: core.RoleUser, Content: "ship the beta"},
			},
		},
		nil, // nil snapshots are skipped
	})

	assert.Empty(t, store.Search("budget", nil))
	assert.Len(t, store.Search("roadmap", nil), 1)
	assert.Equal(t, 1, store.Stats().Nodes)
}

func TestUpdateNodeMetadata(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	node := testNode()
	store.IndexNode(node)

	moved := *node
	moved.Title = "Budget Plan v2"
	moved.Position = core.Point{X: 900, Y: -50}
	store.UpdateNodeMetadata(&moved)

	results := store.Search("budget", nil)
	require.NotEmpty(t, results)
	for _, res := range results {
		assert.Equal(t, "Budget Plan v2", res.NodeTitle)
		assert.Equal(t, core.Point{X: 900, Y: -50}, res.Position)
	}

	// Postings were not touched: the old title text is still indexed.
	assert.NotEmpty(t, store.Search("plan", nil))
}

func TestIndexNode_NoteBody(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	store.IndexNode(&core.Node{
		Id:          "note-1",
		Title:       "Reminders",
		Kind:        core.NodeKindNote,
		Description: "Remember to water the **plants** every Friday",
	})

	results := store.Search("plants", nil)
	require.Len(t, results, 1)
	assert.Equal(t, MatchNote, results[0].Kind)
	assert.Equal(t, core.RoleNone, results[0].Role)
}

func TestIndexNode_SkipsEmptyUnits(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	store.IndexNode(&core.Node{
		Id:   "bare",
		Kind: core.NodeKindStandard,
		Messages: []core.Message{
			{Id: "m1", Role: core.RoleUser, Content: ""},
		},
	})

	stats := store.Stats()
	assert.Equal(t, 1, stats.Nodes)
	assert.Equal(t, 0, stats.Units)
}

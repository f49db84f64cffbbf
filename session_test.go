package tessera

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tessera-app/tessera/core"
	"github.com/tessera-app/tessera/index"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	session, err := NewSession("", WithInMemoryStorage())
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	return session
}

func conversationNode(id core.ID, title, content string) *core.Node {
	return &core.Node{
		Id:    id,
		Title: title,
		Kind:  core.NodeKindStandard,
		Messages: []core.Message{
			{Id: id + "-m0", Role: core.RoleUser, Content: content},
		},
	}
}

func TestSession_StartRebuildsIndexFromStorage(t *testing.T) {
	ctx := context.Background()
	session := newTestSession(t)

	require.NoError(t, session.Nodes().PutNodes(ctx,
		conversationNode("n1", "Budget Plan", "allocate the marketing budget"),
		conversationNode("n2", "Travel", "flights and hotels"),
	))

	require.NoError(t, session.Start(ctx))

	results := session.Index().Search("budget", nil)
	require.NotEmpty(t, results)
	assert.Equal(t, core.ID("n1"), results[0].NodeID)
}

func TestSession_SaveNodeIndexesNode(t *testing.T) {
	ctx := context.Background()
	session := newTestSession(t)
	require.NoError(t, session.Start(ctx))

	require.NoError(t, session.SaveNode(ctx, conversationNode("n1", "Budget Plan", "allocate funds")))
	session.Flush()

	results := session.Index().Search("budget", nil)
	require.Len(t, results, 1)
	assert.Equal(t, index.MatchTitle, results[0].Kind)

	// Saving again with changed text replaces the old entries.
	require.NoError(t, session.SaveNode(ctx, conversationNode("n1", "Travel Plan", "allocate funds")))
	session.Flush()

	assert.Empty(t, session.Index().Search("budget", nil))
	assert.NotEmpty(t, session.Index().Search("travel", nil))
}

func TestSession_MoveNodeUpdatesPosition(t *testing.T) {
	ctx := context.Background()
	session := newTestSession(t)
	require.NoError(t, session.Start(ctx))

	require.NoError(t, session.SaveNode(ctx, conversationNode("n1", "Budget Plan", "allocate funds")))
	session.Flush()

	require.NoError(t, session.MoveNode(ctx, "n1", core.Point{X: 300, Y: 400}))
	session.Flush()

	results := session.Index().Search("budget", nil)
	require.NotEmpty(t, results)
	assert.Equal(t, core.Point{X: 300, Y: 400}, results[0].Position)

	stored, err := session.Nodes().GetNode(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, core.Point{X: 300, Y: 400}, stored.Position)
}

func TestSession_DeleteNodeRemovesFromIndex(t *testing.T) {
	ctx := context.Background()
	session := newTestSession(t)
	require.NoError(t, session.Start(ctx))

	require.NoError(t, session.SaveNode(ctx, conversationNode("n1", "Budget Plan", "allocate funds")))
	session.Flush()
	require.NotEmpty(t, session.Index().Search("budget", nil))

	require.NoError(t, session.DeleteNode(ctx, "n1"))
	session.Flush()

	assert.Empty(t, session.Index().Search("budget", nil))
	assert.Equal(t, 0, session.Index().Stats().Nodes)
}

func TestSession_ControllerSearchesIndex(t *testing.T) {
	ctx := context.Background()
	session := newTestSession(t)
	require.NoError(t, session.Start(ctx))

	require.NoError(t, session.SaveNode(ctx, conversationNode("n1", "Budget Plan", "allocate funds")))
	session.Flush()

	c := session.Controller()
	c.SetQuery("budget")
	results := c.SearchNow()

	require.NotEmpty(t, results)
	assert.Equal(t, core.ID("n1"), results[0].NodeID)
}

package storage

import (
	"context"

	"github.com/tessera-app/tessera/core"
)

// NodeRepository provides operations for persisting canvas nodes.
// Implementations must be safe for concurrent use.
type NodeRepository interface {
	// PutNodes inserts or replaces nodes by ID.
	// Sets CreatedAt on first insert and refreshes UpdatedAt on every call.
	PutNodes(ctx context.Context, nodes ...*core.Node) error

	// DeleteNodes removes nodes by their IDs.
	// Returns ErrNotFound if any node doesn't exist.
	DeleteNodes(ctx context.Context, ids ...core.ID) error

	// GetNode retrieves a single node by ID.
	// Returns ErrNotFound if the node doesn't exist.
	GetNode(ctx context.Context, id core.ID) (*core.Node, error)

	// GetNodes retrieves multiple nodes by their IDs.
	// Returns only the nodes that exist (no error for missing nodes).
	GetNodes(ctx context.Context, ids ...core.ID) ([]*core.Node, error)

	// AllNodes retrieves every stored node, in key order.
	// Used to feed a full index rebuild at session start.
	AllNodes(ctx context.Context) ([]*core.Node, error)

	// CountNodes returns the number of stored nodes.
	CountNodes(ctx context.Context) (int, error)

	// Close closes the repository and releases resources.
	Close() error
}

package core

import (
	"encoding/hex"
	"math"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Node and message IDs are assigned by the host application; synthetic
// unit IDs are derived deterministically with RoleUnitID.
type ID string

// roleUnitNamespace separates role-label unit IDs from every other ID
// derivation so derivations of different kinds can never collide.
const roleUnitNamespace = "assigned-role"

// RoleUnitID derives the synthetic text-unit ID under which a node's
// assigned-role label is indexed. The derivation is a namespaced BLAKE2b
// hash of the node ID, so it is stable across sessions and distinct from
// the node ID itself.
func RoleUnitID(nodeID ID) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(roleUnitNamespace))
	h.Write([]byte{0})
	h.Write([]byte(nodeID))
	return ID("role-" + hex.EncodeToString(h.Sum(nil)))
}

// NodeKind identifies the kind of a canvas node.
type NodeKind int

const (
	// NodeKindStandard represents a regular conversation node.
	NodeKindStandard NodeKind = iota + 1
	// NodeKindNote represents a freestanding note node.
	NodeKindNote
	// NodeKindGroup represents a grouping container node.
	NodeKindGroup
)

// MessageRole identifies the author of a conversation message.
type MessageRole int

const (
	// RoleNone marks a result that did not come from a conversation message.
	RoleNone MessageRole = iota
	// RoleUser represents a human-authored message.
	RoleUser
	// RoleAssistant represents an AI-authored message.
	RoleAssistant
)

// Point is a position on the canvas.
type Point struct {
	X float64
	Y float64
}

// DistanceTo returns the Euclidean distance between two points.
func (p Point) DistanceTo(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Message represents a single message in a node's conversation.
type Message struct {
	Id      ID
	Role    MessageRole
	Content string
}

// Node is a snapshot of a canvas node as exposed by the host: its title,
// note body, assigned-role label, geometry, and ordered conversation.
type Node struct {
	Id          ID
	Title       string
	Color       string
	Position    Point
	Kind        NodeKind
	Description string
	RoleLabel   string // Display name of the assigned role, empty if none
	Messages    []Message
	CreatedAt   time.Time // When the node was created
	UpdatedAt   time.Time // When the node was last modified
}

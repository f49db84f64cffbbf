package index

import (
	"time"

	"github.com/tessera-app/tessera/core"
)

// MatchKind classifies which text-unit role produced a search result.
type MatchKind int

const (
	// MatchTitle means the query matched the node's title.
	MatchTitle MatchKind = iota + 1
	// MatchRole means the query matched the node's assigned-role label.
	MatchRole
	// MatchNote means the query matched a note node's body.
	MatchNote
	// MatchConversation means the query matched a conversation message.
	MatchConversation
)

// String returns a short display name for the match kind.
func (k MatchKind) String() string {
	switch k {
	case MatchTitle:
		return "title"
	case MatchRole:
		return "role"
	case MatchNote:
		return "note"
	case MatchConversation:
		return "conversation"
	default:
		return "unknown"
	}
}

// SearchResult is one ranked hit. Results are constructed fresh per query
// and are not retained by the Store.
type SearchResult struct {
	NodeID    core.ID
	NodeTitle string
	NodeColor string
	Position  core.Point
	UnitID    core.ID
	Kind      MatchKind
	Role      core.MessageRole // Author of the matched message, RoleNone otherwise
	RoleLabel string           // Assigned-role display name of the node, if any
	Snippet   string
	UnitText  string    // Full text of the matched unit
	Timestamp time.Time // When this result was constructed

	// Ranking signals, fixed at construction time.
	titleMatch bool // Node title contains the query substring
	exact      bool // Matched unit contains the query verbatim
	seq        int  // Construction sequence within this query
}

package index

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/tessera-app/tessera/core"
)

// Sentinel unitIndex values distinguishing label units from conversation
// messages, whose unitIndex is their ordinal in the conversation.
const (
	// UnitIndexTitle marks a node-title unit.
	UnitIndexTitle = -1
	// UnitIndexNote marks a note-body unit.
	UnitIndexNote = -2
	// UnitIndexRole marks an assigned-role label unit.
	UnitIndexRole = -3
)

// Synthetic labels prepended to the stored text of non-conversation units.
const (
	titleLabel = "Title: "
	noteLabel  = "Note: "
	// RoleLabelPrefix is the reserved marker under which assigned-role
	// labels are stored, e.g. "Team Member: Finance Analyst".
	RoleLabelPrefix = "Team Member: "
)

// Posting locates one occurrence of a token inside one text unit.
type Posting struct {
	NodeID    core.ID
	UnitID    core.ID
	UnitIndex int
	TokenPos  int
}

// NodeMeta is the cached display metadata of an indexed node.
type NodeMeta struct {
	Title     string
	Color     string
	Position  core.Point
	RoleLabel string
}

// textUnit is one indexable span of content belonging to a node, together
// with the bookkeeping needed to classify and rank a match against it.
type textUnit struct {
	nodeID core.ID
	kind   MatchKind
	role   core.MessageRole
	text   string
}

// Stats summarizes the current size of the index.
type Stats struct {
	Nodes    int
	Units    int
	Terms    int
	Postings int
}

// Store owns all index state and the query engine. All methods are safe
// for concurrent use: mutations take the write lock and Search the read
// lock, so a query never observes a partially reindexed node.
type Store struct {
	mu     sync.RWMutex
	logger *slog.Logger

	// Postings table: normalized term -> occurrences.
	postings map[string][]Posting
	// Text-unit store: unitID -> full text plus owner and kind.
	units map[core.ID]textUnit
	// Node-to-units table: nodeID -> owned unit IDs.
	nodeUnits map[core.ID][]core.ID
	// Reverse index: unitID -> distinct terms it contributed, so removal
	// only touches the postings buckets the node actually owns.
	unitTokens map[core.ID][]string
	// Node metadata cache.
	meta map[core.ID]NodeMeta
}

// Option configures a Store.
type Option func(*Store) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewStore creates an empty index store.
func NewStore(opts ...Option) (*Store, error) {
	s := &Store{
		logger:     slog.Default(),
		postings:   make(map[string][]Posting),
		units:      make(map[core.ID]textUnit),
		nodeUnits:  make(map[core.ID][]core.ID),
		unitTokens: make(map[core.ID][]string),
		meta:       make(map[core.ID]NodeMeta),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Rebuild replaces all index state with the given node snapshots, indexing
// them in input order. Used for cold start and full resync.
func (s *Store) Rebuild(nodes []*core.Node) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.postings = make(map[string][]Posting)
	s.units = make(map[core.ID]textUnit)
	s.nodeUnits = make(map[core.ID][]core.ID)
	s.unitTokens = make(map[core.ID][]string)
	s.meta = make(map[core.ID]NodeMeta)

	for _, node := range nodes {
		if node == nil {
			continue
		}
		s.indexNodeLocked(node)
	}

	s.logger.Debug("index rebuilt", "nodes", len(nodes), "units", len(s.units), "terms", len(s.postings))
}

// IndexNode indexes a node's current content, replacing whatever was
// previously indexed for it. Reindexing is always remove-then-insert,
// never a diff, so the call is idempotent.
func (s *Store) IndexNode(node *core.Node) {
	if node == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.indexNodeLocked(node)
}

// RemoveNode removes every trace of a node from the index. No-op if the
// node was never indexed.
func (s *Store) RemoveNode(nodeID core.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeNodeLocked(nodeID)
}

// UpdateNodeMetadata overwrites only the metadata cache entry for a node,
// leaving postings and text untouched. Used when geometry or display
// attributes change without a content change, to keep moves cheap.
func (s *Store) UpdateNodeMetadata(node *core.Node) {
	if node == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta[node.Id] = NodeMeta{
		Title:     node.Title,
		Color:     node.Color,
		Position:  node.Position,
		RoleLabel: node.RoleLabel,
	}
}

// Stats returns current index size counters.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	postings := 0
	for _, bucket := range s.postings {
		postings += len(bucket)
	}
	return Stats{
		Nodes:    len(s.nodeUnits),
		Units:    len(s.units),
		Terms:    len(s.postings),
		Postings: postings,
	}
}

func (s *Store) indexNodeLocked(node *core.Node) {
	s.removeNodeLocked(node.Id)

	s.meta[node.Id] = NodeMeta{
		Title:     node.Title,
		Color:     node.Color,
		Position:  node.Position,
		RoleLabel: node.RoleLabel,
	}

	if strings.TrimSpace(node.Title) != "" {
		s.indexUnitLocked(node.Id, node.Id, UnitIndexTitle, MatchTitle, core.RoleNone, titleLabel+node.Title)
	}

	if strings.TrimSpace(node.RoleLabel) != "" {
		s.indexUnitLocked(node.Id, core.RoleUnitID(node.Id), UnitIndexRole, MatchRole, core.RoleNone, RoleLabelPrefix+node.RoleLabel)
	}

	for i := range node.Messages {
		msg := &node.Messages[i]
		if msg.Content == "" {
			continue
		}
		s.indexUnitLocked(node.Id, msg.Id, i, MatchConversation, msg.Role, msg.Content)
	}

	if node.Kind == core.NodeKindNote && strings.TrimSpace(node.Description) != "" {
		// A note node stores its body under the node's own ID. The title
		// unit, if any, lives under the same ID, so the note body wins.
		s.indexUnitLocked(node.Id, node.Id, UnitIndexNote, MatchNote, core.RoleNone, noteLabel+node.Description)
	}
}

func (s *Store) indexUnitLocked(nodeID, unitID core.ID, unitIndex int, kind MatchKind, role core.MessageRole, text string) {
	if prev, ok := s.units[unitID]; ok && prev.nodeID == nodeID {
		// Same unit ID reused within one node (a note body sharing the
		// node ID with the title unit): drop the earlier unit's postings
		// before storing the replacement.
		s.removeUnitPostingsLocked(unitID)
		s.nodeUnits[nodeID] = removeID(s.nodeUnits[nodeID], unitID)
	}

	s.units[unitID] = textUnit{nodeID: nodeID, kind: kind, role: role, text: text}
	s.nodeUnits[nodeID] = append(s.nodeUnits[nodeID], unitID)

	tokens := Tokenize(text)
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		s.postings[token.Term] = append(s.postings[token.Term], Posting{
			NodeID:    nodeID,
			UnitID:    unitID,
			UnitIndex: unitIndex,
			TokenPos:  token.Pos,
		})
		if _, ok := seen[token.Term]; !ok {
			seen[token.Term] = struct{}{}
			s.unitTokens[unitID] = append(s.unitTokens[unitID], token.Term)
		}
	}
}

func (s *Store) removeNodeLocked(nodeID core.ID) {
	unitIDs, ok := s.nodeUnits[nodeID]
	if !ok {
		delete(s.meta, nodeID)
		return
	}

	for _, unitID := range unitIDs {
		s.removeUnitPostingsLocked(unitID)
		delete(s.units, unitID)
	}
	delete(s.nodeUnits, nodeID)
	delete(s.meta, nodeID)
}

// removeUnitPostingsLocked filters one unit's postings out of every bucket
// it contributed to, dropping buckets that become empty.
func (s *Store) removeUnitPostingsLocked(unitID core.ID) {
	for _, term := range s.unitTokens[unitID] {
		bucket := s.postings[term]
		kept := make([]Posting, 0, len(bucket))
		for _, p := range bucket {
			if p.UnitID != unitID {
				kept = append(kept, p)
			}
		}
		if len(kept) == 0 {
			delete(s.postings, term)
		} else {
			s.postings[term] = kept
		}
	}
	delete(s.unitTokens, unitID)
}

func removeID(ids []core.ID, id core.ID) []core.ID {
	kept := ids[:0]
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	return kept
}

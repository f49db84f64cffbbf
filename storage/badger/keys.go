package badger

import (
	"fmt"

	"github.com/tessera-app/tessera/core"
)

// Key prefixes for different data types
const (
	nodeRecordPrefix = "canode"
)

// makeNodeKey generates a key for a canvas node by ID.
func makeNodeKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%s", nodeRecordPrefix, id))
}

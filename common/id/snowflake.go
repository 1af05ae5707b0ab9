package id

import (
	"errors"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
)

// epoch is 2024-01-01T00:00:00Z. IDs stay sortable by creation time and the
// 41-bit timestamp lasts well past the default Twitter epoch.
var epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

var ErrNotInitialized = errors.New("id generator not initialized")

var (
	mu   sync.RWMutex
	node *snowflake.Node
)

// Init sets up the process-wide generator. The API server runs as node 1 and
// the mail worker as node 2. Calling Init again replaces the node.
func Init(nodeID int64) error {
	snowflake.Epoch = epoch.UnixMilli()
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return err
	}
	mu.Lock()
	node = n
	mu.Unlock()
	return nil
}

// New returns the next ID. It panics when Init has not run, since every
// process entrypoint calls Init before serving.
func New() int64 {
	mu.RLock()
	n := node
	mu.RUnlock()
	if n == nil {
		panic(ErrNotInitialized)
	}
	return n.Generate().Int64()
}

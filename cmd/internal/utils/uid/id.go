package uid

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/labstack/gommon/log"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init binds the generator to machineID. Only the first call (of Init or
// Generate) takes effect.
func Init(machineID int64) {
	once.Do(func() {
		var err error
		node, err = snowflake.NewNode(machineID)
		if err != nil {
			log.Fatalf("failed to initialize snowflake node: %v", err)
		}
	})
}

// Generate returns a new time-ordered identifier in its decimal form.
// Falls back to node 1 when Init was never called (tests, tooling).
func Generate() string {
	Init(1)
	return node.Generate().String()
}

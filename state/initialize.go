package state

import (
	"time"
)

// newLocalEnv creates LocalEnv with values used before configuration is
// loaded.
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:  time.Now(),
		ResDir: "res",
	}
}

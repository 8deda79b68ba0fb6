// FILE: lixenwraith/params/timing.go
package params

import "time"

// Core timing constants for parameter watching.
const (
	MinPollInterval      = 100 * time.Millisecond // Hard floor for store polling
	DefaultPollInterval  = 30 * time.Second       // Standard store polling frequency
	DefaultFetchTimeout  = 10 * time.Second       // Maximum duration of one poll fetch
	DefaultUpdateBacklog = 1                      // Buffered updates per watcher
)

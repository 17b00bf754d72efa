// Package feature tracks named feature flags for a process. Task callables
// capture the active flags at construction time as a Snapshot and restore
// them before invocation, so that concurrent or remote execution contexts
// never observe configuration from another task.
package feature

import (
	"sort"
	"sync"
)

// A Snapshot is the set of feature flags active at a point in time
type Snapshot []string

var (
	mu     sync.Mutex
	active = map[string]bool{}
)

// Activate turns the named feature flags on
func Activate(names ...string) {
	mu.Lock()
	defer mu.Unlock()
	for _, name := range names {
		active[name] = true
	}
}

// Deactivate turns the named feature flags off
func Deactivate(names ...string) {
	mu.Lock()
	defer mu.Unlock()
	for _, name := range names {
		delete(active, name)
	}
}

// IsActive returns true iff the named feature flag is on
func IsActive(name string) bool {
	mu.Lock()
	defer mu.Unlock()
	return active[name]
}

// Capture returns a Snapshot of the currently active feature flags
func Capture() Snapshot {
	mu.Lock()
	defer mu.Unlock()
	snap := make(Snapshot, 0, len(active))
	for name := range active {
		snap = append(snap, name)
	}
	sort.Strings(snap)
	return snap
}

// Restore deactivates all feature flags, then activates exactly those in the
// given Snapshot
func Restore(snap Snapshot) {
	mu.Lock()
	defer mu.Unlock()
	for name := range active {
		delete(active, name)
	}
	for _, name := range snap {
		active[name] = true
	}
}

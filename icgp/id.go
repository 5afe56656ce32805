package icgp

import "sync/atomic"

// counter is the process-wide, monotonically increasing node-id source of
// spec §5: every ICGP node across every genome in the process draws from it,
// so any two nodes' ids already totally order their creation, independent of
// which genome holds them.
var counter uint64

// nextID draws the next globally unique node id.
func nextID() uint64 {
	return atomic.AddUint64(&counter, 1)
}

// ResetIDCounterForTest resets the global id counter. Exists only so tests
// can assert on small, predictable id values; production callers must never
// call it, since two genomes built around the same reset point would then
// mint colliding ids.
func ResetIDCounterForTest() {
	atomic.StoreUint64(&counter, 0)
}

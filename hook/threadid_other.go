//go:build !linux && !darwin && !windows

package hook

// Without a thread id a Disable from the callback cannot be told apart from
// any other call; no backend exists on these systems anyway.
func threadID() uint64 { return 0 }

package pool

import "sync"

var defaultPool = sync.OnceValue(func() *Pool {
	return New()
})

// Default returns the process-wide pool. It is created on first use and lives
// until the process exits; concurrent first calls all receive the same,
// fully constructed instance.
func Default() *Pool {
	return defaultPool()
}

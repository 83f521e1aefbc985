package tracking

import "sync"

var (
	defaultMu          sync.Mutex
	defaultCoordinator *Coordinator
)

// Default returns a lazily created process-wide coordinator with the default
// configuration. Callers that want explicit ownership should construct their
// own with New; this handle exists only as a convenience for small programs.
func Default() *Coordinator {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultCoordinator == nil {
		defaultCoordinator = New(DefaultConfig())
	}
	return defaultCoordinator
}

// SetDefault replaces the process-wide coordinator. The previous default, if
// any, is not closed; that remains the caller's responsibility.
func SetDefault(c *Coordinator) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultCoordinator = c
}

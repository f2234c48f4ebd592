package log

import "sync"

// The package-level logger backs components constructed without an
// injected logger. The CLI replaces it once configuration is loaded,
// so late-wired components pick up the configured level and format.
var (
	globalMu sync.RWMutex
	global   *Logger
)

// SetGlobal replaces the package-level fallback logger
func SetGlobal(logger *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = logger
}

// Global returns the package-level fallback logger, creating one with
// default configuration on first use
func Global() *Logger {
	globalMu.RLock()
	logger := global
	globalMu.RUnlock()
	if logger != nil {
		return logger
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if global == nil {
		global = Default()
	}
	return global
}

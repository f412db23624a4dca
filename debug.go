package fungeon

import (
	"fmt"
	"os"
)

// globalDebug mirrors the most recently set debug flag so hot paths can
// check it cheaply without carrying a pointer.
var globalDebug bool

// SetDebugMode enables or disables debug mode. When enabled, soft failures
// during constraint evaluation (missing targets, degenerate directions,
// non-finite proposals) are logged to stderr instead of being silently
// skipped.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// debugf prints a diagnostic line to stderr when debug mode is on.
func debugf(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[fungeon] "+format+"\n", args...)
}

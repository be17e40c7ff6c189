package syncd

import (
	"log/slog"
	"os"
	"runtime/debug"
)

// exitFunc is overridden in tests so Fatal's os.Exit call can be observed
// instead of killing the test binary.
var exitFunc = os.Exit

// Fatal implements spec section 4.3's fatal-exit policy: metadata lookup
// failures, unknown object kinds, missing translations, and SDK dispatch
// misses are unrecoverable on the daemon. It logs a stack trace and exits
// non-zero so a supervisor can restart the process, mirroring the
// log.Fatalf call sites in cmd/osvbngd/main.go — except this one must
// capture the stack, since a bare log.Fatalf there loses the call path a
// restart investigation needs.
func Fatal(logger *slog.Logger, err error) {
	if logger != nil {
		logger.Error("fatal dispatcher error, exiting", "error", err, "stack", string(debug.Stack()))
	}
	exitFunc(1)
}

// Package monitoring provides the diagnostic logging hook shared by the
// classification pipeline: input-integrity drops, Weiszfeld non-convergence,
// and run summaries are all reported through Logf rather than returned as
// errors (see the error handling design in internal/classify).
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

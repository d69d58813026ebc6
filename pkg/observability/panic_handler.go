package observability

import (
	"fmt"
	"runtime/debug"
)

// RecoverPanic recovers from panics and logs them with a stack trace. Use in
// a deferred call at the top of any goroutine that must not take the process
// down with it.
func RecoverPanic(logger *Logger, component string) {
	if r := recover(); r != nil {
		logger.WithFields(map[string]interface{}{
			"component": component,
			"panic":     fmt.Sprintf("%v", r),
			"stack":     string(debug.Stack()),
		}).Error("Recovered from panic")
	}
}

// RecoverPanicWithCallback recovers from panics, logs them, and invokes the
// callback with the recovered value.
func RecoverPanicWithCallback(logger *Logger, component string, callback func(recovered interface{})) {
	if r := recover(); r != nil {
		logger.WithFields(map[string]interface{}{
			"component": component,
			"panic":     fmt.Sprintf("%v", r),
			"stack":     string(debug.Stack()),
		}).Error("Recovered from panic")

		if callback != nil {
			callback(r)
		}
	}
}

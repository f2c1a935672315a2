// Package logger provides the package-level structured logger shared by
// threshold and shuffle verification paths. Callers that embed this module
// into a larger service should call SetLogger once during startup;
// otherwise log output is discarded.
package logger

import "github.com/getamis/sirius/log"

var instance = log.Discard()

// Logger returns the currently installed logger.
func Logger() log.Logger {
	return instance
}

// SetLogger installs l as the package-level logger.
func SetLogger(l log.Logger) {
	instance = l
}

// Package multilog funnels messages to both the log file and our error reporting service,
// for failures that we want to hear about even when the user never files a report.
package multilog

import (
	"github.com/rollbar/rollbar-go"

	"github.com/devshell-sh/cli/internal/logging"
)

// Error logs the message at the ERROR level and reports it
func Error(msg string, args ...interface{}) {
	err := logging.Errorf(msg, args...)
	rollbar.Error(err)
}

// Critical logs the message at the CRITICAL level and reports it
func Critical(msg string, args ...interface{}) {
	err := logging.Criticalf(msg, args...)
	rollbar.Critical(err)
}

// Package errors renders command failures for the terminal.
package errors

import (
	"fmt"
	"os"

	"github.com/julianstephens/meditracker/internal/logger"
)

const (
	prefix      = "Error: "
	exitFailure = 1
)

// Format returns err as a user-facing line, or "" for nil
func Format(err error) string {
	if err == nil {
		return ""
	}
	return prefix + err.Error()
}

func Formatf(format string, args ...any) string {
	return prefix + fmt.Sprintf(format, args...)
}

// Fatal reports err on stderr and in the log, then exits. A nil err is ignored.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("command failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(exitFailure)
}

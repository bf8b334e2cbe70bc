package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/corey/argsel/internal/config"
)

// exitError is returned to signal a specific exit code without an error
// message. check exits 3 when it reports findings.
type exitError struct{ code int }

func (e exitError) Error() string {
	return fmt.Sprintf("exit %d", e.code)
}

const exitFindings = 3

// ExitCode extracts the exit code from an exitError.
// Returns -1 if the error is not an exitError.
func ExitCode(err error) int {
	var ee exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return -1
}

// isDBLockError returns true if the error chain contains a bbolt lock timeout.
// bbolt returns the string "timeout" when it cannot acquire the file lock
// within the configured deadline.
func isDBLockError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "timeout")
}

// describeError adds actionable guidance to errors users can fix.
func describeError(err error) string {
	var ce *config.ConfigError
	switch {
	case errors.As(err, &ce):
		return err.Error() + "\n  → run `argsel config` to see the effective configuration"
	case isDBLockError(err):
		return "baseline database is locked by another process\n" +
			"  → another `argsel watch` or `argsel check` may be running\n" +
			"  → find it:  ps aux | grep argsel\n" +
			"  → then retry your command"
	}
	return err.Error()
}

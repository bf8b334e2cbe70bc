package app

import "fmt"

// LoadError reports a Go package or Java file that could not be checked.
// The run continues without it.
type LoadError struct {
	Target string // package path or file
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Target, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

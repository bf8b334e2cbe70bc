package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

// isStdoutTTY returns true if stdout is connected to a terminal.
func isStdoutTTY() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// resolveColor determines whether to use color output based on the --color
// value ("auto", "always" or "never"), NO_COLOR and TTY status.
func resolveColor(colorFlag string) (bool, error) {
	switch colorFlag {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false, nil
		}
		return isStdoutTTY(), nil
	}
	return false, fmt.Errorf("invalid --color %q (want auto, always or never)", colorFlag)
}

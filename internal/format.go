package internal

import (
	"os"

	"github.com/mattn/go-isatty"
)

// DefaultOutputFormat returns "text" when stdout is a terminal and "json"
// otherwise, so piped output is machine-readable without extra flags.
func DefaultOutputFormat() string {
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return "text"
	}
	return "json"
}

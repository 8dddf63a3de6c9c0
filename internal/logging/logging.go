// Package logging provides the debug logger used by the ccs commands.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// DebugEnv enables debug output when set to a non-empty value.
const DebugEnv = "CCS_DEBUG"

// New creates a logger writing to w. Only warnings and errors are shown
// unless debug is set.
func New(w io.Writer, debug bool) *log.Logger {
	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "ccs",
		Level:  level,
	})
}

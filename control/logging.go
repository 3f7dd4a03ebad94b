// control/logging.go
// Author: momentics <momentics@gmail.com>
//
// Structured logger construction shared by ports and examples.

package control

import (
	"io"
	"os"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger is the structured logger type accepted across the module.
// A nil *Logger discards everything.
type Logger = logiface.Logger[logiface.Event]

// NewLogger returns a JSON logger writing to w at the given level.
// A nil w writes to os.Stderr.
func NewLogger(w io.Writer, level logiface.Level) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(w)),
		stumpy.L.WithLevel(level),
	).Logger()
}

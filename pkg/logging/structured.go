package logging

import (
	golog "github.com/fclairamb/go-log"
)

// StructuredLogger is the event + keyvals logger every component takes.
// Trace sits below Debug and is reserved for per-line tool output; the
// changer log file only carries it at the highest debug_level.
type StructuredLogger interface {
	golog.Logger

	Trace(event string, keyvals ...interface{})
}

package diag

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the structured tracer for --verbose compile/execute tracing:
// module resolution and intrinsic dispatch. It is never the
// channel for compile/runtime errors proper — those are always returned as
// *Error values; Logger only ever writes diagnostic noise to stderr.
type Logger struct {
	l *log.Logger
}

// NewLogger creates a Logger writing to stderr at level according to
// verbose (Debug when true, Warn otherwise).
func NewLogger(verbose bool) *Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "tlc",
	})
	if verbose {
		l.SetLevel(log.DebugLevel)
	} else {
		// Tracing is opt-in: stay silent below warnings so a normal run
		// never prints progress noise a --verbose run would.
		l.SetLevel(log.WarnLevel)
	}
	return &Logger{l: l}
}

// Module logs resolution of a program's entry module under the given key.
// Its one caller, the compiler, runs before any Host (and so any run ID)
// exists and passes the entry mesh name as that key.
func (lg *Logger) Module(runID, path string) {
	lg.l.Debug("module resolved", "run", runID, "path", path)
}

// ArenaGrowth logs an arena allocation that grew past a capacity
// threshold, for spotting a program approaching --arena-bytes. Nothing in
// this module calls it.
func (lg *Logger) ArenaGrowth(runID string, used, cap int) {
	lg.l.Debug("arena usage", "run", runID, "used", used, "cap", cap)
}

// Intrinsic logs one builtin dispatch by name and argument count.
func (lg *Logger) Intrinsic(runID, name string, argc int) {
	lg.l.Debug("intrinsic call", "run", runID, "name", name, "argc", argc)
}

// Info logs a top-level progress line (e.g. "compiling main.tl").
func (lg *Logger) Info(msg string, kv ...any) {
	lg.l.Info(msg, kv...)
}

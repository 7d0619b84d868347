// Package obslog provides the ambient logging used by the store's page
// cache and the file watcher. It wraps the standard library logger rather
// than pulling in a structured-logging dependency, matching the sparse
// log.Printf style the rest of the corpus uses at its handful of log
// call sites.
package obslog

import (
	"log"
	"os"
)

// Logger is a leveled wrapper around *log.Logger.
type Logger struct {
	l       *log.Logger
	verbose bool
}

// New creates a Logger writing to stderr with the given prefix.
func New(prefix string, verbose bool) *Logger {
	return &Logger{
		l:       log.New(os.Stderr, prefix, log.LstdFlags),
		verbose: verbose,
	}
}

// Debugf logs only when verbose logging is enabled.
func (lg *Logger) Debugf(format string, args ...any) {
	if lg == nil || !lg.verbose {
		return
	}
	lg.l.Printf("DEBUG "+format, args...)
}

// Warnf always logs.
func (lg *Logger) Warnf(format string, args ...any) {
	if lg == nil {
		return
	}
	lg.l.Printf("WARN "+format, args...)
}

// Errorf always logs.
func (lg *Logger) Errorf(format string, args ...any) {
	if lg == nil {
		return
	}
	lg.l.Printf("ERROR "+format, args...)
}

// Default is a package-level logger used by components that don't carry
// their own Logger reference (mirrors the teacher's direct log.Printf
// call sites).
var Default = New("extentix: ", false)

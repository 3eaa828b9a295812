package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// ConsoleLogger writes log messages to a writer, stderr by default so
// command output on stdout stays machine-readable.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	out     io.Writer
	verbose bool
	quiet   bool
	mu      sync.Mutex
}

// NewConsoleLogger creates a ConsoleLogger writing to stderr.
// If verbose is true, Verbose() calls produce output.
// If quiet is true, Info() and Verbose() calls are no-ops; errors are
// always written.
func NewConsoleLogger(verbose, quiet bool) *ConsoleLogger {
	return NewConsoleLoggerWithWriter(os.Stderr, verbose, quiet)
}

// NewConsoleLoggerWithWriter creates a ConsoleLogger writing to out.
// This is primarily useful for capturing output in tests.
func NewConsoleLoggerWithWriter(out io.Writer, verbose, quiet bool) *ConsoleLogger {
	return &ConsoleLogger{
		out:     out,
		verbose: verbose,
		quiet:   quiet,
	}
}

// Verbose logs detailed diagnostic information if verbose mode is
// enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose || l.quiet {
		return
	}
	l.write("[VERBOSE] "+format, args...)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	if l.quiet {
		return
	}
	l.write(format, args...)
}

// Error logs error messages. Errors are written even in quiet mode.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write("[ERROR] "+format, args...)
}

func (l *ConsoleLogger) write(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(args) > 0 {
		fmt.Fprintf(l.out, format+"\n", args...)
	} else {
		fmt.Fprint(l.out, format+"\n")
	}
}

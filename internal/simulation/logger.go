package simulation

import (
	"fmt"
	"io"
	"os"
)

// Logger is a minimal logging interface for the simulation engine.
// Implementations should be fast; the default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// StderrLogger writes diagnostics to stderr, keeping stdout free for the
// result rows. Debug lines are emitted only when Debug is set.
type StderrLogger struct {
	Debug bool

	// Out overrides the destination, for tests. Nil means os.Stderr.
	Out io.Writer
}

func (l StderrLogger) Debugf(format string, args ...any) {
	if l.Debug {
		l.printf("DEBUG", format, args...)
	}
}

func (l StderrLogger) Infof(format string, args ...any)  { l.printf("INFO", format, args...) }
func (l StderrLogger) Warnf(format string, args ...any)  { l.printf("WARN", format, args...) }
func (l StderrLogger) Errorf(format string, args ...any) { l.printf("ERROR", format, args...) }

func (l StderrLogger) printf(level, format string, args ...any) {
	out := l.Out
	if out == nil {
		out = os.Stderr
	}
	fmt.Fprintf(out, level+" "+format+"\n", args...)
}

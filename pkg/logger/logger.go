package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// New returns a charmbracelet logger prefixed with component, writing to stderr.
// verbose lowers the level to debug.
func New(component string, verbose bool) *log.Logger {
	return NewWithWriter(os.Stderr, component, verbose)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, component string, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          component,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           level,
	})
}

// Slog adapts l for packages that take a *slog.Logger.
func Slog(l *log.Logger) *slog.Logger {
	return slog.New(l)
}

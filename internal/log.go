package internal

import (
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
)

// Logger writes run output to stderr and, optionally, to a run log file.
type Logger struct {
	*charmlog.Logger
	f *os.File
}

// NewLogger creates a logger at the given level. When path is not empty the
// log is also appended to that file.
func NewLogger(level, path string) (*Logger, error) {
	lvl, err := charmlog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var out io.Writer = os.Stderr
	var f *os.File
	if path != "" {
		f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = io.MultiWriter(os.Stderr, f)
	}

	return &Logger{Logger: newCharmLogger(out, lvl), f: f}, nil
}

// NewWriterLogger logs to w only. Used by tests and by commands that print to
// a cobra output stream.
func NewWriterLogger(w io.Writer, level charmlog.Level) *Logger {
	return &Logger{Logger: newCharmLogger(w, level)}
}

func newCharmLogger(w io.Writer, lvl charmlog.Level) *charmlog.Logger {
	return charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           lvl,
	})
}

func (l *Logger) Close() error {
	if l.f != nil {
		return l.f.Close()
	}
	return nil
}

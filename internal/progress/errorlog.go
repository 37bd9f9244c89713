package progress

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrorLog appends per-file failures to a plain-text log so a batch leaves
// an inspectable record alongside its output.
type ErrorLog struct {
	path  string
	file  *os.File
	count int
}

// NewErrorLog opens path for appending, creating parent directories. An
// empty path yields a counting-only log.
func NewErrorLog(path string) (*ErrorLog, error) {
	l := &ErrorLog{path: path}
	if path == "" {
		return l, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("could not create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}
	l.file = file
	return l, nil
}

// Append records one failure.
func (l *ErrorLog) Append(path, msg string) {
	l.count++
	if l.file == nil {
		return
	}
	line := fmt.Sprintf("%s | %s | %s\n",
		time.Now().Format(time.RFC3339), filepath.Base(path), msg)
	l.file.WriteString(line)
}

// Count returns the number of recorded failures.
func (l *ErrorLog) Count() int { return l.count }

// Close closes the underlying file.
func (l *ErrorLog) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

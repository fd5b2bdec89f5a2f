package notify

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"pumpScope/internal/model"
)

// Stdout selects standard output as the JSONL destination.
const Stdout = "-"

// JsonlSink appends values as JSON lines to a file, or to stdout for "-".
type JsonlSink struct {
	path string
	out  io.Writer
	mu   sync.Mutex
}

func NewJsonlSink(path string) *JsonlSink {
	s := &JsonlSink{path: path}
	if path == Stdout {
		s.out = os.Stdout
	}
	return s
}

// NewJsonlWriter writes lines to w instead of a file.
func NewJsonlWriter(w io.Writer) *JsonlSink {
	return &JsonlSink{out: w}
}

// Notify appends one line for the notification.
func (s *JsonlSink) Notify(n model.Notification) error {
	return s.Write(n)
}

// Write appends values, one JSON line each.
func (s *JsonlSink) Write(values ...any) error {
	if len(values) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.out != nil {
		return writeLines(s.out, values)
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	return writeLines(file, values)
}

func writeLines(w io.Writer, values []any) error {
	writer := bufio.NewWriter(w)
	for _, v := range values {
		line, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

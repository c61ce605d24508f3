package notify

import (
	"fmt"
	"io"
	"sync"
	"unicode"
	"unicode/utf8"
)

// StageWriter inserts a blank line before every stage title that follows earlier output.
// A stage title is a write whose first rune is a pictographic symbol other than the
// line symbols used by this package.
type StageWriter struct {
	mu      sync.Mutex
	out     io.Writer
	written bool
}

// NewStageWriter wraps out.
func NewStageWriter(out io.Writer) *StageWriter {
	return &StageWriter{out: out}
}

// Write implements io.Writer.
func (w *StageWriter) Write(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.written && isTitle(data) {
		if _, err := w.out.Write([]byte("\n")); err != nil {
			return 0, fmt.Errorf("write stage separator: %w", err)
		}
	}

	n, err := w.out.Write(data)
	if n > 0 {
		w.written = true
	}

	if err != nil {
		return n, fmt.Errorf("write stage output: %w", err)
	}

	return n, nil
}

func isTitle(data []byte) bool {
	first, _ := utf8.DecodeRune(data)
	if first == utf8.RuneError {
		return false
	}

	switch first {
	case '►', '✔', '✗', '⚠', 'ℹ', '⏲', '○':
		return false
	}

	return unicode.Is(unicode.So, first)
}

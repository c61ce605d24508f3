package errorhandler

import (
	"bytes"
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

// Executor coordinates Cobra execution, capturing stderr output and surfacing aggregated errors.
type Executor struct {
	normalizer DefaultNormalizer
	hints      []hint
}

type hint struct {
	target error
	text   string
}

// Option configures an Executor.
type Option func(*Executor)

// WithHint appends text to the error message whenever the failure wraps target.
func WithHint(target error, text string) Option {
	return func(e *Executor) {
		e.hints = append(e.hints, hint{target: target, text: text})
	}
}

// NewExecutor constructs an Executor.
func NewExecutor(opts ...Option) *Executor {
	executor := &Executor{normalizer: DefaultNormalizer{}}

	for _, opt := range opts {
		opt(executor)
	}

	return executor
}

// Execute runs cmd while capturing cobra's error stream. It returns nil on success, or a
// *CommandError carrying the normalized stderr text, the original error and a matching hint.
func (e *Executor) Execute(cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	var errBuf bytes.Buffer

	originalErrWriter := cmd.ErrOrStderr()

	cmd.SetErr(&errBuf)
	defer cmd.SetErr(originalErrWriter)

	err := cmd.Execute()
	if err == nil {
		return nil
	}

	message := e.normalizer.Normalize(errBuf.String())

	return &CommandError{
		message: message,
		cause:   err,
		hint:    e.hintFor(err),
	}
}

func (e *Executor) hintFor(err error) string {
	for _, h := range e.hints {
		if errors.Is(err, h.target) {
			return h.text
		}
	}

	return ""
}

// CommandError represents a Cobra execution failure augmented with normalized stderr output.
type CommandError struct {
	message string
	cause   error
	hint    string
}

// Hint is a suggestion for fixing the failure, or "".
func (e *CommandError) Hint() string {
	if e == nil {
		return ""
	}

	return e.hint
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.cause == nil:
		return e.message
	case e.message != "":
		if strings.Contains(e.message, e.cause.Error()) {
			return e.message
		}

		return e.message + ": " + e.cause.Error()
	default:
		return e.cause.Error()
	}
}

// Unwrap exposes the underlying cause for errors.Is/errors.As consumers.
func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// DefaultNormalizer cleans up the text cobra writes to stderr.
type DefaultNormalizer struct{}

// Normalize trims whitespace, removes redundant "Error:" prefixes, and preserves multi-line usage hints.
func (DefaultNormalizer) Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) == 0 {
		return ""
	}

	first := strings.TrimSpace(lines[0])
	first = strings.TrimPrefix(first, "Error: ")
	lines[0] = first

	return strings.Join(lines, "\n")
}

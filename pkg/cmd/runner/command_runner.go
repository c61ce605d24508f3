// Package runner executes cobra commands from third-party CLIs in-process.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// Result holds everything a command wrote.
type Result struct {
	Stdout string
	Stderr string
}

// LastErrorLine returns the last non-empty line written to stderr.
func (r Result) LastErrorLine() string {
	lines := strings.Split(strings.TrimSpace(r.Stderr), "\n")

	return strings.TrimSpace(lines[len(lines)-1])
}

// CommandRunner runs a cobra command with the given arguments.
type CommandRunner interface {
	Run(ctx context.Context, cmd *cobra.Command, args []string) (Result, error)
}

// CobraCommandRunner tees command output to its writers while capturing it.
type CobraCommandRunner struct {
	stdout io.Writer
	stderr io.Writer
}

// NewCobraCommandRunner returns a runner echoing to stdout and stderr.
// Nil writers fall back to the process streams.
func NewCobraCommandRunner(stdout, stderr io.Writer) *CobraCommandRunner {
	if stdout == nil {
		stdout = os.Stdout
	}

	if stderr == nil {
		stderr = os.Stderr
	}

	return &CobraCommandRunner{stdout: stdout, stderr: stderr}
}

// NewQuietRunner returns a runner that only captures output.
func NewQuietRunner() *CobraCommandRunner {
	return &CobraCommandRunner{stdout: io.Discard, stderr: io.Discard}
}

// Run executes cmd. Usage and error printing of the command itself are silenced.
func (r *CobraCommandRunner) Run(
	ctx context.Context,
	cmd *cobra.Command,
	args []string,
) (Result, error) {
	var stdout, stderr bytes.Buffer

	cmd.SetOut(io.MultiWriter(&stdout, r.stdout))
	cmd.SetErr(io.MultiWriter(&stderr, r.stderr))
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(ctx)
	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	if err != nil {
		return result, fmt.Errorf("run %s: %w", cmd.Name(), err)
	}

	return result, nil
}

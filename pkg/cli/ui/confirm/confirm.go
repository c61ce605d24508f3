// Package confirm asks the user before playctl deletes anything.
package confirm

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/gitops-playground/playctl/pkg/utils/notify"
	"golang.org/x/term"
)

// ErrDeletionCancelled is returned when the user does not confirm a deletion.
var ErrDeletionCancelled = errors.New("deletion cancelled")

// DeletionPreview lists what a clean run removes.
type DeletionPreview struct {
	ClusterName string
	// Registry is set when the cluster registry goes with the cluster.
	Registry string
	// KubeContext is set when kubeconfig entries are removed.
	KubeContext string
	Namespace   string
	// Application is the Argo CD Application, when one is managed.
	Application string
	HostsFile   string
}

var (
	//nolint:gochecknoglobals // dependency injection for tests
	stdinReaderMu sync.RWMutex
	//nolint:gochecknoglobals // dependency injection for tests
	stdinReaderOverride io.Reader

	//nolint:gochecknoglobals // dependency injection for tests
	ttyCheckerMu sync.RWMutex
	//nolint:gochecknoglobals // dependency injection for tests
	ttyCheckerOverride func() bool
)

// SetStdinReaderForTests overrides the stdin reader and returns a restore function.
func SetStdinReaderForTests(reader io.Reader) func() {
	stdinReaderMu.Lock()

	previous := stdinReaderOverride
	stdinReaderOverride = reader

	stdinReaderMu.Unlock()

	return func() {
		stdinReaderMu.Lock()

		stdinReaderOverride = previous

		stdinReaderMu.Unlock()
	}
}

// SetTTYCheckerForTests overrides the TTY checker and returns a restore function.
func SetTTYCheckerForTests(checker func() bool) func() {
	ttyCheckerMu.Lock()

	previous := ttyCheckerOverride
	ttyCheckerOverride = checker

	ttyCheckerMu.Unlock()

	return func() {
		ttyCheckerMu.Lock()

		ttyCheckerOverride = previous

		ttyCheckerMu.Unlock()
	}
}

func stdinReader() io.Reader {
	stdinReaderMu.RLock()
	defer stdinReaderMu.RUnlock()

	if stdinReaderOverride != nil {
		return stdinReaderOverride
	}

	return os.Stdin
}

// IsTTY reports whether stdin is a terminal.
func IsTTY() bool {
	ttyCheckerMu.RLock()

	override := ttyCheckerOverride

	ttyCheckerMu.RUnlock()

	if override != nil {
		return override()
	}

	return term.IsTerminal(int(os.Stdin.Fd()))
}

// ShouldSkipPrompt reports whether to delete without asking: with force, or when nobody
// can answer because stdin is not a terminal.
func ShouldSkipPrompt(force bool) bool {
	return force || !IsTTY()
}

// ShowDeletionPreview prints what will be deleted followed by the prompt.
func ShowDeletionPreview(writer io.Writer, preview *DeletionPreview) {
	notify.Warningf(writer, "The following resources will be deleted:")

	var text strings.Builder

	line := func(label, value string) {
		if value == "" {
			return
		}

		if text.Len() > 0 {
			text.WriteString("\n")
		}

		text.WriteString("  " + label + ": " + value)
	}

	line("Cluster    ", preview.ClusterName)
	line("Registry   ", preview.Registry)
	line("Context    ", preview.KubeContext)
	line("Namespace  ", preview.Namespace)
	line("Application", preview.Application)
	line("Hosts file ", preview.HostsFile)

	notify.Infof(writer, "%s", text.String())
	notify.Warningf(writer, `Type "yes" to confirm deletion:`)
}

// PromptForConfirmation reads one line and reports whether it is "yes", ignoring case.
func PromptForConfirmation(_ io.Writer) bool {
	input, err := bufio.NewReader(stdinReader()).ReadString('\n')
	if err != nil && input == "" {
		return false
	}

	return strings.EqualFold(strings.TrimSpace(input), "yes")
}

// Confirm shows the preview and asks, unless ShouldSkipPrompt(force). It returns
// ErrDeletionCancelled when the answer is not yes.
func Confirm(writer io.Writer, preview *DeletionPreview, force bool) error {
	if ShouldSkipPrompt(force) {
		return nil
	}

	ShowDeletionPreview(writer, preview)

	if !PromptForConfirmation(writer) {
		return ErrDeletionCancelled
	}

	return nil
}

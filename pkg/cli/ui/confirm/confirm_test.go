package confirm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gitops-playground/playctl/pkg/cli/ui/confirm"
	"github.com/stretchr/testify/require"
)

//nolint:paralleltest,tparallel // Subtests cannot run in parallel - they share TTY checker state
func TestShouldSkipPrompt(t *testing.T) {

	tests := []struct {
		name     string
		force    bool
		isTTY    bool
		expected bool
	}{
		{
			name:     "force_true_skips_prompt",
			force:    true,
			isTTY:    true,
			expected: true,
		},
		{
			name:     "force_true_non_tty_skips_prompt",
			force:    true,
			isTTY:    false,
			expected: true,
		},
		{
			name:     "non_tty_skips_prompt",
			force:    false,
			isTTY:    false,
			expected: true,
		},
		{
			name:     "tty_without_force_shows_prompt",
			force:    false,
			isTTY:    true,
			expected: false,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			// Do NOT run subtests in parallel - they share TTY checker state
			restoreTTY := confirm.SetTTYCheckerForTests(func() bool { return testCase.isTTY })
			defer restoreTTY()

			result := confirm.ShouldSkipPrompt(testCase.force)
			require.Equal(t, testCase.expected, result)
		})
	}
}

// promptTestCase is a test case for PromptForConfirmation.
type promptTestCase struct {
	name     string
	input    string
	expected bool
}

// getPromptTestCases returns test cases for PromptForConfirmation.
func getPromptTestCases() []promptTestCase {
	return []promptTestCase{
		{"yes_lowercase_confirms", "yes\n", true},
		{"yes_uppercase_confirms", "YES\n", true},
		{"yes_mixed_case_confirms", "Yes\n", true},
		{"no_denies", "no\n", false},
		{"y_denies", "y\n", false},
		{"empty_denies", "\n", false},
		{"random_text_denies", "maybe\n", false},
	}
}

//nolint:paralleltest,tparallel // Subtests cannot run in parallel - they share stdin reader state
func TestPromptForConfirmation(t *testing.T) {

	for _, testCase := range getPromptTestCases() {
		t.Run(testCase.name, func(t *testing.T) {
			// Do NOT run subtests in parallel - they share stdin reader state
			restoreStdin := confirm.SetStdinReaderForTests(strings.NewReader(testCase.input))
			defer restoreStdin()

			var out bytes.Buffer

			result := confirm.PromptForConfirmation(&out)

			require.Equal(t, testCase.expected, result)
			require.Empty(t, out.String())
		})
	}
}

func TestShowDeletionPreview_ListsResources(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	confirm.ShowDeletionPreview(&out, &confirm.DeletionPreview{
		ClusterName: "playground",
		Registry:    "playground-registry",
		KubeContext: "k3d-playground",
		HostsFile:   "/etc/hosts",
	})

	output := out.String()
	require.Contains(t, output, "The following resources will be deleted:")
	require.Contains(t, output, "Cluster    : playground")
	require.Contains(t, output, "Registry   : playground-registry")
	require.Contains(t, output, "Context    : k3d-playground")
	require.NotContains(t, output, "Namespace")
	require.Contains(t, output, `Type "yes" to confirm deletion:`)
}

//nolint:paralleltest // shares TTY checker and stdin reader state
func TestConfirm(t *testing.T) {
	preview := &confirm.DeletionPreview{ClusterName: "playground"}

	t.Run("force_skips_prompt", func(t *testing.T) {
		var out bytes.Buffer

		require.NoError(t, confirm.Confirm(&out, preview, true))
		require.Empty(t, out.String())
	})

	t.Run("non_tty_skips_prompt", func(t *testing.T) {
		defer confirm.SetTTYCheckerForTests(func() bool { return false })()

		require.NoError(t, confirm.Confirm(&bytes.Buffer{}, preview, false))
	})

	t.Run("yes_confirms", func(t *testing.T) {
		defer confirm.SetTTYCheckerForTests(func() bool { return true })()
		defer confirm.SetStdinReaderForTests(strings.NewReader("yes\n"))()

		var out bytes.Buffer

		require.NoError(t, confirm.Confirm(&out, preview, false))
		require.Contains(t, out.String(), "playground")
	})

	t.Run("anything_else_cancels", func(t *testing.T) {
		defer confirm.SetTTYCheckerForTests(func() bool { return true })()
		defer confirm.SetStdinReaderForTests(strings.NewReader("n\n"))()

		err := confirm.Confirm(&bytes.Buffer{}, preview, false)
		require.ErrorIs(t, err, confirm.ErrDeletionCancelled)
	})
}

//nolint:paralleltest // shares TTY checker state
func TestIsTTY_Override(t *testing.T) {
	// Test that override works
	restoreTTY := confirm.SetTTYCheckerForTests(func() bool { return true })

	require.True(t, confirm.IsTTY())

	restoreTTY()

	// Test the opposite
	restoreTTY = confirm.SetTTYCheckerForTests(func() bool { return false })

	require.False(t, confirm.IsTTY())

	restoreTTY()
}

func TestErrDeletionCancelled(t *testing.T) {
	t.Parallel()

	require.Error(t, confirm.ErrDeletionCancelled)
	require.Equal(t, "deletion cancelled", confirm.ErrDeletionCancelled.Error())
}

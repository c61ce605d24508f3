package helpers_test

import (
	"os"
	"testing"

	"github.com/gitops-playground/playctl/pkg/cli/helpers"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	v := m.Run()

	snaps.Clean(m, snaps.CleanOpts{Sort: true})

	os.Exit(v)
}

func TestIsTimingEnabled(t *testing.T) {
	t.Parallel()

	withRoot := func(value bool) *cobra.Command {
		root := &cobra.Command{Use: "playctl"}
		root.PersistentFlags().Bool(helpers.TimingFlagName, value, "")

		infra := &cobra.Command{Use: "infra"}
		setup := &cobra.Command{Use: "setup"}

		root.AddCommand(infra)
		infra.AddCommand(setup)

		return setup
	}

	tests := []struct {
		name string
		cmd  func() *cobra.Command
		want bool
	}{
		{"local flag off", func() *cobra.Command {
			cmd := &cobra.Command{Use: "status"}
			cmd.Flags().Bool(helpers.TimingFlagName, false, "")

			return cmd
		}, false},
		{"persistent flag on", func() *cobra.Command {
			cmd := &cobra.Command{Use: "playctl"}
			cmd.PersistentFlags().Bool(helpers.TimingFlagName, true, "")

			return cmd
		}, true},
		{"inherited from grandparent", func() *cobra.Command { return withRoot(true) }, true},
		{"inherited default", func() *cobra.Command { return withRoot(false) }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			enabled, err := helpers.IsTimingEnabled(tc.cmd())

			require.NoError(t, err)
			assert.Equal(t, tc.want, enabled)
		})
	}
}

func TestIsTimingEnabledErrors(t *testing.T) {
	t.Parallel()

	t.Run("nil command", func(t *testing.T) {
		t.Parallel()

		_, err := helpers.IsTimingEnabled(nil)

		require.ErrorIs(t, err, helpers.ErrNilCommand)
		snaps.MatchSnapshot(t, err.Error())
	})

	t.Run("flag not defined", func(t *testing.T) {
		t.Parallel()

		_, err := helpers.IsTimingEnabled(&cobra.Command{Use: "status"})

		require.ErrorIs(t, err, helpers.ErrFlagNotDefined)
		snaps.MatchSnapshot(t, err.Error())
	})
}

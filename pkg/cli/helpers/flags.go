package helpers

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// TimingFlagName is the persistent flag that enables per-stage timing output.
const TimingFlagName = "timing"

// ErrNilCommand is returned when a helper is given no command.
var ErrNilCommand = errors.New("command is nil")

// ErrFlagNotDefined is returned when the timing flag is missing from a command tree.
var ErrFlagNotDefined = errors.New("flag is not defined")

// IsTimingEnabled reads the timing flag from cmd's local, persistent or inherited flags.
func IsTimingEnabled(cmd *cobra.Command) (bool, error) {
	if cmd == nil {
		return false, ErrNilCommand
	}

	var flags *pflag.FlagSet

	for _, candidate := range []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags(), cmd.InheritedFlags()} {
		if candidate.Lookup(TimingFlagName) != nil {
			flags = candidate

			break
		}
	}

	if flags == nil {
		return false, fmt.Errorf("%w: --%s", ErrFlagNotDefined, TimingFlagName)
	}

	enabled, err := flags.GetBool(TimingFlagName)
	if err != nil {
		return false, fmt.Errorf("read --%s: %w", TimingFlagName, err)
	}

	return enabled, nil
}

package v1alpha1

import (
	"fmt"
	"strings"
)

// EnumValuer is implemented by string enums that know their accepted values.
type EnumValuer interface {
	ValidValues() []string
}

// AddonState switches an add-on on or off.
type AddonState string

const (
	// AddonEnabled installs the add-on.
	AddonEnabled AddonState = "Enabled"
	// AddonDisabled skips the add-on.
	AddonDisabled AddonState = "Disabled"
)

// ValidAddonStates lists the accepted AddonState values.
func ValidAddonStates() []AddonState {
	return []AddonState{AddonEnabled, AddonDisabled}
}

// Set implements pflag.Value.
func (s *AddonState) Set(value string) error {
	for _, state := range ValidAddonStates() {
		if strings.EqualFold(value, string(state)) {
			*s = state

			return nil
		}
	}

	return fmt.Errorf("%w: %s (valid options: %s, %s)",
		ErrInvalidAddonState, value, AddonEnabled, AddonDisabled)
}

// String implements pflag.Value.
func (s *AddonState) String() string { return string(*s) }

// Type implements pflag.Value.
func (s *AddonState) Type() string { return "AddonState" }

// ValidValues implements EnumValuer.
func (s *AddonState) ValidValues() []string {
	return []string{string(AddonEnabled), string(AddonDisabled)}
}

// LoadStrategy selects how the application image reaches the nodes.
type LoadStrategy string

const (
	// LoadStrategyRegistry pushes the image to the k3d registry.
	LoadStrategyRegistry LoadStrategy = "Registry"
	// LoadStrategyImport copies the image into every node with k3d image import.
	LoadStrategyImport LoadStrategy = "Import"
)

// ValidLoadStrategies lists the accepted LoadStrategy values.
func ValidLoadStrategies() []LoadStrategy {
	return []LoadStrategy{LoadStrategyRegistry, LoadStrategyImport}
}

// Set implements pflag.Value.
func (l *LoadStrategy) Set(value string) error {
	for _, strategy := range ValidLoadStrategies() {
		if strings.EqualFold(value, string(strategy)) {
			*l = strategy

			return nil
		}
	}

	return fmt.Errorf("%w: %s (valid options: %s, %s)",
		ErrInvalidLoadStrategy, value, LoadStrategyRegistry, LoadStrategyImport)
}

// String implements pflag.Value.
func (l *LoadStrategy) String() string { return string(*l) }

// Type implements pflag.Value.
func (l *LoadStrategy) Type() string { return "LoadStrategy" }

// ValidValues implements EnumValuer.
func (l *LoadStrategy) ValidValues() []string {
	return []string{string(LoadStrategyRegistry), string(LoadStrategyImport)}
}

// Package di wires the services used by playctl commands into a samber/do container.
package di

import (
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Injector is the dependency container handed to command handlers.
type Injector = do.Injector

// Module registers providers on an Injector.
type Module func(Injector) error

// Runtime holds the modules every command invocation starts from.
type Runtime struct {
	modules []Module
}

// New returns a Runtime built from modules.
func New(modules ...Module) *Runtime {
	return &Runtime{modules: modules}
}

// Invoke builds a fresh injector from the base modules followed by extra, runs handler
// and shuts the injector down. Nil modules are skipped.
func (r *Runtime) Invoke(handler func(Injector) error, extra ...Module) error {
	injector := do.New()
	defer func() { _ = injector.Shutdown() }()

	modules := make([]Module, 0, len(r.modules)+len(extra))
	modules = append(modules, r.modules...)
	modules = append(modules, extra...)

	for _, module := range modules {
		if module == nil {
			continue
		}

		if err := module(injector); err != nil {
			return err
		}
	}

	return handler(injector)
}

// RunEWithRuntime adapts a handler to cobra's RunE signature.
func RunEWithRuntime(
	rt *Runtime,
	handler func(cmd *cobra.Command, injector Injector) error,
) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return rt.Invoke(func(injector Injector) error {
			return handler(cmd, injector)
		}, ProvideOutput(cmd.OutOrStdout()))
	}
}

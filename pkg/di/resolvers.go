package di

import (
	"fmt"
	"io"

	"github.com/gitops-playground/playctl/pkg/client/docker"
	"github.com/gitops-playground/playctl/pkg/client/helm"
	"github.com/gitops-playground/playctl/pkg/k8s"
	clusterprovisioner "github.com/gitops-playground/playctl/pkg/svc/provisioner/cluster"
	"github.com/gitops-playground/playctl/pkg/utils/timer"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Services are the dependencies a playground command works with.
type Services struct {
	Timer        timer.Timer
	Provisioners clusterprovisioner.Factory
	Helm         helm.Factory
	Clients      k8s.ClientFactory
	Docker       docker.EngineFactory
	ArgoCD       ArgoCDFactory
	Out          io.Writer
}

// ResolveTimer retrieves the timer dependency from the injector with consistent error handling.
func ResolveTimer(injector Injector) (timer.Timer, error) {
	tmr, err := do.Invoke[timer.Timer](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve timer dependency: %w", err)
	}

	return tmr, nil
}

// ResolveClusterProvisionerFactory retrieves the cluster provisioner factory dependency
// from the injector with consistent error handling.
func ResolveClusterProvisionerFactory(
	injector Injector,
) (clusterprovisioner.Factory, error) {
	factory, err := do.Invoke[clusterprovisioner.Factory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve provisioner factory dependency: %w", err)
	}

	return factory, nil
}

// ResolveServices retrieves every command dependency at once. The output falls back to
// io.Discard when none was provided.
func ResolveServices(injector Injector) (*Services, error) {
	tmr, err := ResolveTimer(injector)
	if err != nil {
		return nil, err
	}

	provisioners, err := ResolveClusterProvisionerFactory(injector)
	if err != nil {
		return nil, err
	}

	helmFactory, err := do.Invoke[helm.Factory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve helm factory dependency: %w", err)
	}

	clients, err := do.Invoke[k8s.ClientFactory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve kubernetes client factory dependency: %w", err)
	}

	engines, err := do.Invoke[docker.EngineFactory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve docker engine factory dependency: %w", err)
	}

	argo, err := do.Invoke[ArgoCDFactory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve argocd factory dependency: %w", err)
	}

	out, err := do.InvokeNamed[io.Writer](injector, OutputName)
	if err != nil {
		out = io.Discard
	}

	return &Services{
		Timer:        tmr,
		Provisioners: provisioners,
		Helm:         helmFactory,
		Clients:      clients,
		Docker:       engines,
		ArgoCD:       argo,
		Out:          out,
	}, nil
}

// WithServices decorates a handler to resolve all command dependencies.
func WithServices(
	handler func(cmd *cobra.Command, services *Services) error,
) func(cmd *cobra.Command, injector Injector) error {
	return func(cmd *cobra.Command, injector Injector) error {
		services, err := ResolveServices(injector)
		if err != nil {
			return err
		}

		return handler(cmd, services)
	}
}

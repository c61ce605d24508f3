package di

import (
	"io"

	"github.com/gitops-playground/playctl/pkg/client/argocd"
	"github.com/gitops-playground/playctl/pkg/client/docker"
	"github.com/gitops-playground/playctl/pkg/client/helm"
	"github.com/gitops-playground/playctl/pkg/k8s"
	clusterprovisioner "github.com/gitops-playground/playctl/pkg/svc/provisioner/cluster"
	"github.com/gitops-playground/playctl/pkg/utils/timer"
	"github.com/samber/do/v2"
)

// OutputName is the named io.Writer commands write their progress to.
const OutputName = "output"

// ArgoCDFactory builds an Argo CD manager on top of cluster clients.
type ArgoCDFactory func(clients *k8s.Clients) argocd.Manager

// NewRuntime returns the Runtime used by the root command with the default services.
func NewRuntime() *Runtime {
	return New(
		provideTimer,
		provideClusterProvisionerFactory,
		provideHelmFactory,
		provideClientFactory,
		provideDockerEngineFactory,
		provideArgoCDFactory,
	)
}

// ProvideOutput registers w as the command output.
func ProvideOutput(w io.Writer) Module {
	return func(i Injector) error {
		do.ProvideNamedValue(i, OutputName, w)

		return nil
	}
}

// ProvideValue registers a fixed value for T, replacing the default provider.
// Tests use it to inject fakes.
func ProvideValue[T any](value T) Module {
	return func(i Injector) error {
		do.OverrideValue(i, value)

		return nil
	}
}

func provideTimer(i Injector) error {
	do.Provide(i, func(Injector) (timer.Timer, error) {
		return timer.New(), nil
	})

	return nil
}

func provideClusterProvisionerFactory(i Injector) error {
	do.Provide(i, func(i Injector) (clusterprovisioner.Factory, error) {
		out, err := do.InvokeNamed[io.Writer](i, OutputName)
		if err != nil {
			out = nil
		}

		return clusterprovisioner.DefaultFactory{Out: out}, nil
	})

	return nil
}

func provideHelmFactory(i Injector) error {
	do.Provide(i, func(Injector) (helm.Factory, error) {
		return helm.DefaultFactory{}, nil
	})

	return nil
}

func provideClientFactory(i Injector) error {
	do.Provide(i, func(Injector) (k8s.ClientFactory, error) {
		return k8s.DefaultClientFactory{}, nil
	})

	return nil
}

func provideDockerEngineFactory(i Injector) error {
	do.Provide(i, func(Injector) (docker.EngineFactory, error) {
		return docker.NewEngine, nil
	})

	return nil
}

func provideArgoCDFactory(i Injector) error {
	do.Provide(i, func(Injector) (ArgoCDFactory, error) {
		return func(clients *k8s.Clients) argocd.Manager {
			return argocd.NewManager(clients.Clientset, clients.Dynamic)
		}, nil
	})

	return nil
}

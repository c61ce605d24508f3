package installer

import (
	"context"

	"github.com/gitops-playground/playctl/pkg/k8s/readiness"
)

// Installer defines methods for installing and uninstalling components.
type Installer interface {
	// Name identifies the component in output and errors.
	Name() string

	// Install installs or upgrades the component.
	Install(ctx context.Context) error

	// Uninstall uninstalls the component.
	Uninstall(ctx context.Context) error

	// Checks returns the workloads polled for readiness after Install.
	Checks() []readiness.Check
}

// Releaser is implemented by installers backed by a single Helm release.
type Releaser interface {
	Release() (name, namespace string)
}

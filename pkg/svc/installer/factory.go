package installer

import (
	"github.com/gitops-playground/playctl/pkg/apis/playground/v1alpha1"
	"github.com/gitops-playground/playctl/pkg/client/helm"
	argocdinstaller "github.com/gitops-playground/playctl/pkg/svc/installer/argocd"
	dashboardinstaller "github.com/gitops-playground/playctl/pkg/svc/installer/dashboard"
	ingressnginxinstaller "github.com/gitops-playground/playctl/pkg/svc/installer/ingressnginx"
	monitoringinstaller "github.com/gitops-playground/playctl/pkg/svc/installer/monitoring"
)

// Factory creates installers for an Environment.
type Factory struct {
	helmClient helm.Interface
}

// NewFactory creates a new installer factory.
func NewFactory(helmClient helm.Interface) *Factory {
	return &Factory{helmClient: helmClient}
}

// All returns an installer for every add-on in install order, whether enabled or not.
// Status and cleanup use it to look at releases that may have been installed earlier.
func (f *Factory) All(env *v1alpha1.Environment) []Installer {
	return []Installer{
		ingressnginxinstaller.NewInstaller(f.helmClient, env),
		dashboardinstaller.NewInstaller(f.helmClient, env),
		argocdinstaller.NewInstaller(f.helmClient, env),
		monitoringinstaller.NewInstaller(f.helmClient, env),
	}
}

// Entry pairs an add-on installer with whether the Environment enables it.
type Entry struct {
	Installer
	Enabled bool
}

// Entries returns every add-on in install order with its enablement.
func (f *Factory) Entries(env *v1alpha1.Environment) []Entry {
	addons := env.Spec.Addons
	enabled := []bool{
		addons.Ingress.Enabled(),
		addons.Dashboard.Enabled(),
		addons.ArgoCD.Enabled(),
		addons.Monitoring.Enabled(),
	}

	all := f.All(env)
	entries := make([]Entry, 0, len(all))

	for i, inst := range all {
		entries = append(entries, Entry{Installer: inst, Enabled: enabled[i]})
	}

	return entries
}

// Enabled returns the installers for the add-ons env enables, in install order.
func (f *Factory) Enabled(env *v1alpha1.Environment) []Installer {
	entries := f.Entries(env)
	installers := make([]Installer, 0, len(entries))

	for _, entry := range entries {
		if entry.Enabled {
			installers = append(installers, entry.Installer)
		}
	}

	return installers
}

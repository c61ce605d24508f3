// Package dashboardinstaller installs the Kubernetes dashboard behind the ingress.
package dashboardinstaller

import (
	_ "embed"

	"github.com/gitops-playground/playctl/pkg/apis/playground/v1alpha1"
	"github.com/gitops-playground/playctl/pkg/client/helm"
	"github.com/gitops-playground/playctl/pkg/k8s/readiness"
	"github.com/gitops-playground/playctl/pkg/svc/installer/internal/helmutil"
)

const (
	// Namespace is where the dashboard runs.
	Namespace = "kubernetes-dashboard"
	// ReleaseName is the Helm release name.
	ReleaseName = "kubernetes-dashboard"
	// HostPrefix is joined with the cluster domain to form the ingress host.
	HostPrefix = "dashboard"

	repoURL             = "https://kubernetes.github.io/dashboard/"
	defaultChartVersion = "7.13.0"
)

//go:embed values.yaml
var valuesYaml string

// Installer installs or upgrades the Kubernetes dashboard.
type Installer struct {
	*helmutil.Base
}

// NewInstaller creates a dashboard installer exposing the UI at dashboard.<domain>.
func NewInstaller(client helm.Interface, env *v1alpha1.Environment) *Installer {
	timeout := env.Spec.Timeouts.Install.Duration

	return &Installer{
		Base: helmutil.NewBase(
			"kubernetes-dashboard",
			client,
			timeout,
			&helm.RepositoryEntry{Name: "kubernetes-dashboard", URL: repoURL},
			&helm.ChartSpec{
				ReleaseName:     ReleaseName,
				ChartName:       "kubernetes-dashboard",
				RepoURL:         repoURL,
				Version:         helmutil.ChartVersion(env.Spec.Addons.Dashboard.ChartVersion, defaultChartVersion),
				Namespace:       Namespace,
				CreateNamespace: true,
				Wait:            true,
				Timeout:         timeout,
				ValuesYaml:      valuesYaml,
				SetValues: map[string]string{
					"app.ingress.hosts": "{" + env.Spec.Cluster.Host(HostPrefix) + "}",
				},
			},
			deployment("kubernetes-dashboard-api"),
			deployment("kubernetes-dashboard-auth"),
			deployment("kubernetes-dashboard-web"),
			deployment("kubernetes-dashboard-kong"),
		),
	}
}

func deployment(name string) readiness.Check {
	return readiness.Check{Type: readiness.TypeDeployment, Namespace: Namespace, Name: name}
}

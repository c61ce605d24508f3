// Package ingressnginxinstaller installs ingress-nginx, the ingress controller behind
// the load-balancer ports of the playground cluster.
package ingressnginxinstaller

import (
	_ "embed"
	"time"

	"github.com/gitops-playground/playctl/pkg/apis/playground/v1alpha1"
	"github.com/gitops-playground/playctl/pkg/client/helm"
	"github.com/gitops-playground/playctl/pkg/k8s/readiness"
	"github.com/gitops-playground/playctl/pkg/svc/installer/internal/helmutil"
)

const (
	// Namespace is where the controller runs.
	Namespace = "ingress-nginx"
	// ReleaseName is the Helm release name.
	ReleaseName = "ingress-nginx"
	// ClassName is the IngressClass the controller serves.
	ClassName = "nginx"

	repoURL             = "https://kubernetes.github.io/ingress-nginx"
	defaultChartVersion = "4.13.2"
)

//go:embed values.yaml
var valuesYaml string

// Installer installs or upgrades ingress-nginx.
//
// It embeds helmutil.Base to provide standard Helm chart lifecycle management.
type Installer struct {
	*helmutil.Base
}

// NewInstaller creates an ingress-nginx installer for env.
func NewInstaller(client helm.Interface, env *v1alpha1.Environment) *Installer {
	timeout := env.Spec.Timeouts.Install.Duration

	return newInstaller(client, timeout, env.Spec.Addons.Ingress.ChartVersion)
}

func newInstaller(client helm.Interface, timeout time.Duration, version string) *Installer {
	return &Installer{
		Base: helmutil.NewBase(
			"ingress-nginx",
			client,
			timeout,
			&helm.RepositoryEntry{Name: "ingress-nginx", URL: repoURL},
			&helm.ChartSpec{
				ReleaseName:     ReleaseName,
				ChartName:       "ingress-nginx",
				RepoURL:         repoURL,
				Version:         helmutil.ChartVersion(version, defaultChartVersion),
				Namespace:       Namespace,
				CreateNamespace: true,
				Wait:            true,
				WaitForJobs:     true,
				Timeout:         timeout,
				ValuesYaml:      valuesYaml,
			},
			readiness.Check{Type: readiness.TypeDeployment, Namespace: Namespace, Name: "ingress-nginx-controller"},
		),
	}
}

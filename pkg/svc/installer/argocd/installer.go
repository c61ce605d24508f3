// Package argocdinstaller installs Argo CD from its OCI Helm chart. The API server runs
// without TLS because the ingress terminates plain HTTP on the playground.
package argocdinstaller

import (
	_ "embed"

	"github.com/gitops-playground/playctl/pkg/apis/playground/v1alpha1"
	"github.com/gitops-playground/playctl/pkg/client/argocd"
	"github.com/gitops-playground/playctl/pkg/client/helm"
	"github.com/gitops-playground/playctl/pkg/k8s/readiness"
	"github.com/gitops-playground/playctl/pkg/svc/installer/internal/helmutil"
)

const (
	// ReleaseName is the Helm release name.
	ReleaseName = "argocd"
	// ChartRef is the OCI reference of the chart.
	ChartRef = "oci://ghcr.io/argoproj/argo-helm/argo-cd"
	// HostPrefix is joined with the cluster domain to form the server ingress host.
	HostPrefix = "argocd"
	// ServerService is the Service exposing the API server and UI.
	ServerService = "argocd-server"

	defaultChartVersion = "8.3.5"
)

//go:embed values.yaml
var valuesYaml string

// Installer installs or upgrades Argo CD via its Helm OCI chart.
type Installer struct {
	*helmutil.Base
}

// NewInstaller creates an Argo CD installer serving the UI at argocd.<domain>.
func NewInstaller(client helm.Interface, env *v1alpha1.Environment) *Installer {
	timeout := env.Spec.Timeouts.Install.Duration
	host := env.Spec.Cluster.Host(HostPrefix)

	return &Installer{
		Base: helmutil.NewBase(
			"argocd",
			client,
			timeout,
			nil,
			&helm.ChartSpec{
				ReleaseName:     ReleaseName,
				ChartName:       ChartRef,
				Version:         helmutil.ChartVersion(env.Spec.Addons.ArgoCD.ChartVersion, defaultChartVersion),
				Namespace:       argocd.Namespace,
				CreateNamespace: true,
				Wait:            true,
				WaitForJobs:     true,
				UpgradeCRDs:     true,
				Timeout:         timeout,
				ValuesYaml:      valuesYaml,
				SetValues: map[string]string{
					"global.domain":           host,
					"server.ingress.hostname": host,
				},
			},
			deployment(ServerService),
			deployment("argocd-repo-server"),
			deployment("argocd-redis"),
			readiness.Check{
				Type:      readiness.TypeStatefulSet,
				Namespace: argocd.Namespace,
				Name:      "argocd-application-controller",
			},
		),
	}
}

func deployment(name string) readiness.Check {
	return readiness.Check{Type: readiness.TypeDeployment, Namespace: argocd.Namespace, Name: name}
}

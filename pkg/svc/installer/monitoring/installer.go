// Package monitoringinstaller installs kube-prometheus-stack with Grafana behind the ingress.
//
// The etcd, controller-manager, scheduler and kube-proxy scrapers are disabled because k3s
// embeds those components in the server process and does not expose them separately.
package monitoringinstaller

import (
	_ "embed"

	"github.com/gitops-playground/playctl/pkg/apis/playground/v1alpha1"
	"github.com/gitops-playground/playctl/pkg/client/helm"
	"github.com/gitops-playground/playctl/pkg/k8s/readiness"
	"github.com/gitops-playground/playctl/pkg/svc/installer/internal/helmutil"
)

const (
	// Namespace is where the stack runs.
	Namespace = "monitoring"
	// ReleaseName is the Helm release name. Workload names are derived from it.
	ReleaseName = "kube-prometheus-stack"
	// HostPrefix is joined with the cluster domain to form the Grafana ingress host.
	HostPrefix = "grafana"

	repoURL             = "https://prometheus-community.github.io/helm-charts"
	defaultChartVersion = "77.5.0"
)

//go:embed values.yaml
var valuesYaml string

// Installer installs or upgrades kube-prometheus-stack.
type Installer struct {
	*helmutil.Base
}

// NewInstaller creates a monitoring installer exposing Grafana at grafana.<domain>.
func NewInstaller(client helm.Interface, env *v1alpha1.Environment) *Installer {
	timeout := env.Spec.Timeouts.Install.Duration

	return &Installer{
		Base: helmutil.NewBase(
			"kube-prometheus-stack",
			client,
			timeout,
			&helm.RepositoryEntry{Name: "prometheus-community", URL: repoURL},
			&helm.ChartSpec{
				ReleaseName:     ReleaseName,
				ChartName:       "kube-prometheus-stack",
				RepoURL:         repoURL,
				Version:         helmutil.ChartVersion(env.Spec.Addons.Monitoring.ChartVersion, defaultChartVersion),
				Namespace:       Namespace,
				CreateNamespace: true,
				Wait:            true,
				UpgradeCRDs:     true,
				Timeout:         timeout,
				ValuesYaml:      valuesYaml,
				SetValues: map[string]string{
					"grafana.ingress.hosts": "{" + env.Spec.Cluster.Host(HostPrefix) + "}",
				},
			},
			readiness.Check{Type: readiness.TypeDeployment, Namespace: Namespace, Name: ReleaseName + "-operator"},
			readiness.Check{Type: readiness.TypeDeployment, Namespace: Namespace, Name: ReleaseName + "-grafana"},
			readiness.Check{
				Type:      readiness.TypeDeployment,
				Namespace: Namespace,
				Name:      ReleaseName + "-kube-state-metrics",
			},
			readiness.Check{
				Type:      readiness.TypeDaemonSet,
				Namespace: Namespace,
				Name:      ReleaseName + "-prometheus-node-exporter",
			},
			readiness.Check{
				Type:      readiness.TypeStatefulSet,
				Namespace: Namespace,
				Name:      "prometheus-" + ReleaseName + "-prometheus",
			},
		),
	}
}

// Package v1alpha1 defines the Environment resource describing one local playground.
package v1alpha1

import (
	"iter"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	// Group is the API group.
	Group = "playground.dev"
	// Version is the API version.
	Version = "v1alpha1"
	// Kind is the resource kind.
	Kind = "Environment"
	// APIVersion is group and version joined.
	APIVersion = Group + "/" + Version
)

// Environment is the full description of a playground: the cluster, its add-ons and the
// sample application deployed onto it.
type Environment struct {
	metav1.TypeMeta `json:",inline" mapstructure:",squash"`

	Spec Spec `json:"spec,omitzero" mapstructure:"spec"`
}

// Spec is the desired state of an Environment.
type Spec struct {
	Cluster  ClusterSpec  `json:"cluster,omitzero"  mapstructure:"cluster"`
	Addons   AddonsSpec   `json:"addons,omitzero"   mapstructure:"addons"`
	App      AppSpec      `json:"app,omitzero"      mapstructure:"app"`
	GitOps   GitOpsSpec   `json:"gitops,omitzero"   mapstructure:"gitops"`
	Timeouts TimeoutsSpec `json:"timeouts,omitzero" mapstructure:"timeouts"`
}

// ClusterSpec describes the k3d cluster.
type ClusterSpec struct {
	Name       string       `json:"name,omitzero"       mapstructure:"name"`
	Domain     string       `json:"domain,omitzero"     mapstructure:"domain"`
	HTTPPort   int          `json:"httpPort,omitzero"   mapstructure:"httpPort"`
	HTTPSPort  int          `json:"httpsPort,omitzero"  mapstructure:"httpsPort"`
	Servers    int          `json:"servers,omitzero"    mapstructure:"servers"`
	Agents     int          `json:"agents,omitzero"     mapstructure:"agents"`
	K3sImage   string       `json:"k3sImage,omitzero"   mapstructure:"k3sImage"`
	Kubeconfig string       `json:"kubeconfig,omitzero" mapstructure:"kubeconfig"`
	Registry   RegistrySpec `json:"registry,omitzero"   mapstructure:"registry"`
	HostsFile  string       `json:"hostsFile,omitzero"  mapstructure:"hostsFile"`
}

// RegistrySpec describes the registry k3d creates next to the cluster.
type RegistrySpec struct {
	Name     string `json:"name,omitzero"     mapstructure:"name"`
	HostPort int    `json:"hostPort,omitzero" mapstructure:"hostPort"`
}

// AddonsSpec toggles the Helm-installed components.
type AddonsSpec struct {
	Ingress    Addon `json:"ingress,omitzero"    mapstructure:"ingress"`
	Dashboard  Addon `json:"dashboard,omitzero"  mapstructure:"dashboard"`
	ArgoCD     Addon `json:"argocd,omitzero"     mapstructure:"argocd"`
	Monitoring Addon `json:"monitoring,omitzero" mapstructure:"monitoring"`
}

// Addon is one Helm-installed component.
type Addon struct {
	State        AddonState `json:"state,omitzero"        mapstructure:"state"`
	ChartVersion string     `json:"chartVersion,omitzero" mapstructure:"chartVersion"`
}

// byName returns the add-ons keyed by their config name, in install order.
func (a *AddonsSpec) byName() iter.Seq2[string, *Addon] {
	return func(yield func(string, *Addon) bool) {
		for _, entry := range []struct {
			name  string
			addon *Addon
		}{
			{"ingress", &a.Ingress},
			{"dashboard", &a.Dashboard},
			{"argocd", &a.ArgoCD},
			{"monitoring", &a.Monitoring},
		} {
			if !yield(entry.name, entry.addon) {
				return
			}
		}
	}
}

// Enabled reports whether the add-on should be installed.
func (a Addon) Enabled() bool {
	return a.State != AddonDisabled
}

// AppSpec describes the sample application.
type AppSpec struct {
	Name         string       `json:"name,omitzero"         mapstructure:"name"`
	Namespace    string       `json:"namespace,omitzero"    mapstructure:"namespace"`
	Image        string       `json:"image,omitzero"        mapstructure:"image"`
	Tag          string       `json:"tag,omitzero"          mapstructure:"tag"`
	BuildContext string       `json:"buildContext,omitzero" mapstructure:"buildContext"`
	Dockerfile   string       `json:"dockerfile,omitzero"   mapstructure:"dockerfile"`
	Platform     string       `json:"platform,omitzero"     mapstructure:"platform"`
	LoadStrategy LoadStrategy `json:"loadStrategy,omitzero" mapstructure:"loadStrategy"`
	ManifestsDir string       `json:"manifestsDir,omitzero" mapstructure:"manifestsDir"`
	SeedFile     string       `json:"seedFile,omitzero"     mapstructure:"seedFile"`
}

// GitOpsSpec points Argo CD at the repository holding the application manifests.
type GitOpsSpec struct {
	RepoURL  string `json:"repoURL,omitzero"  mapstructure:"repoURL"`
	Path     string `json:"path,omitzero"     mapstructure:"path"`
	Revision string `json:"revision,omitzero" mapstructure:"revision"`
}

// TimeoutsSpec bounds the blocking waits.
type TimeoutsSpec struct {
	Install   metav1.Duration `json:"install,omitzero"   mapstructure:"install"`
	Readiness metav1.Duration `json:"readiness,omitzero" mapstructure:"readiness"`
}

// KubeContext is the kubeconfig context k3d writes for the cluster.
func (c ClusterSpec) KubeContext() string {
	return "k3d-" + c.Name
}

// Host returns name joined with the cluster domain.
func (c ClusterSpec) Host(name string) string {
	return name + "." + c.Domain
}

// ImageRef is the image reference used by the local build.
func (a AppSpec) ImageRef() string {
	return a.Image + ":" + a.Tag
}

// InClusterImage is the reference pods use to pull the application image.
func (e *Environment) InClusterImage() string {
	if e.Spec.App.LoadStrategy == LoadStrategyImport {
		return e.Spec.App.ImageRef()
	}

	return RegistryInClusterAddress(e.Spec.Cluster.Registry.Name) + "/" + e.Spec.App.ImageRef()
}

// PushImage is the reference the host pushes to.
func (e *Environment) PushImage() string {
	return RegistryHostAddress(e.Spec.Cluster.Registry.HostPort) + "/" + e.Spec.App.ImageRef()
}

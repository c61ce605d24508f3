package v1alpha1

import (
	"fmt"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	// DefaultClusterName is used when CLUSTER_NAME is unset.
	DefaultClusterName = "playground"
	// DefaultDomain is used when CLUSTER_DOMAIN is unset.
	DefaultDomain = "playground.local"
	// DefaultHTTPPort is the host port mapped to the ingress on 80.
	DefaultHTTPPort = 8080
	// DefaultHTTPSPort is the host port mapped to the ingress on 443.
	DefaultHTTPSPort = 8443
	// DefaultServers is the number of k3s server nodes.
	DefaultServers = 1
	// DefaultAgents is the number of k3s agent nodes.
	DefaultAgents = 2
	// DefaultK3sImage pins the node image.
	DefaultK3sImage = "rancher/k3s:v1.33.4-k3s1"
	// DefaultRegistryName is the k3d registry container name.
	DefaultRegistryName = "playground-registry"
	// DefaultRegistryHostPort is the host port of the registry.
	DefaultRegistryHostPort = 5050
	// RegistryContainerPort is the port the registry listens on inside the docker network.
	RegistryContainerPort = 5000
	// DefaultHostsFile is the hosts file the ingress names are written to.
	DefaultHostsFile = "/etc/hosts"

	// DefaultAppName names the sample application and its Kubernetes objects.
	DefaultAppName = "albums"
	// DefaultAppNamespace is where the application is deployed.
	DefaultAppNamespace = "albums"
	// DefaultImage is the application image repository.
	DefaultImage = "albums"
	// DefaultTag is the application image tag.
	DefaultTag = "latest"
	// DefaultBuildContext is the docker build context.
	DefaultBuildContext = "."
	// DefaultDockerfile is relative to the build context.
	DefaultDockerfile = "Dockerfile"
	// DefaultPlatform is the build target platform.
	DefaultPlatform = "linux/amd64"

	// DefaultGitOpsPath is the manifests path inside the Git repository.
	DefaultGitOpsPath = "deploy/manifests"
	// DefaultGitOpsRevision is the tracked Git revision.
	DefaultGitOpsRevision = "HEAD"

	// DefaultInstallTimeout bounds a single Helm install.
	DefaultInstallTimeout = 5 * time.Minute
	// DefaultReadinessTimeout bounds a single readiness wait.
	DefaultReadinessTimeout = 3 * time.Minute
)

// NewEnvironment returns an Environment populated with every default.
func NewEnvironment() *Environment {
	env := &Environment{}
	env.TypeMeta.APIVersion = APIVersion
	env.TypeMeta.Kind = Kind
	env.Spec.Cluster.Agents = DefaultAgents
	env.SetDefaults()

	return env
}

// SetDefaults fills every zero field with its default. Agents is left alone because
// zero agents is a valid cluster shape.
func (e *Environment) SetDefaults() {
	cluster := &e.Spec.Cluster
	setString(&cluster.Name, DefaultClusterName)
	setString(&cluster.Domain, DefaultDomain)
	setInt(&cluster.HTTPPort, DefaultHTTPPort)
	setInt(&cluster.HTTPSPort, DefaultHTTPSPort)
	setInt(&cluster.Servers, DefaultServers)
	setString(&cluster.K3sImage, DefaultK3sImage)
	setString(&cluster.Registry.Name, DefaultRegistryName)
	setInt(&cluster.Registry.HostPort, DefaultRegistryHostPort)
	setString(&cluster.HostsFile, DefaultHostsFile)

	app := &e.Spec.App
	setString(&app.Name, DefaultAppName)
	setString(&app.Namespace, DefaultAppNamespace)
	setString(&app.Image, DefaultImage)
	setString(&app.Tag, DefaultTag)
	setString(&app.BuildContext, DefaultBuildContext)
	setString(&app.Dockerfile, DefaultDockerfile)
	setString(&app.Platform, DefaultPlatform)

	if app.LoadStrategy == "" {
		app.LoadStrategy = LoadStrategyRegistry
	}

	for _, addon := range e.Spec.Addons.byName() {
		if addon.State == "" {
			addon.State = AddonEnabled
		}
	}

	setString(&e.Spec.GitOps.Path, DefaultGitOpsPath)
	setString(&e.Spec.GitOps.Revision, DefaultGitOpsRevision)

	if e.Spec.Timeouts.Install.Duration <= 0 {
		e.Spec.Timeouts.Install = metav1.Duration{Duration: DefaultInstallTimeout}
	}

	if e.Spec.Timeouts.Readiness.Duration <= 0 {
		e.Spec.Timeouts.Readiness = metav1.Duration{Duration: DefaultReadinessTimeout}
	}
}

// RegistryHostAddress is the registry address as seen from the host.
func RegistryHostAddress(hostPort int) string {
	return fmt.Sprintf("localhost:%d", hostPort)
}

// RegistryInClusterAddress is the registry address as seen from the nodes.
func RegistryInClusterAddress(name string) string {
	return fmt.Sprintf("%s:%d", name, RegistryContainerPort)
}

func setString(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

func setInt(field *int, value int) {
	if *field == 0 {
		*field = value
	}
}

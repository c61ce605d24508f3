package configmanager

import "github.com/gitops-playground/playctl/pkg/apis/playground/v1alpha1"

// FieldSelector ties one Environment field to its config key, flag and environment variables.
type FieldSelector struct {
	// Key is the dotted config file path, e.g. spec.cluster.name.
	Key string
	// Flag is the long flag name.
	Flag string
	// EnvVars are extra variable names read before the PLAYCTL_ prefixed one.
	EnvVars []string
	// Description is the flag usage text.
	Description string
	// Default is the value used when nothing else sets the field.
	Default any
}

// DefaultSelectors returns the selectors for every configurable field.
func DefaultSelectors() []FieldSelector {
	return []FieldSelector{
		{Key: "spec.cluster.name", Flag: "cluster-name", EnvVars: []string{"CLUSTER_NAME"},
			Description: "Name of the k3d cluster", Default: v1alpha1.DefaultClusterName},
		{Key: "spec.cluster.domain", Flag: "domain", EnvVars: []string{"CLUSTER_DOMAIN"},
			Description: "DNS suffix for ingress hosts", Default: v1alpha1.DefaultDomain},
		{Key: "spec.cluster.httpPort", Flag: "http-port", EnvVars: []string{"HTTP_PORT"},
			Description: "Host port mapped to the ingress HTTP port", Default: v1alpha1.DefaultHTTPPort},
		{Key: "spec.cluster.httpsPort", Flag: "https-port", EnvVars: []string{"HTTPS_PORT"},
			Description: "Host port mapped to the ingress HTTPS port", Default: v1alpha1.DefaultHTTPSPort},
		{Key: "spec.cluster.servers", Flag: "servers",
			Description: "Number of k3s server nodes", Default: v1alpha1.DefaultServers},
		{Key: "spec.cluster.agents", Flag: "agents",
			Description: "Number of k3s agent nodes", Default: v1alpha1.DefaultAgents},
		{Key: "spec.cluster.k3sImage", Flag: "k3s-image",
			Description: "k3s node image", Default: v1alpha1.DefaultK3sImage},
		{Key: "spec.cluster.kubeconfig", Flag: "kubeconfig", EnvVars: []string{"KUBECONFIG"},
			Description: "Path to the kubeconfig file", Default: ""},
		{Key: "spec.cluster.registry.name", Flag: "registry-name",
			Description: "Name of the registry created with the cluster", Default: v1alpha1.DefaultRegistryName},
		{Key: "spec.cluster.registry.hostPort", Flag: "registry-port",
			Description: "Host port of the cluster registry", Default: v1alpha1.DefaultRegistryHostPort},
		{Key: "spec.cluster.hostsFile", Flag: "hosts-file",
			Description: "Hosts file receiving the ingress names", Default: v1alpha1.DefaultHostsFile},

		{Key: "spec.addons.ingress.state", Flag: "ingress",
			Description: "ingress-nginx (Enabled, Disabled)", Default: string(v1alpha1.AddonEnabled)},
		{Key: "spec.addons.dashboard.state", Flag: "dashboard",
			Description: "Kubernetes dashboard (Enabled, Disabled)", Default: string(v1alpha1.AddonEnabled)},
		{Key: "spec.addons.argocd.state", Flag: "argocd",
			Description: "Argo CD (Enabled, Disabled)", Default: string(v1alpha1.AddonEnabled)},
		{Key: "spec.addons.monitoring.state", Flag: "monitoring",
			Description: "kube-prometheus-stack (Enabled, Disabled)", Default: string(v1alpha1.AddonEnabled)},

		{Key: "spec.app.namespace", Flag: "namespace",
			Description: "Namespace of the sample application", Default: v1alpha1.DefaultAppNamespace},
		{Key: "spec.app.image", Flag: "image",
			Description: "Image repository of the sample application", Default: v1alpha1.DefaultImage},
		{Key: "spec.app.tag", Flag: "tag",
			Description: "Image tag of the sample application", Default: v1alpha1.DefaultTag},
		{Key: "spec.app.buildContext", Flag: "build-context",
			Description: "Docker build context directory", Default: v1alpha1.DefaultBuildContext},
		{Key: "spec.app.dockerfile", Flag: "dockerfile",
			Description: "Dockerfile path relative to the build context", Default: v1alpha1.DefaultDockerfile},
		{Key: "spec.app.platform", Flag: "platform",
			Description: "Target platform of the image build", Default: v1alpha1.DefaultPlatform},
		{Key: "spec.app.loadStrategy", Flag: "load-strategy",
			Description: "How the image reaches the nodes (Registry, Import)", Default: string(v1alpha1.LoadStrategyRegistry)},
		{Key: "spec.app.manifestsDir", Flag: "manifests-dir",
			Description: "Directory overriding the embedded manifests", Default: ""},
		{Key: "spec.app.seedFile", Flag: "seed-file",
			Description: "JSON file with the albums loaded into Redis", Default: ""},

		{Key: "spec.gitops.repoURL", Flag: "git-repo-url", EnvVars: []string{"GIT_REPO_URL"},
			Description: "Git repository Argo CD syncs the application from", Default: ""},
		{Key: "spec.gitops.path", Flag: "git-path",
			Description: "Manifests path inside the Git repository", Default: v1alpha1.DefaultGitOpsPath},
		{Key: "spec.gitops.revision", Flag: "git-revision",
			Description: "Git revision tracked by Argo CD", Default: v1alpha1.DefaultGitOpsRevision},

		{Key: "spec.timeouts.install", Flag: "install-timeout",
			Description: "Timeout for a single Helm install", Default: v1alpha1.DefaultInstallTimeout},
		{Key: "spec.timeouts.readiness", Flag: "readiness-timeout",
			Description: "Timeout for a single readiness wait", Default: v1alpha1.DefaultReadinessTimeout},
	}
}

// envPrefixed is the PLAYCTL_ variable for a flag, e.g. PLAYCTL_K3S_IMAGE.
func envPrefixed(flag string) string {
	out := make([]byte, 0, len(envPrefix)+1+len(flag))
	out = append(out, envPrefix...)
	out = append(out, '_')

	for i := range len(flag) {
		c := flag[i]

		switch {
		case c == '-':
			c = '_'
		case c >= 'a' && c <= 'z':
			c -= 'a' - 'A'
		}

		out = append(out, c)
	}

	return string(out)
}

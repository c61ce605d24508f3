package k8s

import (
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

const (
	// clientQPS and clientBurst lift client-go's defaults so discovery during
	// server-side apply is not throttled.
	clientQPS   = 50
	clientBurst = 100
)

// DefaultKubeconfigPath returns ~/.kube/config.
func DefaultKubeconfigPath() string {
	home, _ := os.UserHomeDir()

	return filepath.Join(home, ".kube", "config")
}

// ResolveKubeconfigPath returns path when set, otherwise the first entry of $KUBECONFIG,
// otherwise the default location.
func ResolveKubeconfigPath(path string) string {
	if path != "" {
		return path
	}

	if env := os.Getenv(clientcmd.RecommendedConfigPathEnvVar); env != "" {
		return filepath.SplitList(env)[0]
	}

	return DefaultKubeconfigPath()
}

// BuildRESTConfig loads the kubeconfig at path and selects kubeContext when non-empty.
func BuildRESTConfig(path, kubeContext string) (*rest.Config, error) {
	if path == "" {
		return nil, ErrKubeconfigPathEmpty
	}

	overrides := &clientcmd.ConfigOverrides{CurrentContext: kubeContext}

	config, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		&clientcmd.ClientConfigLoadingRules{ExplicitPath: path},
		overrides,
	).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("load kubeconfig %s: %w", path, err)
	}

	config.QPS = clientQPS
	config.Burst = clientBurst

	return config, nil
}

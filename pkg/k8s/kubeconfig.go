package k8s

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"k8s.io/client-go/tools/clientcmd"
)

const kubeconfigFileMode = 0o600

// K3dEntryNames returns the cluster, context and user names k3d writes for a cluster.
func K3dEntryNames(clusterName string) (string, string, string) {
	name := "k3d-" + clusterName

	return name, name, "admin@" + name
}

// RemoveKubeconfigEntries deletes the named cluster, context and user from the kubeconfig
// and clears current-context when it pointed at the removed context. It reports whether
// the file changed. A missing file is not an error.
func RemoveKubeconfigEntries(path, cluster, kubeContext, user string) (bool, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("read kubeconfig: %w", err)
	}

	config, err := clientcmd.Load(raw)
	if err != nil {
		return false, fmt.Errorf("parse kubeconfig: %w", err)
	}

	_, hasCluster := config.Clusters[cluster]
	_, hasContext := config.Contexts[kubeContext]
	_, hasUser := config.AuthInfos[user]
	isCurrent := config.CurrentContext == kubeContext

	if !hasCluster && !hasContext && !hasUser && !isCurrent {
		return false, nil
	}

	delete(config.Clusters, cluster)
	delete(config.Contexts, kubeContext)
	delete(config.AuthInfos, user)

	if isCurrent {
		config.CurrentContext = ""
	}

	out, err := clientcmd.Write(*config)
	if err != nil {
		return false, fmt.Errorf("serialize kubeconfig: %w", err)
	}

	if err := os.WriteFile(path, out, kubeconfigFileMode); err != nil {
		return false, fmt.Errorf("write kubeconfig: %w", err)
	}

	return true, nil
}

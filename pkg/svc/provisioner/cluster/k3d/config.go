package k3dprovisioner

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/docker/go-connections/nat"
	"github.com/gitops-playground/playctl/pkg/apis/playground/v1alpha1"
	"github.com/k3d-io/k3d/v5/pkg/config/types"
	k3dv1alpha5 "github.com/k3d-io/k3d/v5/pkg/config/v1alpha5"
	"sigs.k8s.io/yaml"
)

const (
	// registryHostIP keeps the registry off external interfaces.
	registryHostIP = "127.0.0.1"

	loadbalancerFilter = "loadbalancer"
	serverFilter       = "server:*"

	configFileMode = 0o600
)

// BuildSimpleConfig renders the k3d configuration for env: node counts, the ingress port
// mappings on the load balancer, Traefik disabled so ingress-nginx owns 80/443, and a
// k3d-managed registry mirrored into every node.
func BuildSimpleConfig(env *v1alpha1.Environment) (*k3dv1alpha5.SimpleConfig, error) {
	cluster := env.Spec.Cluster

	ports, err := portMappings(cluster.HTTPPort, cluster.HTTPSPort)
	if err != nil {
		return nil, err
	}

	config := &k3dv1alpha5.SimpleConfig{
		TypeMeta: types.TypeMeta{
			APIVersion: "k3d.io/v1alpha5",
			Kind:       "Simple",
		},
		ObjectMeta: types.ObjectMeta{Name: cluster.Name},
		Servers:    cluster.Servers,
		Agents:     cluster.Agents,
		Image:      cluster.K3sImage,
		Ports:      ports,
	}

	config.Options.K3sOptions.ExtraArgs = []k3dv1alpha5.K3sArgWithNodeFilters{
		{Arg: "--disable=traefik", NodeFilters: []string{serverFilter}},
	}
	config.Options.K3dOptions.Wait = true
	config.Options.KubeconfigOptions.UpdateDefaultKubeconfig = true
	config.Options.KubeconfigOptions.SwitchCurrentContext = true

	config.Registries = registryConfig(cluster.Registry)

	return config, nil
}

// portMappings maps host ports to the ingress ports on the k3d load balancer.
func portMappings(httpPort, httpsPort int) ([]k3dv1alpha5.PortWithNodeFilters, error) {
	mappings := make([]k3dv1alpha5.PortWithNodeFilters, 0, 2)

	for _, pair := range [][2]int{{httpPort, 80}, {httpsPort, 443}} {
		spec := fmt.Sprintf("%d:%d", pair[0], pair[1])

		if _, err := nat.ParsePortSpec(spec); err != nil {
			return nil, fmt.Errorf("invalid port mapping %s: %w", spec, err)
		}

		mappings = append(mappings, k3dv1alpha5.PortWithNodeFilters{
			Port:        spec,
			NodeFilters: []string{loadbalancerFilter},
		})
	}

	return mappings, nil
}

func registryConfig(spec v1alpha1.RegistrySpec) k3dv1alpha5.SimpleConfigRegistries {
	inCluster := net.JoinHostPort(spec.Name, strconv.Itoa(v1alpha1.RegistryContainerPort))

	return k3dv1alpha5.SimpleConfigRegistries{
		Create: &k3dv1alpha5.SimpleConfigRegistryCreateConfig{
			Name:     spec.Name,
			Host:     registryHostIP,
			HostPort: strconv.Itoa(spec.HostPort),
		},
		Config: renderMirrorConfig(inCluster),
	}
}

// renderMirrorConfig is the containerd registries.yaml that lets nodes pull
// <registry>:5000/... over plain HTTP.
func renderMirrorConfig(host string) string {
	return "mirrors:\n" +
		"  \"" + host + "\":\n" +
		"    endpoint:\n" +
		"      - http://" + host + "\n"
}

// WriteConfig marshals config into dir and returns the file path.
func WriteConfig(config *k3dv1alpha5.SimpleConfig, dir string) (string, error) {
	out, err := yaml.Marshal(config)
	if err != nil {
		return "", fmt.Errorf("marshal k3d config: %w", err)
	}

	path := filepath.Join(dir, "k3d-"+config.Name+".yaml")

	err = os.WriteFile(path, out, configFileMode)
	if err != nil {
		return "", fmt.Errorf("write k3d config: %w", err)
	}

	return path, nil
}

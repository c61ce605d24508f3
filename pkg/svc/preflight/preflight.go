// Package preflight verifies the host can run the playground before anything is created.
package preflight

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"

	"github.com/gitops-playground/playctl/pkg/apis/playground/v1alpha1"
	"github.com/gitops-playground/playctl/pkg/client/docker"
	"github.com/gitops-playground/playctl/pkg/utils/notify"
)

// ErrPortInUse is returned when a host port the cluster binds is already taken.
var ErrPortInUse = errors.New("host port is already in use")

// Result reports what preflight found.
type Result struct {
	DockerAPIVersion string
}

// Docker checks that the daemon answers and reports its API version.
func Docker(ctx context.Context, engine docker.Engine, out io.Writer) (*Result, error) {
	version, err := docker.Ping(ctx, engine)
	if err != nil {
		return nil, err
	}

	notify.Activityf(out, "docker daemon reachable (API %s)", version)

	return &Result{DockerAPIVersion: version}, nil
}

// HostPorts returns the host ports a new cluster binds: HTTP, HTTPS and the registry.
func HostPorts(env *v1alpha1.Environment) []int {
	cluster := env.Spec.Cluster

	return []int{cluster.HTTPPort, cluster.HTTPSPort, cluster.Registry.HostPort}
}

// PortsFree checks that every port can be bound on all interfaces. Only meaningful before
// the cluster exists, since a running cluster holds them.
func PortsFree(ports ...int) error {
	var errs []error

	for _, port := range ports {
		listener, err := net.Listen("tcp", net.JoinHostPort("", strconv.Itoa(port)))
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %d: %w", ErrPortInUse, port, err))

			continue
		}

		_ = listener.Close()
	}

	return errors.Join(errs...)
}

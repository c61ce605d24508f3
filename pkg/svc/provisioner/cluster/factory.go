package clusterprovisioner

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gitops-playground/playctl/pkg/apis/playground/v1alpha1"
	k3dprovisioner "github.com/gitops-playground/playctl/pkg/svc/provisioner/cluster/k3d"
)

// ErrEnvironmentRequired is returned when the factory is given no Environment.
var ErrEnvironmentRequired = errors.New("environment is required")

// Factory creates cluster provisioners for an Environment.
type Factory interface {
	Create(ctx context.Context, env *v1alpha1.Environment) (ClusterProvisioner, error)
}

// DefaultFactory builds k3d provisioners whose k3d output goes to Out.
type DefaultFactory struct {
	Out io.Writer
}

// Create renders the k3d SimpleConfig for env and wraps it in a provisioner.
func (f DefaultFactory) Create(
	_ context.Context,
	env *v1alpha1.Environment,
) (ClusterProvisioner, error) {
	if env == nil {
		return nil, ErrEnvironmentRequired
	}

	simpleCfg, err := k3dprovisioner.BuildSimpleConfig(env)
	if err != nil {
		return nil, fmt.Errorf("build k3d config: %w", err)
	}

	return k3dprovisioner.NewProvisioner(simpleCfg, f.Out), nil
}

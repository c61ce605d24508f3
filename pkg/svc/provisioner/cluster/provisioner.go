package clusterprovisioner

import (
	"context"
	"errors"
)

// ErrClusterNotFound is returned when an operation targets a cluster that does not exist.
var ErrClusterNotFound = errors.New("cluster not found")

// ClusterProvisioner defines methods for managing the playground cluster.
type ClusterProvisioner interface {
	// Create creates the cluster. If name is non-empty, target that name; otherwise use config defaults.
	Create(ctx context.Context, name string) error

	// Delete deletes the cluster and its registry.
	Delete(ctx context.Context, name string) error

	// Start starts a stopped cluster.
	Start(ctx context.Context, name string) error

	// Stop stops a running cluster.
	Stop(ctx context.Context, name string) error

	// List lists all clusters known to the provisioner.
	List(ctx context.Context) ([]string, error)

	// Exists checks if the cluster exists.
	Exists(ctx context.Context, name string) (bool, error)

	// ImportImages copies local images into every node of the cluster.
	ImportImages(ctx context.Context, name string, images ...string) error
}

// DeleteIfExists deletes the cluster when it exists and returns ErrClusterNotFound otherwise.
func DeleteIfExists(ctx context.Context, provisioner ClusterProvisioner, name string) error {
	exists, err := provisioner.Exists(ctx, name)
	if err != nil {
		return err
	}

	if !exists {
		return ErrClusterNotFound
	}

	return provisioner.Delete(ctx, name)
}

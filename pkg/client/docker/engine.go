// Package docker wraps the Docker Engine API calls used to build and manage the
// application image.
package docker

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/build"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
)

var (
	// ErrEngineNil is returned when no engine client was supplied.
	ErrEngineNil = errors.New("docker engine client cannot be nil")

	// ErrDaemonUnavailable is returned when the Docker daemon does not answer a ping.
	ErrDaemonUnavailable = errors.New("docker daemon is not reachable")

	// ErrUnexpectedDockerClientType is returned when the Docker client has an unexpected concrete type.
	ErrUnexpectedDockerClientType = errors.New("unexpected docker client type")
)

// Engine is the subset of the Docker API client used by playctl.
type Engine interface {
	Ping(ctx context.Context) (types.Ping, error)
	ImageBuild(ctx context.Context, buildContext io.Reader, options build.ImageBuildOptions) (build.ImageBuildResponse, error)
	ImagePush(ctx context.Context, image string, options image.PushOptions) (io.ReadCloser, error)
	ImageList(ctx context.Context, options image.ListOptions) ([]image.Summary, error)
	ImageRemove(ctx context.Context, image string, options image.RemoveOptions) ([]image.DeleteResponse, error)
	Close() error
}

var _ Engine = (*client.Client)(nil)

// EngineFactory opens an Engine. Callers close it when done.
type EngineFactory func() (Engine, error)

// NewEngine is the EngineFactory backed by the environment's Docker settings.
//
//nolint:ireturn // factory returns the interface
func NewEngine() (Engine, error) {
	return GetConcreteDockerClient()
}

// GetDockerClient creates a Docker client using environment configuration.
func GetDockerClient() (client.APIClient, error) {
	dockerClient, err := client.NewClientWithOpts(
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	return dockerClient, nil
}

// GetConcreteDockerClient creates a Docker client and returns the concrete *client.Client type.
func GetConcreteDockerClient() (*client.Client, error) {
	dockerClient, err := GetDockerClient()
	if err != nil {
		return nil, err
	}

	clientPtr, ok := dockerClient.(*client.Client)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnexpectedDockerClientType, dockerClient)
	}

	return clientPtr, nil
}

// Ping checks that the daemon answers and returns its API version.
func Ping(ctx context.Context, engine Engine) (string, error) {
	if engine == nil {
		return "", ErrEngineNil
	}

	ping, err := engine.Ping(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDaemonUnavailable, err)
	}

	return ping.APIVersion, nil
}

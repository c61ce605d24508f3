// Package registry queries the local OCI registry that backs the cluster.
package registry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gitops-playground/playctl/pkg/client/netretry"
	"github.com/gitops-playground/playctl/pkg/k8s/readiness"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	"github.com/google/go-containerregistry/pkg/v1/remote/transport"
)

var (
	// ErrRegistryUnreachable is returned when the registry cannot be reached.
	ErrRegistryUnreachable = errors.New("registry is unreachable")
	// ErrRegistryAuthRequired is returned when the registry asks for credentials.
	ErrRegistryAuthRequired = errors.New("registry requires authentication")
	// ErrImageNotFound is returned when a tag does not exist in the registry.
	ErrImageNotFound = errors.New("image not found in registry")
	// ErrEndpointRequired is returned when no registry host was given.
	ErrEndpointRequired = errors.New("registry endpoint is required")
)

const (
	headAttempts = 3
	headBaseWait = time.Second
	headMaxWait  = 5 * time.Second
)

// Digest returns the manifest digest of ref, for example localhost:5050/albums:latest.
// Plain HTTP is used because the playground registry never serves TLS.
func Digest(ctx context.Context, ref string) (string, error) {
	parsed, err := name.ParseReference(ref, name.Insecure, name.WeakValidation)
	if err != nil {
		return "", fmt.Errorf("parse reference %s: %w", ref, err)
	}

	var digest string

	err = netretry.Do(ctx, netretry.Policy{
		Attempts: headAttempts,
		BaseWait: headBaseWait,
		MaxWait:  headMaxWait,
	}, func(ctx context.Context) error {
		desc, headErr := remote.Head(parsed, remote.WithContext(ctx))
		if headErr != nil {
			return headErr
		}

		digest = desc.Digest.String()

		return nil
	})
	if err != nil {
		if isNotFoundError(err) {
			return "", fmt.Errorf("%w: %s", ErrImageNotFound, ref)
		}

		return "", classifyRegistryError(err)
	}

	return digest, nil
}

// ListTags returns the tags of repository, for example localhost:5050/albums.
// A repository that does not exist yet has no tags.
func ListTags(ctx context.Context, repository string) ([]string, error) {
	repo, err := name.NewRepository(repository, name.Insecure, name.WeakValidation)
	if err != nil {
		return nil, fmt.Errorf("parse repository %s: %w", repository, err)
	}

	tags, err := remote.List(repo, remote.WithContext(ctx))
	if err != nil {
		if isNotFoundError(err) {
			return nil, nil
		}

		return nil, classifyRegistryError(err)
	}

	return tags, nil
}

// Catalog lists the repositories stored in the registry at endpoint (host:port).
func Catalog(ctx context.Context, endpoint string) ([]string, error) {
	if endpoint == "" {
		return nil, ErrEndpointRequired
	}

	reg, err := name.NewRegistry(endpoint, name.Insecure)
	if err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", endpoint, err)
	}

	repos, err := remote.Catalog(ctx, reg)
	if err != nil {
		return nil, classifyRegistryError(err)
	}

	return repos, nil
}

// WaitForReady polls the registry catalog until it answers or timeout elapses.
func WaitForReady(ctx context.Context, endpoint string, timeout time.Duration) error {
	var lastErr error

	err := readiness.PollForReadiness(ctx, timeout, func(ctx context.Context) (bool, error) {
		_, lastErr = Catalog(ctx, endpoint)

		return lastErr == nil, nil
	})
	if err != nil {
		return fmt.Errorf("registry %s not ready: %w", endpoint, errors.Join(err, lastErr))
	}

	return nil
}

func isNotFoundError(err error) bool {
	var transportErr *transport.Error
	if errors.As(err, &transportErr) && transportErr.StatusCode == http.StatusNotFound {
		return true
	}

	lower := strings.ToLower(err.Error())

	return strings.Contains(lower, "manifest unknown") ||
		strings.Contains(lower, "name_unknown") ||
		strings.Contains(lower, "name unknown")
}

func classifyRegistryError(err error) error {
	var transportErr *transport.Error
	if errors.As(err, &transportErr) && transportErr.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %w", ErrRegistryAuthRequired, err)
	}

	lower := strings.ToLower(err.Error())

	if strings.Contains(lower, "connection refused") ||
		strings.Contains(lower, "no such host") ||
		strings.Contains(lower, "dial tcp") {
		return fmt.Errorf("%w: %w", ErrRegistryUnreachable, err)
	}

	return fmt.Errorf("registry request failed: %w", err)
}

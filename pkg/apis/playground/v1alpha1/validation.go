package v1alpha1

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation"
)

const maxPort = 65535

// Validate checks the Environment and returns every problem found, joined.
func (e *Environment) Validate() error {
	var errs []error

	cluster := e.Spec.Cluster

	if msgs := validation.IsDNS1123Label(cluster.Name); len(msgs) > 0 {
		errs = append(errs, fmt.Errorf("%w: %q: %s", ErrClusterNameInvalid, cluster.Name, strings.Join(msgs, "; ")))
	}

	if msgs := validation.IsDNS1123Subdomain(cluster.Domain); len(msgs) > 0 {
		errs = append(errs, fmt.Errorf("%w: %q: %s", ErrInvalidDomain, cluster.Domain, strings.Join(msgs, "; ")))
	}

	ports := map[string]int{
		"httpPort":          cluster.HTTPPort,
		"httpsPort":         cluster.HTTPSPort,
		"registry.hostPort": cluster.Registry.HostPort,
	}

	seen := map[int]string{}

	for _, field := range []string{"httpPort", "httpsPort", "registry.hostPort"} {
		port := ports[field]
		if port < 1 || port > maxPort {
			errs = append(errs, fmt.Errorf("%w: cluster.%s=%d", ErrInvalidPort, field, port))

			continue
		}

		if other, dup := seen[port]; dup {
			errs = append(errs, fmt.Errorf("%w: cluster.%s and cluster.%s are both %d", ErrPortConflict, other, field, port))
		}

		seen[port] = field
	}

	if cluster.Servers < 1 {
		errs = append(errs, fmt.Errorf("%w: servers=%d (need at least 1)", ErrInvalidNodeCount, cluster.Servers))
	}

	if cluster.Agents < 0 {
		errs = append(errs, fmt.Errorf("%w: agents=%d", ErrInvalidNodeCount, cluster.Agents))
	}

	if msgs := validation.IsDNS1123Label(e.Spec.App.Namespace); len(msgs) > 0 {
		errs = append(errs, fmt.Errorf("%w: %q: %s", ErrInvalidNamespace, e.Spec.App.Namespace, strings.Join(msgs, "; ")))
	}

	if err := e.Spec.App.LoadStrategy.Set(string(e.Spec.App.LoadStrategy)); err != nil {
		errs = append(errs, err)
	}

	for name, addon := range e.Spec.Addons.byName() {
		if err := addon.State.Set(string(addon.State)); err != nil {
			errs = append(errs, fmt.Errorf("addons.%s: %w", name, err))
		}
	}

	if repo := e.Spec.GitOps.RepoURL; repo != "" {
		if err := validateRepoURL(repo); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func validateRepoURL(raw string) error {
	// scp-like git URLs (git@host:org/repo.git) are accepted as-is.
	if strings.HasPrefix(raw, "git@") && strings.Contains(raw, ":") {
		return nil
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidRepoURL, raw, err)
	}

	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%w: %q: scheme and host are required", ErrInvalidRepoURL, raw)
	}

	return nil
}

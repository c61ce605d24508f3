// Package helmutil holds the chart lifecycle shared by the Helm-based add-on installers.
package helmutil

import (
	"context"
	"fmt"
	"time"

	"github.com/gitops-playground/playctl/pkg/client/helm"
	"github.com/gitops-playground/playctl/pkg/k8s/readiness"
)

// Base provides standard Helm chart lifecycle management. It implements the
// installer.Installer interface (Name, Install, Uninstall, Checks) by managing a
// single chart, pulled either from a named Helm repository or from an OCI reference.
//
// Embed *Base in installer types that follow the pattern of adding a repository,
// installing or upgrading a chart, uninstalling a release, and waiting on a fixed
// set of workloads.
type Base struct {
	name    string
	client  helm.Interface
	timeout time.Duration
	repo    *helm.RepositoryEntry
	spec    *helm.ChartSpec
	checks  []readiness.Check
}

// NewBase creates a new Base. repo may be nil for OCI charts.
func NewBase(
	name string,
	client helm.Interface,
	timeout time.Duration,
	repo *helm.RepositoryEntry,
	spec *helm.ChartSpec,
	checks ...readiness.Check,
) *Base {
	return &Base{
		name:    name,
		client:  client,
		timeout: timeout,
		repo:    repo,
		spec:    spec,
		checks:  checks,
	}
}

// Name returns the component name.
func (b *Base) Name() string {
	return b.name
}

// Release returns the Helm release name and namespace.
func (b *Base) Release() (string, string) {
	return b.spec.ReleaseName, b.spec.Namespace
}

// Checks returns the workloads that must be ready after Install.
func (b *Base) Checks() []readiness.Check {
	return b.checks
}

// Spec returns the chart spec sent to Helm.
func (b *Base) Spec() *helm.ChartSpec {
	return b.spec
}

// Install adds the Helm repository and installs or upgrades the chart.
// It wraps the context with a deadline that includes [helm.ContextTimeoutBuffer]
// beyond the chart timeout so that Helm's status watcher can report why a wait
// failed before the Go context expires.
func (b *Base) Install(ctx context.Context) error {
	if b.repo != nil {
		err := b.client.AddRepository(ctx, b.repo, b.timeout)
		if err != nil {
			return fmt.Errorf("failed to add %s repository: %w", b.repo.Name, err)
		}
	}

	installCtx, cancel := context.WithTimeout(ctx, b.timeout+helm.ContextTimeoutBuffer)
	defer cancel()

	err := helm.InstallChartWithRetry(installCtx, b.client, b.spec, b.name)
	if err != nil {
		return fmt.Errorf("failed to install %s: %w", b.name, err)
	}

	return nil
}

// Uninstall removes the Helm release.
func (b *Base) Uninstall(ctx context.Context) error {
	err := b.client.UninstallRelease(ctx, b.spec.ReleaseName, b.spec.Namespace)
	if err != nil {
		return fmt.Errorf("failed to uninstall %s release: %w", b.name, err)
	}

	return nil
}

// ChartVersion returns override when set and fallback otherwise.
func ChartVersion(override, fallback string) string {
	if override != "" {
		return override
	}

	return fallback
}

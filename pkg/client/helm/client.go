// Package helm installs, upgrades and removes Helm releases through the Helm v4 SDK.
package helm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	helmaction "helm.sh/helm/v4/pkg/action"
	helmloader "helm.sh/helm/v4/pkg/chart/loader"
	chartv2 "helm.sh/helm/v4/pkg/chart/v2"
	helmcli "helm.sh/helm/v4/pkg/cli"
	helmkube "helm.sh/helm/v4/pkg/kube"
	helmregistry "helm.sh/helm/v4/pkg/registry"
	releasev1 "helm.sh/helm/v4/pkg/release/v1"
	"helm.sh/helm/v4/pkg/storage/driver"
)

// DefaultTimeout is used when a ChartSpec has no timeout.
const DefaultTimeout = 5 * time.Minute

var (
	// ErrReleaseNotFound is returned when a release does not exist.
	ErrReleaseNotFound = errors.New("helm: release not found")

	errReleaseNameRequired = errors.New("helm: release name is required")
	errChartSpecRequired   = errors.New("helm: chart spec is required")
	errUnexpectedChart     = errors.New("helm: unexpected chart type")
	errUnexpectedRelease   = errors.New("helm: unexpected release type")
)

// ChartSpec describes one release.
type ChartSpec struct {
	ReleaseName string
	// ChartName is a chart name inside RepoURL, or a full oci:// reference when RepoURL is empty.
	ChartName string
	RepoURL   string
	Version   string
	Namespace string

	CreateNamespace bool
	Wait            bool
	WaitForJobs     bool
	UpgradeCRDs     bool
	Timeout         time.Duration

	// ValuesYaml is merged first, SetValues on top of it.
	ValuesYaml string
	SetValues  map[string]string
}

// RepositoryEntry is a classic HTTP chart repository.
type RepositoryEntry struct {
	Name string
	URL  string
}

// ReleaseInfo summarises a release.
type ReleaseInfo struct {
	Name       string
	Namespace  string
	Revision   int
	Status     string
	Chart      string
	Version    string
	AppVersion string
	Updated    time.Time
}

// Interface is the subset of Helm used by the add-on installers.
type Interface interface {
	InstallOrUpgradeChart(ctx context.Context, spec *ChartSpec) (*ReleaseInfo, error)
	UninstallRelease(ctx context.Context, releaseName, namespace string) error
	AddRepository(ctx context.Context, entry *RepositoryEntry, timeout time.Duration) error
	GetRelease(ctx context.Context, releaseName, namespace string) (*ReleaseInfo, error)
}

// Factory creates a client bound to a kubeconfig and context.
type Factory interface {
	ForContext(kubeconfig, kubeContext string) (Interface, error)
}

// DefaultFactory creates real Helm clients.
type DefaultFactory struct{}

// ForContext implements Factory.
func (DefaultFactory) ForContext(kubeconfig, kubeContext string) (Interface, error) {
	return NewClient(kubeconfig, kubeContext)
}

// Client talks to the cluster through Helm's action package.
type Client struct {
	kubeconfig  string
	kubeContext string
	registry    *helmregistry.Client
}

var _ Interface = (*Client)(nil)

// NewClient returns a client for the given kubeconfig and context. Empty values fall back
// to Helm's usual environment handling.
func NewClient(kubeconfig, kubeContext string) (*Client, error) {
	registryClient, err := helmregistry.NewClient(
		helmregistry.ClientOptCredentialsFile(helmcli.New().RegistryConfig),
	)
	if err != nil {
		return nil, fmt.Errorf("create helm registry client: %w", err)
	}

	return &Client{kubeconfig: kubeconfig, kubeContext: kubeContext, registry: registryClient}, nil
}

// settingsFor builds fresh settings per call so concurrent installs into different
// namespaces never share mutable state.
func (c *Client) settingsFor(namespace string) *helmcli.EnvSettings {
	settings := helmcli.New()

	if c.kubeconfig != "" {
		settings.KubeConfig = c.kubeconfig
	}

	if c.kubeContext != "" {
		settings.KubeContext = c.kubeContext
	}

	if namespace != "" {
		settings.SetNamespace(namespace)
	}

	return settings
}

func (c *Client) configFor(settings *helmcli.EnvSettings) (*helmaction.Configuration, error) {
	config := new(helmaction.Configuration)

	err := config.Init(settings.RESTClientGetter(), settings.Namespace(), os.Getenv("HELM_DRIVER"))
	if err != nil {
		return nil, fmt.Errorf("initialise helm for namespace %s: %w", settings.Namespace(), err)
	}

	config.RegistryClient = c.registry

	return config, nil
}

// InstallOrUpgradeChart upgrades the release when it has history and installs it otherwise.
func (c *Client) InstallOrUpgradeChart(ctx context.Context, spec *ChartSpec) (*ReleaseInfo, error) {
	if spec == nil {
		return nil, errChartSpecRequired
	}

	if spec.ReleaseName == "" {
		return nil, errReleaseNameRequired
	}

	settings := c.settingsFor(spec.Namespace)

	config, err := c.configFor(settings)
	if err != nil {
		return nil, err
	}

	history := helmaction.NewHistory(config)
	history.Max = 1

	if releases, histErr := history.Run(spec.ReleaseName); histErr == nil && len(releases) > 0 {
		return c.upgrade(ctx, settings, config, spec)
	}

	return c.install(ctx, settings, config, spec)
}

func (c *Client) install(
	ctx context.Context,
	settings *helmcli.EnvSettings,
	config *helmaction.Configuration,
	spec *ChartSpec,
) (*ReleaseInfo, error) {
	install := helmaction.NewInstall(config)
	install.ReleaseName = spec.ReleaseName
	install.Namespace = spec.Namespace
	install.CreateNamespace = spec.CreateNamespace
	install.WaitForJobs = spec.WaitForJobs
	install.Timeout = timeoutOf(spec)
	install.RepoURL = spec.RepoURL
	install.Version = spec.Version

	if spec.Wait {
		install.WaitStrategy = helmkube.StatusWatcherStrategy
	}

	chartPath, err := install.LocateChart(spec.ChartName, settings)
	if err != nil {
		return nil, fmt.Errorf("locate chart %s: %w", spec.ChartName, err)
	}

	chart, vals, err := loadChart(chartPath, spec)
	if err != nil {
		return nil, err
	}

	rel, err := install.RunWithContext(ctx, chart, vals)
	if err != nil {
		return nil, fmt.Errorf("install release %s: %w", spec.ReleaseName, err)
	}

	return releaseInfo(rel)
}

func (c *Client) upgrade(
	ctx context.Context,
	settings *helmcli.EnvSettings,
	config *helmaction.Configuration,
	spec *ChartSpec,
) (*ReleaseInfo, error) {
	upgrade := helmaction.NewUpgrade(config)
	upgrade.Namespace = spec.Namespace
	upgrade.WaitForJobs = spec.WaitForJobs
	upgrade.Timeout = timeoutOf(spec)
	upgrade.RepoURL = spec.RepoURL
	upgrade.Version = spec.Version
	upgrade.SkipCRDs = !spec.UpgradeCRDs

	if spec.Wait {
		upgrade.WaitStrategy = helmkube.StatusWatcherStrategy
	}

	chartPath, err := upgrade.LocateChart(spec.ChartName, settings)
	if err != nil {
		return nil, fmt.Errorf("locate chart %s: %w", spec.ChartName, err)
	}

	chart, vals, err := loadChart(chartPath, spec)
	if err != nil {
		return nil, err
	}

	rel, err := upgrade.RunWithContext(ctx, spec.ReleaseName, chart, vals)
	if err != nil {
		return nil, fmt.Errorf("upgrade release %s: %w", spec.ReleaseName, err)
	}

	return releaseInfo(rel)
}

// UninstallRelease removes a release. A release that does not exist is not an error.
func (c *Client) UninstallRelease(ctx context.Context, releaseName, namespace string) error {
	if releaseName == "" {
		return errReleaseNameRequired
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("uninstall %s: %w", releaseName, err)
	}

	config, err := c.configFor(c.settingsFor(namespace))
	if err != nil {
		return err
	}

	uninstall := helmaction.NewUninstall(config)
	uninstall.IgnoreNotFound = true

	if _, err := uninstall.Run(releaseName); err != nil {
		return fmt.Errorf("uninstall release %s: %w", releaseName, err)
	}

	return nil
}

// GetRelease returns the latest revision of a release or ErrReleaseNotFound.
func (c *Client) GetRelease(ctx context.Context, releaseName, namespace string) (*ReleaseInfo, error) {
	if releaseName == "" {
		return nil, errReleaseNameRequired
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("get release %s: %w", releaseName, err)
	}

	config, err := c.configFor(c.settingsFor(namespace))
	if err != nil {
		return nil, err
	}

	rel, err := helmaction.NewStatus(config).Run(releaseName)
	if errors.Is(err, driver.ErrReleaseNotFound) {
		return nil, fmt.Errorf("%w: %s/%s", ErrReleaseNotFound, namespace, releaseName)
	}

	if err != nil {
		return nil, fmt.Errorf("get release %s: %w", releaseName, err)
	}

	return releaseInfo(rel)
}

func loadChart(path string, spec *ChartSpec) (*chartv2.Chart, map[string]any, error) {
	loaded, err := helmloader.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load chart %s: %w", path, err)
	}

	chart, ok := loaded.(*chartv2.Chart)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %T", errUnexpectedChart, loaded)
	}

	vals, err := MergeValues(spec)
	if err != nil {
		return nil, nil, err
	}

	return chart, vals, nil
}

func timeoutOf(spec *ChartSpec) time.Duration {
	if spec.Timeout > 0 {
		return spec.Timeout
	}

	return DefaultTimeout
}

// releaseInfo accepts whatever the action returned and extracts the v1 release from it.
func releaseInfo(value any) (*ReleaseInfo, error) {
	rel, ok := value.(*releasev1.Release)
	if !ok || rel == nil {
		return nil, fmt.Errorf("%w: %T", errUnexpectedRelease, value)
	}

	info := &ReleaseInfo{
		Name:      rel.Name,
		Namespace: rel.Namespace,
		Revision:  rel.Version,
	}

	if rel.Info != nil {
		info.Status = rel.Info.Status.String()
		info.Updated = rel.Info.LastDeployed
	}

	if rel.Chart != nil && rel.Chart.Metadata != nil {
		info.Chart = rel.Chart.Metadata.Name
		info.Version = rel.Chart.Metadata.Version
		info.AppVersion = rel.Chart.Metadata.AppVersion
	}

	return info, nil
}

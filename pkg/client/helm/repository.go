package helm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gitops-playground/playctl/pkg/client/netretry"
	helmgetter "helm.sh/helm/v4/pkg/getter"
	repov1 "helm.sh/helm/v4/pkg/repo/v1"
)

const (
	repoDirMode  = 0o750
	repoFileMode = 0o640

	repoIndexAttempts = 3
	repoIndexBaseWait = 2 * time.Second
	repoIndexMaxWait  = 15 * time.Second
)

var (
	errRepositoryEntryRequired = errors.New("helm: repository name and URL are required")
	errRepositoryPathsUnset    = errors.New("helm: repository config or cache path is not set")
)

// AddRepository downloads the repository index and records the repository in Helm's
// repositories file, retrying transient download failures until timeout.
func (c *Client) AddRepository(ctx context.Context, entry *RepositoryEntry, timeout time.Duration) error {
	if entry == nil || entry.Name == "" || entry.URL == "" {
		return errRepositoryEntryRequired
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("add repository %s: %w", entry.Name, err)
	}

	settings := c.settingsFor("")

	if settings.RepositoryConfig == "" || settings.RepositoryCache == "" {
		return errRepositoryPathsUnset
	}

	for _, dir := range []string{filepath.Dir(settings.RepositoryConfig), settings.RepositoryCache} {
		if err := os.MkdirAll(dir, repoDirMode); err != nil {
			return fmt.Errorf("create helm directory %s: %w", dir, err)
		}
	}

	repoEntry := &repov1.Entry{Name: entry.Name, URL: entry.URL}

	chartRepo, err := repov1.NewChartRepository(repoEntry, helmgetter.All(settings))
	if err != nil {
		return fmt.Errorf("create chart repository %s: %w", entry.Name, err)
	}

	chartRepo.CachePath = settings.RepositoryCache

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	indexCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err = netretry.Do(indexCtx, netretry.Policy{
		Attempts: repoIndexAttempts,
		BaseWait: repoIndexBaseWait,
		MaxWait:  repoIndexMaxWait,
	}, func(context.Context) error {
		_, downloadErr := chartRepo.DownloadIndexFile()

		return downloadErr //nolint:wrapcheck // wrapped below
	})
	if err != nil {
		return fmt.Errorf("download index of %s: %w", entry.URL, err)
	}

	repoFile, err := repov1.LoadFile(settings.RepositoryConfig)
	if err != nil {
		repoFile = repov1.NewFile()
	}

	repoFile.Update(repoEntry)

	if err := repoFile.WriteFile(settings.RepositoryConfig, repoFileMode); err != nil {
		return fmt.Errorf("write %s: %w", settings.RepositoryConfig, err)
	}

	return nil
}

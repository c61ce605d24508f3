package helm

import (
	"context"
	"fmt"
	"time"

	"github.com/gitops-playground/playctl/pkg/client/netretry"
)

const (
	// ContextTimeoutBuffer keeps the Go context alive past Helm's own timeout so Helm
	// reports why a wait failed instead of being cut off.
	ContextTimeoutBuffer = 5 * time.Minute

	chartInstallAttempts = 5
	chartInstallBaseWait = 3 * time.Second
	chartInstallMaxWait  = 30 * time.Second
)

// InstallChartWithRetry installs or upgrades a chart, retrying rate limits, 5xx responses
// and dropped connections.
func InstallChartWithRetry(ctx context.Context, client Interface, spec *ChartSpec, component string) error {
	err := netretry.Do(ctx, netretry.Policy{
		Attempts: chartInstallAttempts,
		BaseWait: chartInstallBaseWait,
		MaxWait:  chartInstallMaxWait,
	}, func(ctx context.Context) error {
		_, installErr := client.InstallOrUpgradeChart(ctx, spec)

		return installErr
	})
	if err != nil {
		return fmt.Errorf("install %s chart: %w", component, err)
	}

	return nil
}

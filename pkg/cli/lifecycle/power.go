package lifecycle

import (
	"context"
	"fmt"

	"github.com/gitops-playground/playctl/pkg/k8s/readiness"
	"github.com/gitops-playground/playctl/pkg/svc/installer"
	"github.com/gitops-playground/playctl/pkg/utils/notify"
)

const apiServerStableStreak = 3

// StartInfra starts a stopped cluster and waits for its nodes.
func (p *Playground) StartInfra(ctx context.Context) error {
	tmr := p.begin("▶️", "Start infrastructure")
	cluster := p.Env.Spec.Cluster

	provisioner, err := p.requireCluster(ctx)
	if err != nil {
		return err
	}

	notify.Activityf(p.out(), "starting cluster %s", cluster.Name)

	err = provisioner.Start(ctx, cluster.Name)
	if err != nil {
		return fmt.Errorf("start cluster %s: %w", cluster.Name, err)
	}

	clients, err := p.clients()
	if err != nil {
		return err
	}

	// A restarted k3s server may answer once and then drop connections while its
	// datastore settles.
	err = readiness.WaitForAPIServerStable(ctx, clients.Clientset, p.readinessTimeout(), apiServerStableStreak)
	if err != nil {
		return fmt.Errorf("api server: %w", err)
	}

	err = readiness.WaitForNodesReady(ctx, clients.Clientset, cluster.Servers+cluster.Agents, p.readinessTimeout())
	if err != nil {
		return fmt.Errorf("nodes: %w", err)
	}

	notify.StageDonef(p.out(), tmr, "cluster %s started", cluster.Name)

	return nil
}

// StopInfra stops the cluster containers without deleting anything.
func (p *Playground) StopInfra(ctx context.Context) error {
	tmr := p.begin("⏸️", "Stop infrastructure")
	cluster := p.Env.Spec.Cluster

	provisioner, err := p.requireCluster(ctx)
	if err != nil {
		return err
	}

	notify.Activityf(p.out(), "stopping cluster %s", cluster.Name)

	err = provisioner.Stop(ctx, cluster.Name)
	if err != nil {
		return fmt.Errorf("stop cluster %s: %w", cluster.Name, err)
	}

	notify.StageDonef(p.out(), tmr, "cluster %s stopped", cluster.Name)

	return nil
}

// UninstallAddons removes the Helm releases of the enabled add-ons and keeps the cluster.
func (p *Playground) UninstallAddons(ctx context.Context) error {
	tmr := p.begin("🧹", "Uninstall add-ons")
	cluster := p.Env.Spec.Cluster

	_, err := p.requireCluster(ctx)
	if err != nil {
		return err
	}

	helmClient, err := p.Services.Helm.ForContext(kubeconfigPath(p.Env), cluster.KubeContext())
	if err != nil {
		return fmt.Errorf("create helm client: %w", err)
	}

	installers := installer.NewFactory(helmClient).Enabled(p.Env)
	if len(installers) == 0 {
		notify.StageDonef(p.out(), tmr, "no add-ons enabled")

		return nil
	}

	err = installer.Uninstall(ctx, installers, p.out())
	if err != nil {
		return fmt.Errorf("uninstall add-ons: %w", err)
	}

	notify.StageDonef(p.out(), tmr, "%d add-ons uninstalled", len(installers))

	return nil
}

package lifecycle

import (
	"context"
	"fmt"

	"github.com/gitops-playground/playctl/pkg/k8s/readiness"
	"github.com/gitops-playground/playctl/pkg/svc/cleanup"
	"github.com/gitops-playground/playctl/pkg/svc/installer"
	"github.com/gitops-playground/playctl/pkg/svc/preflight"
	"github.com/gitops-playground/playctl/pkg/utils/notify"
)

// InfraOptions tune SetupInfra.
type InfraOptions struct {
	// Parallel installs the add-ons after ingress-nginx concurrently.
	Parallel bool
	// Strict fails on add-on readiness timeouts instead of warning.
	Strict bool
}

// Preflight checks that the Docker daemon answers.
func (p *Playground) Preflight(ctx context.Context) (*preflight.Result, error) {
	tmr := p.begin("🔎", "Preflight")

	engine, err := p.Services.Docker()
	if err != nil {
		return nil, fmt.Errorf("open docker client: %w", err)
	}
	defer func() { _ = engine.Close() }()

	result, err := preflight.Docker(ctx, engine, p.out())
	if err != nil {
		return nil, fmt.Errorf("preflight: %w", err)
	}

	notify.StageDonef(p.out(), tmr, "preflight passed")

	return result, nil
}

// SetupInfra creates the cluster when it does not exist yet and installs the enabled
// add-ons. Running it again upgrades the releases in place.
func (p *Playground) SetupInfra(ctx context.Context, opts InfraOptions) error {
	tmr := p.begin("🚀", "Set up infrastructure")
	cluster := p.Env.Spec.Cluster

	provisioner, err := p.provisioner(ctx)
	if err != nil {
		return err
	}

	exists, err := provisioner.Exists(ctx, cluster.Name)
	if err != nil {
		return fmt.Errorf("look up cluster %s: %w", cluster.Name, err)
	}

	if exists {
		notify.Infof(p.out(), "cluster %s already exists", cluster.Name)
	} else {
		err = preflight.PortsFree(preflight.HostPorts(p.Env)...)
		if err != nil {
			return fmt.Errorf("preflight: %w", err)
		}

		notify.Activityf(p.out(), "creating cluster %s", cluster.Name)

		err = provisioner.Create(ctx, cluster.Name)
		if err != nil {
			return fmt.Errorf("create cluster %s: %w", cluster.Name, err)
		}
	}

	clients, err := p.clients()
	if err != nil {
		return err
	}

	notify.Activityf(p.out(), "waiting for %d nodes", cluster.Servers+cluster.Agents)

	err = readiness.WaitForAPIServerReady(ctx, clients.Clientset, p.readinessTimeout())
	if err != nil {
		return fmt.Errorf("api server: %w", err)
	}

	err = readiness.WaitForNodesReady(ctx, clients.Clientset, cluster.Servers+cluster.Agents, p.readinessTimeout())
	if err != nil {
		return fmt.Errorf("nodes: %w", err)
	}

	helmClient, err := p.Services.Helm.ForContext(kubeconfigPath(p.Env), cluster.KubeContext())
	if err != nil {
		return fmt.Errorf("create helm client: %w", err)
	}

	err = installer.Run(ctx, installer.NewFactory(helmClient).Enabled(p.Env), installer.Options{
		Clientset:        clients.Clientset,
		ReadinessTimeout: p.readinessTimeout(),
		Parallel:         opts.Parallel,
		Strict:           opts.Strict,
		Out:              p.out(),
		Timer:            tmr,
	})
	if err != nil {
		return fmt.Errorf("install add-ons: %w", err)
	}

	notify.StageDonef(p.out(), tmr, "infrastructure ready on context %s", cluster.KubeContext())

	return nil
}

// Clean removes the application, or everything including the cluster with all.
func (p *Playground) Clean(ctx context.Context, all bool) (*cleanup.Result, error) {
	title := "Clean application"
	if all {
		title = "Tear down playground"
	}

	tmr := p.begin("🧹", title)

	provisioner, err := p.provisioner(ctx)
	if err != nil {
		return nil, err
	}

	cleaner := &cleanup.Cleaner{
		Env:         p.Env,
		Provisioner: provisioner,
		Clients:     p.Services.Clients,
		ArgoCD:      p.Services.ArgoCD,
		Out:         p.out(),
	}

	if all {
		engine, err := p.Services.Docker()
		if err != nil {
			notify.Warningf(p.out(), "keeping local images: open docker client: %v", err)
		} else {
			defer func() { _ = engine.Close() }()

			cleaner.Docker = engine
		}
	}

	result, err := cleaner.Clean(ctx, all)
	if err != nil {
		return nil, err
	}

	for _, warning := range result.Warnings {
		notify.Warningf(p.out(), "%s", warning)
	}

	notify.StageDonef(p.out(), tmr, "%s", cleanSummary(result))

	return result, nil
}

func cleanSummary(result *cleanup.Result) string {
	switch {
	case result.ClusterDeleted:
		return "cluster deleted"
	case result.NamespaceDeleted || result.ApplicationDeleted || result.HostsRemoved:
		return "application removed"
	default:
		return "nothing to clean"
	}
}

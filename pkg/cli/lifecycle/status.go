package lifecycle

import (
	"context"
	"fmt"

	"github.com/gitops-playground/playctl/pkg/client/helm"
	"github.com/gitops-playground/playctl/pkg/svc/installer"
	"github.com/gitops-playground/playctl/pkg/svc/status"
)

// Status collects the read-only report. It prints nothing itself so the report can be
// rendered as YAML or JSON.
func (p *Playground) Status(ctx context.Context) (*status.Report, error) {
	provisioner, err := p.provisioner(ctx)
	if err != nil {
		return nil, err
	}

	collector := &status.Collector{Env: p.Env, Provisioner: provisioner}

	exists, err := provisioner.Exists(ctx, p.Env.Spec.Cluster.Name)
	if err != nil {
		return nil, fmt.Errorf("look up cluster %s: %w", p.Env.Spec.Cluster.Name, err)
	}

	var helmClient helm.Interface

	if exists {
		clients, err := p.clients()
		if err != nil {
			return nil, err
		}

		helmClient, err = p.Services.Helm.ForContext(kubeconfigPath(p.Env), p.Env.Spec.Cluster.KubeContext())
		if err != nil {
			return nil, fmt.Errorf("create helm client: %w", err)
		}

		collector.Clientset = clients.Clientset
		collector.Helm = helmClient
		collector.ArgoCD = p.Services.ArgoCD(clients)
	}

	collector.Addons = installer.NewFactory(helmClient).Entries(p.Env)

	return collector.Collect(ctx)
}

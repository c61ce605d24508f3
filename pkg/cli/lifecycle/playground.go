package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gitops-playground/playctl/pkg/apis/playground/v1alpha1"
	"github.com/gitops-playground/playctl/pkg/di"
	"github.com/gitops-playground/playctl/pkg/k8s"
	clusterprovisioner "github.com/gitops-playground/playctl/pkg/svc/provisioner/cluster"
	"github.com/gitops-playground/playctl/pkg/utils/notify"
	"github.com/gitops-playground/playctl/pkg/utils/timer"
)

// ErrClusterNotRunning is returned by stages that need the cluster before it was set up.
var ErrClusterNotRunning = errors.New("cluster does not exist, run 'playctl infra setup' first")

// Playground runs stages against one Environment.
type Playground struct {
	Env      *v1alpha1.Environment
	Services *di.Services
	// Timing prints the stage and total durations after each stage.
	Timing bool
}

func (p *Playground) out() io.Writer {
	if p.Services.Out == nil {
		return io.Discard
	}

	return p.Services.Out
}

// begin opens a stage and returns the timer its success line should print, nil when
// timing is off.
func (p *Playground) begin(emoji, title string) timer.Timer {
	if p.Services.Timer != nil {
		p.Services.Timer.NewStage()
	}

	notify.Titlef(p.out(), emoji, "%s", title)

	if !p.Timing {
		return nil
	}

	return p.Services.Timer
}

func (p *Playground) provisioner(ctx context.Context) (clusterprovisioner.ClusterProvisioner, error) {
	provisioner, err := p.Services.Provisioners.Create(ctx, p.Env)
	if err != nil {
		return nil, fmt.Errorf("create cluster provisioner: %w", err)
	}

	return provisioner, nil
}

// requireCluster returns the provisioner after checking the cluster exists.
func (p *Playground) requireCluster(ctx context.Context) (clusterprovisioner.ClusterProvisioner, error) {
	provisioner, err := p.provisioner(ctx)
	if err != nil {
		return nil, err
	}

	exists, err := provisioner.Exists(ctx, p.Env.Spec.Cluster.Name)
	if err != nil {
		return nil, fmt.Errorf("look up cluster %s: %w", p.Env.Spec.Cluster.Name, err)
	}

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrClusterNotRunning, p.Env.Spec.Cluster.Name)
	}

	return provisioner, nil
}

func (p *Playground) clients() (*k8s.Clients, error) {
	cluster := p.Env.Spec.Cluster

	clients, err := p.Services.Clients.ForContext(
		kubeconfigPath(p.Env),
		cluster.KubeContext(),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to cluster %s: %w", cluster.Name, err)
	}

	return clients, nil
}

func (p *Playground) readinessTimeout() time.Duration {
	return p.Env.Spec.Timeouts.Readiness.Duration
}

func kubeconfigPath(env *v1alpha1.Environment) string {
	return k8s.ResolveKubeconfigPath(env.Spec.Cluster.Kubeconfig)
}

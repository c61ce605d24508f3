package status

import (
	"context"
	"errors"
	"fmt"

	"github.com/gitops-playground/playctl/pkg/apis/playground/v1alpha1"
	"github.com/gitops-playground/playctl/pkg/client/argocd"
	"github.com/gitops-playground/playctl/pkg/client/helm"
	"github.com/gitops-playground/playctl/pkg/client/registry"
	"github.com/gitops-playground/playctl/pkg/k8s/readiness"
	"github.com/gitops-playground/playctl/pkg/svc/hosts"
	"github.com/gitops-playground/playctl/pkg/svc/installer"
	clusterprovisioner "github.com/gitops-playground/playctl/pkg/svc/provisioner/cluster"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// ErrProvisionerRequired is returned when the collector cannot look the cluster up.
var ErrProvisionerRequired = errors.New("cluster provisioner is required")

// TagLister lists the tags of an image repository.
type TagLister func(ctx context.Context, repository string) ([]string, error)

// Collector gathers a Report. Only Provisioner is required; every other source is skipped
// when nil or when the cluster does not exist.
type Collector struct {
	Env         *v1alpha1.Environment
	Provisioner clusterprovisioner.ClusterProvisioner
	Clientset   kubernetes.Interface
	Helm        helm.Interface
	Addons      []installer.Entry
	ArgoCD      argocd.Manager
	Tags        TagLister
}

// Collect reads every source. It fails only when the cluster lookup itself fails.
func (c *Collector) Collect(ctx context.Context) (*Report, error) {
	if c.Provisioner == nil {
		return nil, ErrProvisionerRequired
	}

	env := c.Env
	report := &Report{
		Cluster: ClusterStatus{Name: env.Spec.Cluster.Name, Context: env.Spec.Cluster.KubeContext()},
		Images:  ImageStatus{Repository: registryRepository(env)},
	}

	exists, err := c.Provisioner.Exists(ctx, env.Spec.Cluster.Name)
	if err != nil {
		return nil, fmt.Errorf("look up cluster %s: %w", env.Spec.Cluster.Name, err)
	}

	report.Cluster.Exists = exists

	hostnames, err := hosts.Lookup(env.Spec.Cluster.HostsFile, env.Spec.Cluster.Name)
	if err == nil {
		report.Hosts = hostnames
	}

	if !exists {
		for _, entry := range c.Addons {
			report.Addons = append(report.Addons, baseStatus(entry))
		}

		return report, nil
	}

	if c.Clientset != nil {
		c.collectNodes(ctx, report)
	}

	for _, entry := range c.Addons {
		report.Addons = append(report.Addons, c.addon(ctx, entry))
	}

	if c.Clientset != nil {
		report.Workloads = c.workloads(ctx)
	}

	if c.ArgoCD != nil && env.Spec.Addons.ArgoCD.Enabled() {
		report.Application = c.application(ctx)
	}

	c.collectImages(ctx, report)

	return report, nil
}

func (c *Collector) collectNodes(ctx context.Context, report *Report) {
	nodes, err := c.Clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		report.Cluster.Error = fmt.Sprintf("list nodes: %v", err)

		return
	}

	for i := range nodes.Items {
		node := &nodes.Items[i]
		report.Cluster.Nodes = append(report.Cluster.Nodes, NodeStatus{
			Name:    node.Name,
			Ready:   readiness.IsNodeReady(node),
			Version: node.Status.NodeInfo.KubeletVersion,
		})
	}
}

func baseStatus(entry installer.Entry) AddonStatus {
	status := AddonStatus{Name: entry.Name(), Enabled: entry.Enabled, Status: StatusNotInstalled}
	if !entry.Enabled {
		status.Status = StatusDisabled
	}

	if releaser, ok := entry.Installer.(installer.Releaser); ok {
		status.Release, status.Namespace = releaser.Release()
	}

	return status
}

// addon reports the release even for a disabled add-on, which may be left over from an
// earlier run.
func (c *Collector) addon(ctx context.Context, entry installer.Entry) AddonStatus {
	status := baseStatus(entry)

	if status.Release == "" || c.Helm == nil {
		status.Status = StatusUnknown

		return status
	}

	info, err := c.Helm.GetRelease(ctx, status.Release, status.Namespace)
	if errors.Is(err, helm.ErrReleaseNotFound) {
		return status
	}

	if err != nil {
		status.Status = StatusUnknown
		status.Error = err.Error()

		return status
	}

	status.Status = info.Status
	status.Chart = info.Chart
	status.Version = info.Version

	if c.Clientset != nil {
		status.Ready, err = c.allReady(ctx, entry.Checks())
		if err != nil {
			status.Error = err.Error()
		}
	}

	return status
}

func (c *Collector) allReady(ctx context.Context, checks []readiness.Check) (bool, error) {
	for _, check := range checks {
		_, ready, err := readiness.Probe(ctx, c.Clientset, check)
		if err != nil {
			return false, err
		}

		if !ready {
			return false, nil
		}
	}

	return true, nil
}

func (c *Collector) workloads(ctx context.Context) []WorkloadStatus {
	namespace := c.Env.Spec.App.Namespace
	names := []string{"redis", c.Env.Spec.App.Name}
	statuses := make([]WorkloadStatus, 0, len(names))

	for _, name := range names {
		status := WorkloadStatus{Namespace: namespace, Name: name}

		present, ready, err := readiness.Probe(ctx, c.Clientset, readiness.Check{
			Type:      readiness.TypeDeployment,
			Namespace: namespace,
			Name:      name,
		})
		if err != nil {
			status.Error = err.Error()
		}

		status.Present = present
		status.Ready = ready
		statuses = append(statuses, status)
	}

	return statuses
}

func (c *Collector) application(ctx context.Context) *ApplicationStatus {
	name := c.Env.Spec.App.Name
	status := &ApplicationStatus{Name: name}

	app, err := c.ArgoCD.GetStatus(ctx, name)
	if err != nil {
		status.Error = err.Error()

		return status
	}

	status.Present = app.Present
	status.Sync = app.Sync
	status.Health = app.Health
	status.Revision = app.Revision
	status.Message = app.Message

	return status
}

func (c *Collector) collectImages(ctx context.Context, report *Report) {
	if c.Env.Spec.App.LoadStrategy != v1alpha1.LoadStrategyRegistry {
		report.Images.Repository = ""

		return
	}

	list := c.Tags
	if list == nil {
		list = registry.ListTags
	}

	tags, err := list(ctx, report.Images.Repository)
	if err != nil {
		report.Images.Error = err.Error()

		return
	}

	report.Images.Tags = tags
}

func registryRepository(env *v1alpha1.Environment) string {
	return v1alpha1.RegistryHostAddress(env.Spec.Cluster.Registry.HostPort) + "/" + env.Spec.App.Image
}

// Package cleanup removes what the playground created: the Argo CD Application, the
// application namespace and hosts entries, and with All also the cluster, its registry and
// the kubeconfig entries and the local application images.
package cleanup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/gitops-playground/playctl/pkg/apis/playground/v1alpha1"
	"github.com/gitops-playground/playctl/pkg/client/argocd"
	"github.com/gitops-playground/playctl/pkg/client/docker"
	"github.com/gitops-playground/playctl/pkg/k8s"
	"github.com/gitops-playground/playctl/pkg/svc/hosts"
	clusterprovisioner "github.com/gitops-playground/playctl/pkg/svc/provisioner/cluster"
	"github.com/gitops-playground/playctl/pkg/utils/notify"
)

// ErrProvisionerRequired is returned when no cluster provisioner is configured.
var ErrProvisionerRequired = errors.New("cluster provisioner is required")

// Result records what was removed.
type Result struct {
	ApplicationDeleted bool
	NamespaceDeleted   bool
	HostsRemoved       bool
	ClusterDeleted     bool
	KubeconfigCleaned  bool
	ImagesRemoved      []string
	Warnings           []string
}

// Cleaner removes playground resources.
type Cleaner struct {
	Env         *v1alpha1.Environment
	Provisioner clusterprovisioner.ClusterProvisioner
	Clients     k8s.ClientFactory
	// ArgoCD builds the Application manager from the cluster clients. Defaults to
	// argocd.NewManager.
	ArgoCD func(*k8s.Clients) argocd.Manager
	// Docker removes the application images on a full clean. Images are kept when nil.
	Docker docker.Engine
	Out    io.Writer
}

// Clean removes the application. With all it also deletes the cluster and cleans the
// kubeconfig. Steps that find nothing to remove are not errors.
func (c *Cleaner) Clean(ctx context.Context, all bool) (*Result, error) {
	if c.Provisioner == nil {
		return nil, ErrProvisionerRequired
	}

	cluster := c.Env.Spec.Cluster
	result := &Result{}

	exists, err := c.Provisioner.Exists(ctx, cluster.Name)
	if err != nil {
		return nil, fmt.Errorf("look up cluster %s: %w", cluster.Name, err)
	}

	// Deleting the cluster takes the application with it.
	if exists && !all {
		err = c.removeApplication(ctx, result)
		if err != nil {
			return result, err
		}
	}

	err = c.removeHosts(result)
	if err != nil {
		return result, err
	}

	if !all {
		return result, nil
	}

	if exists {
		notify.Activityf(c.Out, "deleting cluster %s", cluster.Name)

		err = c.Provisioner.Delete(ctx, cluster.Name)
		if err != nil {
			return result, fmt.Errorf("delete cluster %s: %w", cluster.Name, err)
		}

		result.ClusterDeleted = true
	} else {
		notify.Infof(c.Out, "cluster %s does not exist", cluster.Name)
	}

	clusterEntry, contextEntry, userEntry := k8s.K3dEntryNames(cluster.Name)

	result.KubeconfigCleaned, err = k8s.RemoveKubeconfigEntries(
		k8s.ResolveKubeconfigPath(cluster.Kubeconfig), clusterEntry, contextEntry, userEntry)
	if err != nil {
		return result, fmt.Errorf("clean kubeconfig: %w", err)
	}

	if result.KubeconfigCleaned {
		notify.Activityf(c.Out, "removed %s from kubeconfig", contextEntry)
	}

	c.removeImages(ctx, result)

	return result, nil
}

// removeImages deletes the locally built and pushed tags. Failures are warnings.
func (c *Cleaner) removeImages(ctx context.Context, result *Result) {
	if c.Docker == nil {
		return
	}

	for _, ref := range []string{c.Env.Spec.App.ImageRef(), c.Env.PushImage()} {
		exists, err := docker.ImageExists(ctx, c.Docker, ref)
		if err == nil && exists {
			err = docker.RemoveImage(ctx, c.Docker, ref)
		}

		if err != nil {
			notify.Warningf(c.Out, "%v", err)
			result.Warnings = append(result.Warnings, err.Error())

			continue
		}

		if exists {
			notify.Activityf(c.Out, "removed image %s", ref)
			result.ImagesRemoved = append(result.ImagesRemoved, ref)
		}
	}
}

func (c *Cleaner) removeApplication(ctx context.Context, result *Result) error {
	cluster := c.Env.Spec.Cluster
	app := c.Env.Spec.App

	clients, err := c.Clients.ForContext(cluster.Kubeconfig, cluster.KubeContext())
	if err != nil {
		return fmt.Errorf("connect to cluster %s: %w", cluster.Name, err)
	}

	newManager := c.ArgoCD
	if newManager == nil {
		newManager = func(clients *k8s.Clients) argocd.Manager {
			return argocd.NewManager(clients.Clientset, clients.Dynamic)
		}
	}

	notify.Activityf(c.Out, "deleting argocd application %s", app.Name)

	err = newManager(clients).Delete(ctx, app.Name, c.Env.Spec.GitOps.RepoURL)
	if err != nil {
		notify.Warningf(c.Out, "%v", err)
		result.Warnings = append(result.Warnings, err.Error())
	} else {
		result.ApplicationDeleted = true
	}

	notify.Activityf(c.Out, "deleting namespace %s", app.Namespace)

	err = k8s.DeleteNamespace(ctx, clients.Clientset, app.Namespace, c.Env.Spec.Timeouts.Readiness.Duration)
	if err != nil {
		return err
	}

	result.NamespaceDeleted = true

	return nil
}

func (c *Cleaner) removeHosts(result *Result) error {
	cluster := c.Env.Spec.Cluster

	removed, err := hosts.Remove(cluster.HostsFile, cluster.Name)
	if errors.Is(err, fs.ErrPermission) {
		message := fmt.Sprintf("cannot write %s, remove the %q block yourself", cluster.HostsFile,
			hosts.BeginMarker(cluster.Name))
		notify.Warningf(c.Out, "%s", message)
		result.Warnings = append(result.Warnings, message)

		return nil
	}

	if err != nil {
		return fmt.Errorf("clean hosts file: %w", err)
	}

	result.HostsRemoved = removed
	if removed {
		notify.Activityf(c.Out, "removed host names from %s", cluster.HostsFile)
	}

	return nil
}

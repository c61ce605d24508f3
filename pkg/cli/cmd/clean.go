package cmd

import (
	"context"

	"github.com/gitops-playground/playctl/pkg/cli/lifecycle"
	"github.com/gitops-playground/playctl/pkg/cli/ui/confirm"
	"github.com/gitops-playground/playctl/pkg/client/argocd"
	"github.com/spf13/cobra"
)

func newCleanCmd(p *playctl) *cobra.Command {
	var all, force bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the application, or with --all the whole playground",
		Long: `Delete the Argo CD Application, the application namespace and the hosts-file block.
With --all, delete the k3d cluster and its registry instead and remove the cluster from the
kubeconfig. Asks for confirmation on a terminal unless --force is set.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return p.clean(cmd, all, force)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Also delete the cluster, its registry and kubeconfig entries")
	addForceFlag(cmd, &force)

	return cmd
}

func (p *playctl) clean(cmd *cobra.Command, all, force bool) error {
	return p.stage(cmd, func(ctx context.Context, pg *lifecycle.Playground) error {
		err := confirm.Confirm(cmd.OutOrStdout(), deletionPreview(pg, all), force)
		if err != nil {
			return err
		}

		_, err = pg.Clean(ctx, all)

		return err
	})
}

func deletionPreview(pg *lifecycle.Playground, all bool) *confirm.DeletionPreview {
	spec := pg.Env.Spec
	preview := &confirm.DeletionPreview{HostsFile: spec.Cluster.HostsFile}

	if all {
		preview.ClusterName = spec.Cluster.Name
		preview.Registry = spec.Cluster.Registry.Name
		preview.KubeContext = spec.Cluster.KubeContext()

		return preview
	}

	preview.Namespace = spec.App.Namespace

	if spec.GitOps.RepoURL != "" {
		preview.Application = argocd.Namespace + "/" + spec.App.Name
	}

	return preview
}

package cmd

import (
	"context"

	"github.com/gitops-playground/playctl/pkg/cli/lifecycle"
	"github.com/spf13/cobra"
)

func newInfraCmd(p *playctl) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "infra",
		Short: "Manage the cluster and its add-ons",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	cmd.AddCommand(
		newInfraSetupCmd(p),
		newInfraTeardownCmd(p),
		newInfraStartCmd(p),
		newInfraStopCmd(p),
		newInfraUninstallCmd(p),
	)

	return cmd
}

func newInfraSetupCmd(p *playctl) *cobra.Command {
	var opts lifecycle.InfraOptions

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Create the k3d cluster and install the add-ons",
		Long: `Create the k3d cluster with its registry when it does not exist, then install or
upgrade ingress-nginx, the Kubernetes dashboard, Argo CD and kube-prometheus-stack.

An add-on whose workloads do not become ready in time is reported as degraded and the
remaining add-ons are still installed, unless --strict is set.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return p.stage(cmd, func(ctx context.Context, pg *lifecycle.Playground) error {
				_, err := pg.Preflight(ctx)
				if err != nil {
					return err
				}

				return pg.SetupInfra(ctx, opts)
			})
		},
	}

	addInfraFlags(cmd, &opts)

	return cmd
}

func newInfraTeardownCmd(p *playctl) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:           "teardown",
		Short:         "Delete the cluster, its registry and every local trace (same as clean --all)",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return p.clean(cmd, true, force)
		},
	}

	addForceFlag(cmd, &force)

	return cmd
}

func newInfraStartCmd(p *playctl) *cobra.Command {
	return &cobra.Command{
		Use:           "start",
		Short:         "Start a stopped cluster",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return p.stage(cmd, func(ctx context.Context, pg *lifecycle.Playground) error {
				return pg.StartInfra(ctx)
			})
		},
	}
}

func newInfraStopCmd(p *playctl) *cobra.Command {
	return &cobra.Command{
		Use:           "stop",
		Short:         "Stop the cluster containers and keep their state",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return p.stage(cmd, func(ctx context.Context, pg *lifecycle.Playground) error {
				return pg.StopInfra(ctx)
			})
		},
	}
}

func newInfraUninstallCmd(p *playctl) *cobra.Command {
	return &cobra.Command{
		Use:           "uninstall",
		Short:         "Remove the add-on Helm releases and keep the cluster",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return p.stage(cmd, func(ctx context.Context, pg *lifecycle.Playground) error {
				return pg.UninstallAddons(ctx)
			})
		},
	}
}

func addInfraFlags(cmd *cobra.Command, opts *lifecycle.InfraOptions) {
	cmd.Flags().BoolVar(&opts.Parallel, "parallel", false,
		"Install the add-ons after ingress-nginx concurrently")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false,
		"Fail when an add-on does not become ready instead of continuing degraded")
}

func addForceFlag(cmd *cobra.Command, force *bool) {
	cmd.Flags().BoolVarP(force, "force", "f", false, "Delete without asking for confirmation")
}

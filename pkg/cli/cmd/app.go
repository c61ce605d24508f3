package cmd

import (
	"context"

	"github.com/gitops-playground/playctl/pkg/cli/lifecycle"
	"github.com/gitops-playground/playctl/pkg/svc/smoketest"
	"github.com/spf13/cobra"
)

func newAppCmd(p *playctl) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "app",
		Short: "Build, deploy and test the albums application",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	cmd.AddCommand(newAppBuildCmd(p), newAppDeployCmd(p), newAppTestCmd(p))

	return cmd
}

func newAppBuildCmd(p *playctl) *cobra.Command {
	var opts lifecycle.BuildOptions

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the application image and load it into the cluster",
		Long: `Build the application image with the Docker daemon and make it available to the
cluster: the Registry load strategy pushes it to the cluster registry, the Import strategy
copies it into every node.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return p.stage(cmd, func(ctx context.Context, pg *lifecycle.Playground) error {
				_, err := pg.Preflight(ctx)
				if err != nil {
					return err
				}

				_, err = pg.BuildApp(ctx, opts)

				return err
			})
		},
	}

	addBuildFlags(cmd, &opts)

	return cmd
}

func newAppDeployCmd(p *playctl) *cobra.Command {
	var opts lifecycle.DeployOptions

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Apply the application manifests and register its hostnames",
		Long: `Apply the namespace, seed data, Redis, the albums Deployment, its Ingress and, with
monitoring enabled, its ServiceMonitor in that order. Expose argocd-server as a NodePort,
write the hosts-file block and, when GIT_REPO_URL is set, create the Argo CD Application.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return p.stage(cmd, func(ctx context.Context, pg *lifecycle.Playground) error {
				_, err := pg.DeployApp(ctx, opts)

				return err
			})
		},
	}

	cmd.Flags().StringVar(&opts.Image, "image-ref", "",
		"Image reference written into the Deployment (defaults to the one app build loads)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false,
		"Fail when a workload does not become ready instead of continuing degraded")

	return cmd
}

func newAppTestCmd(p *playctl) *cobra.Command {
	var opts lifecycle.TestOptions

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Smoke-test the deployed application",
		Long: `Call /health and look up one album. By default the requests go through a
port-forward to the albums Service that is closed when the test ends; --via-ingress sends
them to the ingress on the HTTP host port instead.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return p.stage(cmd, func(ctx context.Context, pg *lifecycle.Playground) error {
				_, err := pg.TestApp(ctx, opts)

				return err
			})
		},
	}

	addTestFlags(cmd, &opts)

	return cmd
}

func addBuildFlags(cmd *cobra.Command, opts *lifecycle.BuildOptions) {
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "Build without the Docker layer cache")
}

func addTestFlags(cmd *cobra.Command, opts *lifecycle.TestOptions) {
	cmd.Flags().BoolVar(&opts.ViaIngress, "via-ingress", false,
		"Reach the application through the ingress instead of a port-forward")
	cmd.Flags().StringVar(&opts.Key, "key", smoketest.DefaultKey, "Album key to look up")
	cmd.Flags().StringVar(&opts.Expect, "expect", smoketest.DefaultExpect, "Text the album response must contain")
	cmd.Flags().DurationVar(&opts.Timeout, "test-timeout", 0,
		"How long each probe is retried (defaults to the readiness timeout)")
}

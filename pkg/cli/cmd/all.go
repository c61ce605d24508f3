package cmd

import (
	"context"

	"github.com/gitops-playground/playctl/pkg/cli/lifecycle"
	"github.com/gitops-playground/playctl/pkg/utils/notify"
	"github.com/spf13/cobra"
)

func newAllCmd(p *playctl) *cobra.Command {
	var (
		infraOpts  lifecycle.InfraOptions
		buildOpts  lifecycle.BuildOptions
		testOpts   lifecycle.TestOptions
		deployOpts lifecycle.DeployOptions
	)

	cmd := &cobra.Command{
		Use:   "all",
		Short: "Set up the playground end to end",
		Long: `Run preflight, infra setup, app build, app deploy and app test in order, stopping at
the first failure. Every stage can be re-run on its own.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deployOpts.Strict = infraOpts.Strict

			return p.stage(cmd, func(ctx context.Context, pg *lifecycle.Playground) error {
				return runAll(ctx, pg, infraOpts, buildOpts, deployOpts, testOpts)
			})
		},
	}

	addInfraFlags(cmd, &infraOpts)
	addBuildFlags(cmd, &buildOpts)
	addTestFlags(cmd, &testOpts)

	return cmd
}

func runAll(
	ctx context.Context,
	pg *lifecycle.Playground,
	infraOpts lifecycle.InfraOptions,
	buildOpts lifecycle.BuildOptions,
	deployOpts lifecycle.DeployOptions,
	testOpts lifecycle.TestOptions,
) error {
	_, err := pg.Preflight(ctx)
	if err != nil {
		return err
	}

	err = pg.SetupInfra(ctx, infraOpts)
	if err != nil {
		return err
	}

	built, err := pg.BuildApp(ctx, buildOpts)
	if err != nil {
		return err
	}

	deployOpts.Image = built.Image

	_, err = pg.DeployApp(ctx, deployOpts)
	if err != nil {
		return err
	}

	_, err = pg.TestApp(ctx, testOpts)
	if err != nil {
		return err
	}

	notify.Successf(pg.Services.Out, "playground %s is ready", pg.Env.Spec.Cluster.Name)

	return nil
}

package cmd

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/gitops-playground/playctl/pkg/apis/playground/v1alpha1"
	"github.com/gitops-playground/playctl/pkg/cli/helpers"
	"github.com/gitops-playground/playctl/pkg/cli/lifecycle"
	"github.com/gitops-playground/playctl/pkg/cli/ui/errorhandler"
	"github.com/gitops-playground/playctl/pkg/client/docker"
	"github.com/gitops-playground/playctl/pkg/di"
	"github.com/gitops-playground/playctl/pkg/io/configmanager"
	"github.com/gitops-playground/playctl/pkg/svc/preflight"
	"github.com/gitops-playground/playctl/pkg/utils/notify"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command with the default services.
func NewRootCmd(version, commit, date string) *cobra.Command {
	return NewRootCmdWithRuntime(di.NewRuntime(), version, commit, date)
}

// NewRootCmdWithRuntime creates the root command resolving its services from rt.
func NewRootCmdWithRuntime(rt *di.Runtime, version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playctl",
		Short: "Local GitOps playground on k3d",
		Long: `playctl creates a local k3d cluster with a registry, installs ingress-nginx, the
Kubernetes dashboard, Argo CD and kube-prometheus-stack, then builds, deploys and tests the
albums sample application on it.`,
		RunE:         handleRootRunE,
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	cmd.PersistentFlags().Bool(helpers.TimingFlagName, false, "Show per-stage timing output")

	manager := configmanager.NewManager()

	// Registration only fails on duplicate flag names, which the selectors exclude.
	_ = manager.RegisterFlags(cmd.PersistentFlags())

	p := &playctl{runtime: rt, config: manager}

	cmd.AddCommand(
		newAllCmd(p),
		newInfraCmd(p),
		newAppCmd(p),
		newStatusCmd(p),
		newCleanCmd(p),
		newConfigCmd(p),
		newVersionCmd(version, commit, date),
	)

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor(
		errorhandler.WithHint(docker.ErrDaemonUnavailable, "start Docker (or point DOCKER_HOST at a running daemon) and retry"),
		errorhandler.WithHint(preflight.ErrPortInUse, "free the port or choose others with HTTP_PORT, HTTPS_PORT or --registry-port"),
		errorhandler.WithHint(lifecycle.ErrClusterNotRunning, "create the cluster with 'playctl infra setup'"),
		errorhandler.WithHint(v1alpha1.ErrPortConflict, "HTTP_PORT, HTTPS_PORT and --registry-port must all differ"),
		errorhandler.WithHint(fs.ErrPermission, "re-run with sufficient permissions"),
	)

	err := executor.Execute(cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

func handleRootRunE(cmd *cobra.Command, _ []string) error {
	// The err can safely be ignored, as it can never fail at runtime.
	_ = cmd.Help()

	return nil
}

// playctl carries what every command needs to build a Playground.
type playctl struct {
	runtime *di.Runtime
	config  *configmanager.Manager
}

// stage runs fn with a Playground whose output separates stages and whose timer starts now.
func (p *playctl) stage(cmd *cobra.Command, fn func(ctx context.Context, pg *lifecycle.Playground) error) error {
	env, err := p.config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	timing, err := helpers.IsTimingEnabled(cmd)
	if err != nil {
		return err
	}

	out := notify.NewStageWriter(cmd.OutOrStdout())

	handler := di.WithServices(func(cmd *cobra.Command, services *di.Services) error {
		services.Timer.Start()

		return fn(cmd.Context(), &lifecycle.Playground{Env: env, Services: services, Timing: timing})
	})

	return p.runtime.Invoke(func(injector di.Injector) error {
		return handler(cmd, injector)
	}, di.ProvideOutput(out))
}

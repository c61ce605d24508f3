package k3dprovisioner_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/gitops-playground/playctl/pkg/apis/playground/v1alpha1"
	"github.com/gitops-playground/playctl/pkg/cmd/runner"
	k3dprovisioner "github.com/gitops-playground/playctl/pkg/svc/provisioner/cluster/k3d"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"
)

var errK3dFailed = errors.New("k3d failed")

func TestMain(m *testing.M) {
	exitCode := m.Run()

	_, err := snaps.Clean(m, snaps.CleanOpts{Sort: true})
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to clean snapshots: " + err.Error() + "\n")

		os.Exit(1)
	}

	os.Exit(exitCode)
}

func defaultEnvironment() *v1alpha1.Environment {
	env := v1alpha1.NewEnvironment()
	env.SetDefaults()

	return env
}

func TestBuildSimpleConfig(t *testing.T) {
	t.Parallel()

	cfg, err := k3dprovisioner.BuildSimpleConfig(defaultEnvironment())
	require.NoError(t, err)

	assert.Equal(t, "playground", cfg.Name)
	assert.Equal(t, 1, cfg.Servers)
	assert.Equal(t, 2, cfg.Agents)
	require.Len(t, cfg.Ports, 2)
	assert.Equal(t, "8080:80", cfg.Ports[0].Port)
	assert.Equal(t, []string{"loadbalancer"}, cfg.Ports[0].NodeFilters)
	assert.Equal(t, "8443:443", cfg.Ports[1].Port)
	require.Len(t, cfg.Options.K3sOptions.ExtraArgs, 1)
	assert.Equal(t, "--disable=traefik", cfg.Options.K3sOptions.ExtraArgs[0].Arg)
	require.NotNil(t, cfg.Registries.Create)
	assert.Equal(t, "playground-registry", cfg.Registries.Create.Name)
	assert.Equal(t, "5050", cfg.Registries.Create.HostPort)
	assert.Contains(t, cfg.Registries.Config, "http://playground-registry:5000")

	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	snaps.MatchSnapshot(t, string(out))
}

func TestBuildSimpleConfig_CustomPorts(t *testing.T) {
	t.Parallel()

	env := defaultEnvironment()
	env.Spec.Cluster.HTTPPort = 80
	env.Spec.Cluster.HTTPSPort = 443
	env.Spec.Cluster.Agents = 0

	cfg, err := k3dprovisioner.BuildSimpleConfig(env)
	require.NoError(t, err)
	assert.Equal(t, "80:80", cfg.Ports[0].Port)
	assert.Equal(t, "443:443", cfg.Ports[1].Port)
	assert.Zero(t, cfg.Agents)
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	cfg, err := k3dprovisioner.BuildSimpleConfig(defaultEnvironment())
	require.NoError(t, err)

	path, err := k3dprovisioner.WriteConfig(cfg, t.TempDir())
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "kind: Simple")
	assert.Contains(t, string(content), "nodeFilters:")
}

func TestProvisionerCreate_PassesConfigFile(t *testing.T) {
	t.Parallel()

	cfg, err := k3dprovisioner.BuildSimpleConfig(defaultEnvironment())
	require.NoError(t, err)

	commandRunner := runner.NewMockCommandRunner(t)
	commandRunner.EXPECT().Run(mock.Anything, mock.Anything, mock.Anything).
		Run(func(_ context.Context, cmd *cobra.Command, args []string) {
			assert.Equal(t, "create", cmd.Name())
			require.Len(t, args, 2)
			assert.Equal(t, "--config", args[0])

			content, readErr := os.ReadFile(args[1])
			require.NoError(t, readErr)
			assert.Contains(t, string(content), "name: demo")
		}).
		Return(runner.Result{}, nil)

	provisioner := k3dprovisioner.NewProvisioner(cfg, os.Stderr).WithRunner(commandRunner)

	require.NoError(t, provisioner.Create(context.Background(), "demo"))
}

func TestProvisionerLifecycle_UsesClusterName(t *testing.T) {
	t.Parallel()

	cfg, err := k3dprovisioner.BuildSimpleConfig(defaultEnvironment())
	require.NoError(t, err)

	tests := []struct {
		name    string
		command string
		call    func(p *k3dprovisioner.Provisioner) error
	}{
		{name: "delete", command: "delete", call: func(p *k3dprovisioner.Provisioner) error {
			return p.Delete(context.Background(), "")
		}},
		{name: "start", command: "start", call: func(p *k3dprovisioner.Provisioner) error {
			return p.Start(context.Background(), "")
		}},
		{name: "stop", command: "stop", call: func(p *k3dprovisioner.Provisioner) error {
			return p.Stop(context.Background(), "")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			commandRunner := runner.NewMockCommandRunner(t)
			commandRunner.EXPECT().Run(mock.Anything, mock.Anything, []string{"playground"}).
				Run(func(_ context.Context, cmd *cobra.Command, _ []string) {
					assert.Equal(t, tt.command, cmd.Name())
				}).
				Return(runner.Result{}, nil)

			require.NoError(t, tt.call(k3dprovisioner.NewProvisioner(cfg, os.Stderr).WithRunner(commandRunner)))
		})
	}
}

func TestProvisionerDelete_WrapsError(t *testing.T) {
	t.Parallel()

	commandRunner := runner.NewMockCommandRunner(t)
	commandRunner.EXPECT().Run(mock.Anything, mock.Anything, mock.Anything).
		Return(runner.Result{}, errK3dFailed)

	err := k3dprovisioner.NewProvisioner(nil, os.Stderr).WithRunner(commandRunner).
		Delete(context.Background(), "demo")
	require.ErrorIs(t, err, errK3dFailed)
	assert.Contains(t, err.Error(), "cluster delete")
}

func TestProvisionerImportImages_ReportsStderr(t *testing.T) {
	t.Parallel()

	commandRunner := runner.NewMockCommandRunner(t)
	commandRunner.EXPECT().Run(mock.Anything, mock.Anything, mock.Anything).
		Return(runner.Result{Stderr: "importing\nno nodes found for cluster demo\n"}, errK3dFailed)

	err := k3dprovisioner.NewProvisioner(nil, os.Stderr).WithRunner(commandRunner).
		ImportImages(context.Background(), "demo", "albums:latest")
	require.ErrorIs(t, err, errK3dFailed)
	assert.True(t, strings.HasSuffix(err.Error(), ": no nodes found for cluster demo"), err.Error())
	assert.True(t, strings.HasPrefix(err.Error(), "image import: "), err.Error())
}

func TestProvisionerImportImages(t *testing.T) {
	t.Parallel()

	commandRunner := runner.NewMockCommandRunner(t)
	commandRunner.EXPECT().Run(mock.Anything, mock.Anything,
		[]string{"--cluster", "demo", "--mode", "auto", "albums:latest"}).
		Return(runner.Result{}, nil)

	provisioner := k3dprovisioner.NewProvisioner(nil, os.Stderr).WithRunner(commandRunner)

	require.NoError(t, provisioner.ImportImages(context.Background(), "demo", "albums:latest"))
	require.ErrorIs(t, provisioner.ImportImages(context.Background(), "demo"), k3dprovisioner.ErrNoImages)
}

func TestParseClusterNames(t *testing.T) {
	t.Parallel()

	names, err := k3dprovisioner.ParseClusterNames(`[{"name":"playground"},{"name":""},{"name":"other"}]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"playground", "other"}, names)

	names, err = k3dprovisioner.ParseClusterNames("")
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = k3dprovisioner.ParseClusterNames("not json")
	require.Error(t, err)
}

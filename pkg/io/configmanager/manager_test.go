package configmanager_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gitops-playground/playctl/pkg/apis/playground/v1alpha1"
	"github.com/gitops-playground/playctl/pkg/io/configmanager"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, manager *configmanager.Manager) *pflag.FlagSet {
	t.Helper()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.NoError(t, manager.RegisterFlags(flags))

	return flags
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "playctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

// Tests in this file use t.Setenv and therefore cannot run in parallel.

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	manager := configmanager.NewManager()
	env, err := manager.Load(newFlags(t, manager))

	require.NoError(t, err)
	assert.Equal(t, "playground", env.Spec.Cluster.Name)
	assert.Equal(t, 8080, env.Spec.Cluster.HTTPPort)
	assert.Equal(t, 2, env.Spec.Cluster.Agents)
	assert.Equal(t, v1alpha1.AddonEnabled, env.Spec.Addons.Monitoring.State)
	assert.Equal(t, 3*time.Minute, env.Spec.Timeouts.Readiness.Duration)
	assert.Empty(t, manager.Source())
}

func TestLoad_Precedence(t *testing.T) {
	t.Chdir(t.TempDir())

	path := writeConfig(t, `apiVersion: playground.dev/v1alpha1
kind: Environment
spec:
  cluster:
    name: from-file
    domain: file.local
    httpPort: 9000
  addons:
    dashboard:
      state: Disabled
`)

	t.Setenv("CLUSTER_DOMAIN", "env.local")
	t.Setenv("HTTP_PORT", "9100")
	t.Setenv("PLAYCTL_TAG", "from-env")

	manager := configmanager.NewManager()
	flags := newFlags(t, manager)
	require.NoError(t, flags.Parse([]string{"--config", path, "--http-port", "9200", "--readiness-timeout", "45s"}))

	env, err := manager.Load(flags)
	require.NoError(t, err)

	assert.Equal(t, "from-file", env.Spec.Cluster.Name, "file beats default")
	assert.Equal(t, "env.local", env.Spec.Cluster.Domain, "env beats file")
	assert.Equal(t, 9200, env.Spec.Cluster.HTTPPort, "flag beats env")
	assert.Equal(t, "from-env", env.Spec.App.Tag)
	assert.False(t, env.Spec.Addons.Dashboard.Enabled())
	assert.Equal(t, 45*time.Second, env.Spec.Timeouts.Readiness.Duration)
	assert.Equal(t, path, manager.Source())
}

func TestLoad_GitRepoFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GIT_REPO_URL", "https://github.com/example/albums.git")

	manager := configmanager.NewManager()
	env, err := manager.Load(newFlags(t, manager))

	require.NoError(t, err)
	assert.Equal(t, "https://github.com/example/albums.git", env.Spec.GitOps.RepoURL)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CLUSTER_NAME", "Not_Valid")

	manager := configmanager.NewManager()
	_, err := manager.Load(newFlags(t, manager))

	require.ErrorIs(t, err, v1alpha1.ErrClusterNameInvalid)

	cases := []struct {
		args []string
		want error
	}{
		{[]string{"--argocd=off"}, v1alpha1.ErrInvalidAddonState},
		{[]string{"--monitoring=false"}, v1alpha1.ErrInvalidAddonState},
		{[]string{"--load-strategy=scp"}, v1alpha1.ErrInvalidLoadStrategy},
		{[]string{"--agents=-3"}, v1alpha1.ErrInvalidNodeCount},
	}

	t.Setenv("CLUSTER_NAME", "")

	for _, tc := range cases {
		manager := configmanager.NewManager()
		flags := newFlags(t, manager)
		require.NoError(t, flags.Parse(tc.args))

		_, err := manager.Load(flags)

		require.ErrorIs(t, err, tc.want, tc.args)
	}
}

func TestLoad_NormalizesEnumCase(t *testing.T) {
	t.Chdir(t.TempDir())

	manager := configmanager.NewManager()
	flags := newFlags(t, manager)
	require.NoError(t, flags.Parse([]string{"--argocd=disabled", "--load-strategy=import"}))

	env, err := manager.Load(flags)

	require.NoError(t, err)
	assert.Equal(t, v1alpha1.AddonDisabled, env.Spec.Addons.ArgoCD.State)
	assert.False(t, env.Spec.Addons.ArgoCD.Enabled())
	assert.Equal(t, v1alpha1.LoadStrategyImport, env.Spec.App.LoadStrategy)
	assert.Equal(t, "albums:latest", env.InClusterImage())
}

func TestLoad_RejectsForeignKind(t *testing.T) {
	t.Chdir(t.TempDir())

	path := writeConfig(t, "apiVersion: k3d.io/v1alpha5\nkind: Simple\n")

	manager := configmanager.NewManager()
	flags := newFlags(t, manager)
	require.NoError(t, flags.Parse([]string{"--config", path}))

	_, err := manager.Load(flags)

	require.ErrorIs(t, err, configmanager.ErrUnexpectedTypeMeta)
}

func TestLoad_Caches(t *testing.T) {
	t.Chdir(t.TempDir())

	manager := configmanager.NewManager()
	flags := newFlags(t, manager)

	first, err := manager.Load(flags)
	require.NoError(t, err)

	second, err := manager.Load(flags)
	require.NoError(t, err)

	assert.Same(t, first, second)
}

package v1alpha1_test

import (
	"testing"

	"github.com/gitops-playground/playctl/pkg/apis/playground/v1alpha1"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*v1alpha1.Environment)
		want   error
	}{
		{"uppercase name", func(e *v1alpha1.Environment) { e.Spec.Cluster.Name = "Demo" }, v1alpha1.ErrClusterNameInvalid},
		{"bad domain", func(e *v1alpha1.Environment) { e.Spec.Cluster.Domain = "under_score" }, v1alpha1.ErrInvalidDomain},
		{"port too high", func(e *v1alpha1.Environment) { e.Spec.Cluster.HTTPPort = 70000 }, v1alpha1.ErrInvalidPort},
		{"same ports", func(e *v1alpha1.Environment) { e.Spec.Cluster.HTTPSPort = e.Spec.Cluster.HTTPPort }, v1alpha1.ErrPortConflict},
		{"registry on http port", func(e *v1alpha1.Environment) { e.Spec.Cluster.Registry.HostPort = 8080 }, v1alpha1.ErrPortConflict},
		{"no servers", func(e *v1alpha1.Environment) { e.Spec.Cluster.Servers = 0 }, v1alpha1.ErrInvalidNodeCount},
		{"negative agents", func(e *v1alpha1.Environment) { e.Spec.Cluster.Agents = -1 }, v1alpha1.ErrInvalidNodeCount},
		{"bad namespace", func(e *v1alpha1.Environment) { e.Spec.App.Namespace = "Albums" }, v1alpha1.ErrInvalidNamespace},
		{"unknown strategy", func(e *v1alpha1.Environment) { e.Spec.App.LoadStrategy = "ftp" }, v1alpha1.ErrInvalidLoadStrategy},
		{"lowercase typo strategy", func(e *v1alpha1.Environment) { e.Spec.App.LoadStrategy = "imports" }, v1alpha1.ErrInvalidLoadStrategy},
		{"addon off", func(e *v1alpha1.Environment) { e.Spec.Addons.ArgoCD.State = "off" }, v1alpha1.ErrInvalidAddonState},
		{"addon false", func(e *v1alpha1.Environment) { e.Spec.Addons.Monitoring.State = "false" }, v1alpha1.ErrInvalidAddonState},
		{"relative repo", func(e *v1alpha1.Environment) { e.Spec.GitOps.RepoURL = "org/repo" }, v1alpha1.ErrInvalidRepoURL},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			env := v1alpha1.NewEnvironment()
			tc.mutate(env)

			require.ErrorIs(t, env.Validate(), tc.want)
		})
	}
}

func TestValidate_AcceptsGitURLs(t *testing.T) {
	t.Parallel()

	for _, repo := range []string{
		"https://github.com/example/albums.git",
		"git@github.com:example/albums.git",
		"ssh://git@example.com/albums.git",
	} {
		env := v1alpha1.NewEnvironment()
		env.Spec.GitOps.RepoURL = repo

		require.NoError(t, env.Validate(), repo)
	}
}

func TestValidate_NormalizesEnumCase(t *testing.T) {
	t.Parallel()

	env := v1alpha1.NewEnvironment()
	env.Spec.App.LoadStrategy = "import"
	env.Spec.Addons.ArgoCD.State = "disabled"
	env.Spec.Addons.Dashboard.State = "ENABLED"

	require.NoError(t, env.Validate())

	require.Equal(t, v1alpha1.LoadStrategyImport, env.Spec.App.LoadStrategy)
	require.Equal(t, "albums:latest", env.InClusterImage())
	require.Equal(t, v1alpha1.AddonDisabled, env.Spec.Addons.ArgoCD.State)
	require.False(t, env.Spec.Addons.ArgoCD.Enabled())
	require.Equal(t, v1alpha1.AddonEnabled, env.Spec.Addons.Dashboard.State)
}

func TestSetDefaults_KeepsNegativeAgents(t *testing.T) {
	t.Parallel()

	env := &v1alpha1.Environment{}
	env.Spec.Cluster.Agents = -3
	env.SetDefaults()

	require.Equal(t, -3, env.Spec.Cluster.Agents)
	require.ErrorIs(t, env.Validate(), v1alpha1.ErrInvalidNodeCount)
}

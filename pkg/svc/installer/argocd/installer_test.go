package argocdinstaller_test

import (
	"context"
	"testing"

	"github.com/gitops-playground/playctl/pkg/apis/playground/v1alpha1"
	"github.com/gitops-playground/playctl/pkg/client/helm"
	"github.com/gitops-playground/playctl/pkg/k8s/readiness"
	argocdinstaller "github.com/gitops-playground/playctl/pkg/svc/installer/argocd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewInstaller(t *testing.T) {
	t.Parallel()

	installer, _ := newArgoCDInstallerWithDefaults(t)

	assert.Equal(t, "argocd", installer.Name())

	name, namespace := installer.Release()
	assert.Equal(t, "argocd", name)
	assert.Equal(t, "argocd", namespace)

	spec := installer.Spec()
	assert.Equal(t, argocdinstaller.ChartRef, spec.ChartName)
	assert.Empty(t, spec.RepoURL)
	assert.Equal(t, "argocd.playground.local", spec.SetValues["server.ingress.hostname"])
	assert.Equal(t, "argocd.playground.local", spec.SetValues["global.domain"])
	assert.Contains(t, spec.ValuesYaml, "server.insecure: true")
	assert.Contains(t, installer.Checks(), readiness.Check{
		Type: readiness.TypeDeployment, Namespace: "argocd", Name: "argocd-server",
	})
}

func TestNewInstaller_ChartVersionOverride(t *testing.T) {
	t.Parallel()

	env := v1alpha1.NewEnvironment()
	env.Spec.Addons.ArgoCD.ChartVersion = "7.0.0"

	installer := argocdinstaller.NewInstaller(helm.NewMockInterface(t), env)

	assert.Equal(t, "7.0.0", installer.Spec().Version)
}

func TestArgoCDInstallerInstallSuccess(t *testing.T) {
	t.Parallel()

	installer, client := newArgoCDInstallerWithDefaults(t)
	expectArgoCDInstall(t, client, nil)

	err := installer.Install(context.Background())
	require.NoError(t, err)
}

func TestArgoCDInstallerInstallError(t *testing.T) {
	t.Parallel()

	installer, client := newArgoCDInstallerWithDefaults(t)
	expectArgoCDInstall(t, client, assert.AnError)

	err := installer.Install(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to install argocd")
}

func TestArgoCDInstallerUninstallSuccess(t *testing.T) {
	t.Parallel()

	installer, client := newArgoCDInstallerWithDefaults(t)
	expectArgoCDUninstall(t, client, nil)

	err := installer.Uninstall(context.Background())

	require.NoError(t, err)
}

func TestArgoCDInstallerUninstallError(t *testing.T) {
	t.Parallel()

	installer, client := newArgoCDInstallerWithDefaults(t)
	expectArgoCDUninstall(t, client, assert.AnError)

	err := installer.Uninstall(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to uninstall argocd release")
}

func newArgoCDInstallerWithDefaults(
	t *testing.T,
) (*argocdinstaller.Installer, *helm.MockInterface) {
	t.Helper()

	client := helm.NewMockInterface(t)
	installer := argocdinstaller.NewInstaller(client, v1alpha1.NewEnvironment())

	return installer, client
}

// The chart is pulled by OCI reference, so no repository is added.
func expectArgoCDInstall(t *testing.T, client *helm.MockInterface, installErr error) {
	t.Helper()

	client.EXPECT().
		InstallOrUpgradeChart(
			mock.Anything,
			mock.MatchedBy(func(spec *helm.ChartSpec) bool {
				assert.Equal(t, "argocd", spec.ReleaseName)
				assert.Equal(t, "argocd", spec.Namespace)
				assert.True(t, spec.CreateNamespace)
				assert.True(t, spec.Wait)

				return true
			}),
		).
		Return(nil, installErr)
}

func expectArgoCDUninstall(t *testing.T, client *helm.MockInterface, err error) {
	t.Helper()

	client.EXPECT().
		UninstallRelease(mock.Anything, "argocd", "argocd").
		Return(err)
}

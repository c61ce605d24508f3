package dashboardinstaller_test

import (
	"context"
	"testing"

	"github.com/gitops-playground/playctl/pkg/apis/playground/v1alpha1"
	"github.com/gitops-playground/playctl/pkg/client/helm"
	dashboardinstaller "github.com/gitops-playground/playctl/pkg/svc/installer/dashboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDashboardInstaller_IngressHostFollowsDomain(t *testing.T) {
	t.Parallel()

	env := v1alpha1.NewEnvironment()
	env.Spec.Cluster.Domain = "demo.test"

	installer := dashboardinstaller.NewInstaller(helm.NewMockInterface(t), env)

	assert.Equal(t, "{dashboard.demo.test}", installer.Spec().SetValues["app.ingress.hosts"])

	values, err := helm.MergeValues(installer.Spec())
	require.NoError(t, err)

	app, ok := values["app"].(map[string]any)
	require.True(t, ok)

	ingress, ok := app["ingress"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"dashboard.demo.test"}, ingress["hosts"])
	assert.Equal(t, "nginx", ingress["ingressClassName"])
}

func TestDashboardInstaller_InstallAndUninstall(t *testing.T) {
	t.Parallel()

	client := helm.NewMockInterface(t)
	installer := dashboardinstaller.NewInstaller(client, v1alpha1.NewEnvironment())

	client.EXPECT().AddRepository(mock.Anything, mock.Anything, mock.Anything).Return(nil)
	client.EXPECT().InstallOrUpgradeChart(mock.Anything, installer.Spec()).Return(&helm.ReleaseInfo{}, nil)
	client.EXPECT().UninstallRelease(mock.Anything, "kubernetes-dashboard", "kubernetes-dashboard").Return(nil)

	require.NoError(t, installer.Install(context.Background()))
	require.NoError(t, installer.Uninstall(context.Background()))
	assert.Len(t, installer.Checks(), 4)
}

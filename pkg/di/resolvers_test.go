package di_test

import (
	"testing"

	"github.com/gitops-playground/playctl/pkg/client/argocd"
	"github.com/gitops-playground/playctl/pkg/client/docker"
	"github.com/gitops-playground/playctl/pkg/client/helm"
	"github.com/gitops-playground/playctl/pkg/di"
	"github.com/gitops-playground/playctl/pkg/k8s"
	clusterprovisioner "github.com/gitops-playground/playctl/pkg/svc/provisioner/cluster"
	"github.com/gitops-playground/playctl/pkg/utils/timer"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTimer(t *testing.T) {
	t.Parallel()

	injector := do.New()

	_, err := di.ResolveTimer(injector)
	require.ErrorContains(t, err, "resolve timer dependency")

	do.ProvideValue(injector, timer.New())

	tmr, err := di.ResolveTimer(injector)
	require.NoError(t, err)
	require.NotNil(t, tmr)
}

func TestResolveClusterProvisionerFactory(t *testing.T) {
	t.Parallel()

	injector := do.New()

	_, err := di.ResolveClusterProvisionerFactory(injector)
	require.ErrorContains(t, err, "resolve provisioner factory dependency")

	do.ProvideValue[clusterprovisioner.Factory](injector, clusterprovisioner.DefaultFactory{})

	factory, err := di.ResolveClusterProvisionerFactory(injector)
	require.NoError(t, err)
	assert.NotNil(t, factory)
}

// TestResolveServices_NamesTheMissingDependency drops one provider at a time.
func TestResolveServices_NamesTheMissingDependency(t *testing.T) {
	t.Parallel()

	providers := []struct {
		missing string
		provide di.Module
	}{
		{"timer", di.ProvideValue(timer.New())},
		{"provisioner factory", di.ProvideValue[clusterprovisioner.Factory](clusterprovisioner.DefaultFactory{})},
		{"helm factory", di.ProvideValue[helm.Factory](helm.DefaultFactory{})},
		{"kubernetes client factory", di.ProvideValue[k8s.ClientFactory](k8s.DefaultClientFactory{})},
		{"docker engine factory", di.ProvideValue(docker.EngineFactory(docker.NewEngine))},
		{"argocd factory", di.ProvideValue(di.ArgoCDFactory(func(*k8s.Clients) argocd.Manager { return nil }))},
	}

	for skip, tc := range providers {
		t.Run(tc.missing, func(t *testing.T) {
			t.Parallel()

			modules := make([]di.Module, 0, len(providers)-1)

			for i, p := range providers {
				if i != skip {
					modules = append(modules, p.provide)
				}
			}

			err := di.New(modules...).Invoke(func(injector di.Injector) error {
				_, err := di.ResolveServices(injector)

				return err
			})

			require.ErrorContains(t, err, "resolve "+tc.missing+" dependency")
		})
	}
}

func TestWithServices(t *testing.T) {
	t.Parallel()

	t.Run("resolves before the handler", func(t *testing.T) {
		t.Parallel()

		called := false
		wrapped := di.WithServices(func(_ *cobra.Command, services *di.Services) error {
			called = true

			assert.NotNil(t, services.Timer)

			return nil
		})

		err := di.NewRuntime().Invoke(func(injector di.Injector) error {
			return wrapped(&cobra.Command{}, injector)
		})

		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("skips the handler on resolve errors", func(t *testing.T) {
		t.Parallel()

		wrapped := di.WithServices(func(*cobra.Command, *di.Services) error {
			t.Fatal("handler must not run without services")

			return nil
		})

		require.Error(t, wrapped(&cobra.Command{}, do.New()))
	})
}

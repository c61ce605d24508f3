package installer_test

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gitops-playground/playctl/pkg/k8s/readiness"
	"github.com/gitops-playground/playctl/pkg/svc/installer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, call)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.calls...)
}

type fakeInstaller struct {
	name         string
	installErr   error
	uninstallErr error
	checks       []readiness.Check
	rec          *recorder
}

func (f *fakeInstaller) Name() string { return f.name }

func (f *fakeInstaller) Install(context.Context) error {
	f.rec.add("install " + f.name)

	return f.installErr
}

func (f *fakeInstaller) Uninstall(context.Context) error {
	f.rec.add("uninstall " + f.name)

	return f.uninstallErr
}

func (f *fakeInstaller) Checks() []readiness.Check { return f.checks }

func readyDeployment(namespace, name string) *appsv1.Deployment {
	return &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Namespace: namespace, Name: name},
		Status: appsv1.DeploymentStatus{
			Replicas:          1,
			UpdatedReplicas:   1,
			AvailableReplicas: 1,
		},
	}
}

func TestRun_SequentialOrder(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	installers := []installer.Installer{
		&fakeInstaller{name: "ingress-nginx", rec: rec},
		&fakeInstaller{name: "kubernetes-dashboard", rec: rec},
		&fakeInstaller{name: "argocd", rec: rec},
		&fakeInstaller{name: "kube-prometheus-stack", rec: rec},
	}

	var out bytes.Buffer

	err := installer.Run(context.Background(), installers, installer.Options{Out: &out})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"install ingress-nginx",
		"install kubernetes-dashboard",
		"install argocd",
		"install kube-prometheus-stack",
	}, rec.snapshot())
	assert.Contains(t, out.String(), "argocd installed")
}

func TestRun_StopsOnInstallError(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	installers := []installer.Installer{
		&fakeInstaller{name: "ingress-nginx", rec: rec, installErr: assert.AnError},
		&fakeInstaller{name: "argocd", rec: rec},
	}

	var out bytes.Buffer

	err := installer.Run(context.Background(), installers, installer.Options{Out: &out})

	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, []string{"install ingress-nginx"}, rec.snapshot())
}

func TestRun_ReadinessTimeoutIsDegraded(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	clientset := fake.NewClientset(readyDeployment("ingress-nginx", "ingress-nginx-controller"))
	installers := []installer.Installer{
		&fakeInstaller{
			name: "ingress-nginx", rec: rec,
			checks: []readiness.Check{
				{Type: readiness.TypeDeployment, Namespace: "ingress-nginx", Name: "ingress-nginx-controller"},
			},
		},
		&fakeInstaller{
			name: "argocd", rec: rec,
			checks: []readiness.Check{
				{Type: readiness.TypeDeployment, Namespace: "argocd", Name: "argocd-server"},
			},
		},
		&fakeInstaller{name: "kube-prometheus-stack", rec: rec},
	}

	var out bytes.Buffer

	err := installer.Run(context.Background(), installers, installer.Options{
		Clientset:        clientset,
		ReadinessTimeout: 100 * time.Millisecond,
		Out:              &out,
	})

	require.NoError(t, err)
	assert.Len(t, rec.snapshot(), 3)
	assert.Contains(t, out.String(), "argocd is installed but not ready")
	assert.Contains(t, out.String(), "kube-prometheus-stack installed")
}

func TestRun_StrictFailsOnReadinessTimeout(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	installers := []installer.Installer{
		&fakeInstaller{
			name: "argocd", rec: rec,
			checks: []readiness.Check{
				{Type: readiness.TypeDeployment, Namespace: "argocd", Name: "argocd-server"},
			},
		},
		&fakeInstaller{name: "kube-prometheus-stack", rec: rec},
	}

	var out bytes.Buffer

	err := installer.Run(context.Background(), installers, installer.Options{
		Clientset:        fake.NewClientset(),
		ReadinessTimeout: 100 * time.Millisecond,
		Strict:           true,
		Out:              &out,
	})

	require.ErrorIs(t, err, readiness.ErrTimeoutExceeded)
	assert.Equal(t, []string{"install argocd"}, rec.snapshot())
}

func TestRun_ParallelInstallsIngressFirst(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	installers := []installer.Installer{
		&fakeInstaller{name: "ingress-nginx", rec: rec},
		&fakeInstaller{name: "kubernetes-dashboard", rec: rec},
		&fakeInstaller{name: "argocd", rec: rec},
		&fakeInstaller{name: "kube-prometheus-stack", rec: rec},
	}

	var out bytes.Buffer

	err := installer.Run(context.Background(), installers, installer.Options{Out: &out, Parallel: true})

	require.NoError(t, err)

	calls := rec.snapshot()
	require.Len(t, calls, 4)
	assert.Equal(t, "install ingress-nginx", calls[0])
	assert.ElementsMatch(t, []string{
		"install kubernetes-dashboard",
		"install argocd",
		"install kube-prometheus-stack",
	}, calls[1:])
}

func TestRun_ParallelReportsFailure(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	installers := []installer.Installer{
		&fakeInstaller{name: "ingress-nginx", rec: rec},
		&fakeInstaller{name: "argocd", rec: rec, installErr: assert.AnError},
	}

	var out bytes.Buffer

	err := installer.Run(context.Background(), installers, installer.Options{Out: &out, Parallel: true})

	require.ErrorIs(t, err, assert.AnError)
	assert.True(t, strings.Contains(err.Error(), "argocd"))
}

func TestUninstall_ReverseOrderCollectsErrors(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	installers := []installer.Installer{
		&fakeInstaller{name: "ingress-nginx", rec: rec},
		&fakeInstaller{name: "argocd", rec: rec, uninstallErr: assert.AnError},
		&fakeInstaller{name: "kube-prometheus-stack", rec: rec},
	}

	var out bytes.Buffer

	err := installer.Uninstall(context.Background(), installers, &out)

	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, []string{
		"uninstall kube-prometheus-stack",
		"uninstall argocd",
		"uninstall ingress-nginx",
	}, rec.snapshot())
}

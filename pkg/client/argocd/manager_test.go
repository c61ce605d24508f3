package argocd_test

import (
	"context"
	"testing"
	"time"

	"github.com/gitops-playground/playctl/pkg/client/argocd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	dynamicfake "k8s.io/client-go/dynamic/fake"
	k8sfake "k8s.io/client-go/kubernetes/fake"
)

const repoURL = "https://github.com/example/gitops-playground.git"

type testManager struct {
	mgr       *argocd.ManagerImpl
	clientset *k8sfake.Clientset
	dyn       *dynamicfake.FakeDynamicClient
}

func newTestManager(t *testing.T, objects ...runtime.Object) testManager {
	t.Helper()

	clientset := k8sfake.NewClientset()
	dyn := dynamicfake.NewSimpleDynamicClientWithCustomListKinds(
		runtime.NewScheme(),
		map[schema.GroupVersionResource]string{argocd.ApplicationGVR: "ApplicationList"},
		objects...,
	)

	return testManager{
		mgr:       argocd.NewManager(clientset, dyn),
		clientset: clientset,
		dyn:       dyn,
	}
}

func getApplication(t *testing.T, tm testManager, name string) *unstructured.Unstructured {
	t.Helper()

	app, err := tm.dyn.Resource(argocd.ApplicationGVR).Namespace(argocd.Namespace).
		Get(context.Background(), name, metav1.GetOptions{})
	require.NoError(t, err)

	return app
}

func applicationWithStatus(name string, status map[string]any) *unstructured.Unstructured {
	return &unstructured.Unstructured{Object: map[string]any{
		"apiVersion": "argoproj.io/v1alpha1",
		"kind":       "Application",
		"metadata":   map[string]any{"name": name, "namespace": argocd.Namespace},
		"spec":       map[string]any{},
		"status":     status,
	}}
}

func TestManagerEnsure_CreatesApplication(t *testing.T) {
	t.Parallel()

	tm := newTestManager(t)

	err := tm.mgr.Ensure(context.Background(), argocd.EnsureOptions{RepositoryURL: repoURL})
	require.NoError(t, err)

	app := getApplication(t, tm, "albums")

	gotRepo, _, _ := unstructured.NestedString(app.Object, "spec", "source", "repoURL")
	gotPath, _, _ := unstructured.NestedString(app.Object, "spec", "source", "path")
	gotRevision, _, _ := unstructured.NestedString(app.Object, "spec", "source", "targetRevision")
	gotNamespace, _, _ := unstructured.NestedString(app.Object, "spec", "destination", "namespace")
	prune, _, _ := unstructured.NestedBool(app.Object, "spec", "syncPolicy", "automated", "prune")
	selfHeal, _, _ := unstructured.NestedBool(app.Object, "spec", "syncPolicy", "automated", "selfHeal")
	syncOptions, _, _ := unstructured.NestedStringSlice(app.Object, "spec", "syncPolicy", "syncOptions")

	assert.Equal(t, repoURL, gotRepo)
	assert.Equal(t, "deploy/manifests", gotPath)
	assert.Equal(t, "HEAD", gotRevision)
	assert.Equal(t, "albums", gotNamespace)
	assert.True(t, prune)
	assert.True(t, selfHeal)
	assert.Contains(t, syncOptions, "CreateNamespace=true")
}

func TestManagerEnsure_CreatesRepositorySecret(t *testing.T) {
	t.Parallel()

	tm := newTestManager(t)

	require.NoError(t, tm.mgr.Ensure(context.Background(), argocd.EnsureOptions{RepositoryURL: repoURL}))

	secrets, err := tm.clientset.CoreV1().Secrets(argocd.Namespace).List(context.Background(), metav1.ListOptions{})
	require.NoError(t, err)
	require.Len(t, secrets.Items, 1)

	secret := secrets.Items[0]
	assert.Equal(t, "repository", secret.Labels["argocd.argoproj.io/secret-type"])
	assert.Equal(t, "git", secret.StringData["type"])
	assert.Equal(t, repoURL, secret.StringData["url"])

	_, err = tm.clientset.CoreV1().Namespaces().Get(context.Background(), argocd.Namespace, metav1.GetOptions{})
	require.NoError(t, err)
}

func TestManagerEnsure_IsIdempotent(t *testing.T) {
	t.Parallel()

	tm := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, tm.mgr.Ensure(ctx, argocd.EnsureOptions{RepositoryURL: repoURL}))
	require.NoError(t, tm.mgr.Ensure(ctx, argocd.EnsureOptions{RepositoryURL: repoURL, TargetRevision: "main"}))

	app := getApplication(t, tm, "albums")
	revision, _, _ := unstructured.NestedString(app.Object, "spec", "source", "targetRevision")
	assert.Equal(t, "main", revision)

	secrets, err := tm.clientset.CoreV1().Secrets(argocd.Namespace).List(ctx, metav1.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, secrets.Items, 1)
}

func TestManagerEnsure_RequiresRepository(t *testing.T) {
	t.Parallel()

	tm := newTestManager(t)

	err := tm.mgr.Ensure(context.Background(), argocd.EnsureOptions{})
	require.ErrorIs(t, err, argocd.ErrRepositoryURLRequired)
}

func TestManagerRefresh_SetsAnnotation(t *testing.T) {
	t.Parallel()

	tm := newTestManager(t, applicationWithStatus("albums", map[string]any{}))

	require.NoError(t, tm.mgr.Refresh(context.Background(), "", true))

	app := getApplication(t, tm, "albums")
	assert.Equal(t, "hard", app.GetAnnotations()["argocd.argoproj.io/refresh"])
}

func TestManagerGetStatus(t *testing.T) {
	t.Parallel()

	t.Run("missing application", func(t *testing.T) {
		t.Parallel()

		status, err := newTestManager(t).mgr.GetStatus(context.Background(), "albums")
		require.NoError(t, err)
		assert.False(t, status.Present)
		assert.False(t, status.Ready())
	})

	t.Run("synced and healthy", func(t *testing.T) {
		t.Parallel()

		tm := newTestManager(t, applicationWithStatus("albums", map[string]any{
			"sync":   map[string]any{"status": "Synced", "revision": "abc123"},
			"health": map[string]any{"status": "Healthy"},
		}))

		status, err := tm.mgr.GetStatus(context.Background(), "albums")
		require.NoError(t, err)
		assert.True(t, status.Ready())
		assert.Equal(t, "abc123", status.Revision)
	})
}

func TestManagerWaitForSync(t *testing.T) {
	t.Parallel()

	t.Run("already synced", func(t *testing.T) {
		t.Parallel()

		tm := newTestManager(t, applicationWithStatus("albums", map[string]any{
			"sync":   map[string]any{"status": "Synced"},
			"health": map[string]any{"status": "Healthy"},
		}))

		require.NoError(t, tm.mgr.WaitForSync(context.Background(), "albums", 5*time.Second))
	})

	t.Run("source unavailable", func(t *testing.T) {
		t.Parallel()

		tm := newTestManager(t, applicationWithStatus("albums", map[string]any{
			"operationState": map[string]any{
				"phase":   "Failed",
				"message": "rpc error: repository not found",
			},
		}))

		err := tm.mgr.WaitForSync(context.Background(), "albums", 5*time.Second)
		require.ErrorIs(t, err, argocd.ErrSourceNotAvailable)
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()

		tm := newTestManager(t, applicationWithStatus("albums", map[string]any{
			"sync": map[string]any{"status": "OutOfSync"},
		}))

		err := tm.mgr.WaitForSync(context.Background(), "albums", 1500*time.Millisecond)
		require.ErrorIs(t, err, argocd.ErrSyncTimeout)
	})
}

func TestManagerDelete(t *testing.T) {
	t.Parallel()

	tm := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, tm.mgr.Ensure(ctx, argocd.EnsureOptions{RepositoryURL: repoURL}))
	require.NoError(t, tm.mgr.Delete(ctx, "albums", repoURL))
	require.NoError(t, tm.mgr.Delete(ctx, "albums", repoURL))

	secrets, err := tm.clientset.CoreV1().Secrets(argocd.Namespace).List(ctx, metav1.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, secrets.Items)
}

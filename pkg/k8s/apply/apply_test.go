package apply_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/gitops-playground/playctl/pkg/k8s/apply"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/types"
	dynamicfake "k8s.io/client-go/dynamic/fake"
	k8stesting "k8s.io/client-go/testing"
)

const manifests = `
apiVersion: v1
kind: Namespace
metadata:
  name: albums
---
# comment only
---
apiVersion: apps/v1
kind: Deployment
metadata:
  name: redis
  namespace: albums
spec:
  replicas: 1
---
apiVersion: v1
kind: Service
metadata:
  name: redis
spec:
  ports:
    - port: 6379
`

type recordedPatch struct {
	resource  string
	namespace string
	name      string
	patchType types.PatchType
	body      map[string]any
}

func newApplier(t *testing.T) (*apply.Applier, *[]recordedPatch) {
	t.Helper()

	mapper := meta.NewDefaultRESTMapper(nil)
	mapper.Add(schema.GroupVersionKind{Version: "v1", Kind: "Namespace"}, meta.RESTScopeRoot)
	mapper.Add(schema.GroupVersionKind{Version: "v1", Kind: "Service"}, meta.RESTScopeNamespace)
	mapper.Add(schema.GroupVersionKind{Group: "apps", Version: "v1", Kind: "Deployment"}, meta.RESTScopeNamespace)

	dyn := dynamicfake.NewSimpleDynamicClient(runtime.NewScheme())

	var (
		mu      sync.Mutex
		patches []recordedPatch
	)

	dyn.PrependReactor("patch", "*", func(action k8stesting.Action) (bool, runtime.Object, error) {
		patch, ok := action.(k8stesting.PatchAction)
		require.True(t, ok)

		var body map[string]any
		require.NoError(t, json.Unmarshal(patch.GetPatch(), &body))

		mu.Lock()
		defer mu.Unlock()

		patches = append(patches, recordedPatch{
			resource:  patch.GetResource().Resource,
			namespace: patch.GetNamespace(),
			name:      patch.GetName(),
			patchType: patch.GetPatchType(),
			body:      body,
		})

		return true, nil, nil
	})

	applier := apply.NewApplier(dyn, mapper)
	applier.DefaultNamespace = "albums"

	return applier, &patches
}

func TestDecode(t *testing.T) {
	t.Parallel()

	objects, err := apply.Decode([]byte(manifests))
	require.NoError(t, err)
	require.Len(t, objects, 3)
	assert.Equal(t, "Namespace", objects[0].GetKind())
	assert.Equal(t, "Deployment", objects[1].GetKind())
	assert.Equal(t, "Service", objects[2].GetKind())
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
		message string
	}{
		{name: "invalid yaml", input: "{invalid: [", message: "decode manifest document 0"},
		{name: "missing kind", input: "apiVersion: v1\nmetadata:\n  name: x\n", wantErr: apply.ErrMissingKind},
		{name: "missing name", input: "apiVersion: v1\nkind: ConfigMap\n", wantErr: apply.ErrMissingName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := apply.Decode([]byte(tt.input))
			require.Error(t, err)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}

			if tt.message != "" {
				assert.Contains(t, err.Error(), tt.message)
			}
		})
	}
}

func TestApply_ServerSideAppliesInOrder(t *testing.T) {
	t.Parallel()

	applier, patches := newApplier(t)

	refs, err := applier.Apply(context.Background(), []byte(manifests))
	require.NoError(t, err)

	require.Len(t, refs, 3)
	assert.Equal(t, "Namespace/albums", refs[0].String())
	assert.Equal(t, "Deployment/albums/redis", refs[1].String())
	assert.Equal(t, "Service/albums/redis", refs[2].String())

	require.Len(t, *patches, 3)

	for _, patch := range *patches {
		assert.Equal(t, types.ApplyPatchType, patch.patchType)
	}

	assert.Equal(t, "namespaces", (*patches)[0].resource)
	assert.Empty(t, (*patches)[0].namespace)
	assert.Equal(t, "deployments", (*patches)[1].resource)
	assert.Equal(t, "albums", (*patches)[1].namespace)

	metadata, ok := (*patches)[2].body["metadata"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "albums", metadata["namespace"], "default namespace is written into the object")
}

func TestApply_UnknownKind(t *testing.T) {
	t.Parallel()

	applier, patches := newApplier(t)

	_, err := applier.Apply(context.Background(), []byte(`
apiVersion: monitoring.coreos.com/v1
kind: ServiceMonitor
metadata:
  name: albums
`))
	require.Error(t, err)
	assert.True(t, meta.IsNoMatchError(err))
	assert.Empty(t, *patches)
}

func TestHasKind(t *testing.T) {
	t.Parallel()

	applier, _ := newApplier(t)

	found, err := applier.HasKind(schema.GroupVersionKind{Group: "apps", Version: "v1", Kind: "Deployment"})
	require.NoError(t, err)
	assert.True(t, found)

	found, err = applier.HasKind(schema.GroupVersionKind{
		Group: "monitoring.coreos.com", Version: "v1", Kind: "ServiceMonitor",
	})
	require.NoError(t, err)
	assert.False(t, found)
}

// Package apply server-side applies multi-document YAML through the dynamic client.
package apply

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/types"
	utilyaml "k8s.io/apimachinery/pkg/util/yaml"
	"k8s.io/client-go/dynamic"
	"k8s.io/utils/ptr"
)

// FieldManager owns every field playctl applies.
const FieldManager = "playctl"

const decoderBufferSize = 4096

var (
	// ErrMissingKind is returned for a document without kind.
	ErrMissingKind = errors.New("manifest document has no kind")
	// ErrMissingName is returned for a document without metadata.name.
	ErrMissingName = errors.New("manifest document has no metadata.name")
)

// Ref identifies an applied object.
type Ref struct {
	GVK       schema.GroupVersionKind
	Namespace string
	Name      string
}

// String renders the ref as kind/namespace/name.
func (r Ref) String() string {
	if r.Namespace == "" {
		return r.GVK.Kind + "/" + r.Name
	}

	return r.GVK.Kind + "/" + r.Namespace + "/" + r.Name
}

// Applier applies objects with server-side apply.
type Applier struct {
	dynamic dynamic.Interface
	mapper  meta.RESTMapper
	// DefaultNamespace is used for namespaced objects that do not set one.
	DefaultNamespace string
}

// NewApplier returns an applier that uses mapper to resolve kinds to resources.
func NewApplier(dyn dynamic.Interface, mapper meta.RESTMapper) *Applier {
	return &Applier{dynamic: dyn, mapper: mapper, DefaultNamespace: metav1.NamespaceDefault}
}

// Decode splits multi-document YAML or JSON into objects, skipping empty documents.
func Decode(manifests []byte) ([]*unstructured.Unstructured, error) {
	decoder := utilyaml.NewYAMLOrJSONDecoder(bytes.NewReader(manifests), decoderBufferSize)

	var objects []*unstructured.Unstructured

	for index := 0; ; index++ {
		var obj unstructured.Unstructured

		err := decoder.Decode(&obj.Object)
		if errors.Is(err, io.EOF) {
			return objects, nil
		}

		if err != nil {
			return nil, fmt.Errorf("decode manifest document %d: %w", index, err)
		}

		if len(obj.Object) == 0 {
			continue
		}

		if obj.GetKind() == "" {
			return nil, fmt.Errorf("document %d: %w", index, ErrMissingKind)
		}

		if obj.GetName() == "" {
			return nil, fmt.Errorf("document %d (%s): %w", index, obj.GetKind(), ErrMissingName)
		}

		objects = append(objects, &obj)
	}
}

// Apply decodes manifests and applies each object in document order.
func (a *Applier) Apply(ctx context.Context, manifests []byte) ([]Ref, error) {
	objects, err := Decode(manifests)
	if err != nil {
		return nil, err
	}

	refs := make([]Ref, 0, len(objects))

	for _, obj := range objects {
		ref, err := a.ApplyObject(ctx, obj)
		if err != nil {
			return refs, err
		}

		refs = append(refs, ref)
	}

	return refs, nil
}

// ApplyObject applies one object. Conflicts with other field managers are forced.
func (a *Applier) ApplyObject(ctx context.Context, obj *unstructured.Unstructured) (Ref, error) {
	gvk := obj.GroupVersionKind()
	ref := Ref{GVK: gvk, Namespace: obj.GetNamespace(), Name: obj.GetName()}

	mapping, err := a.restMapping(gvk)
	if err != nil {
		return ref, fmt.Errorf("apply %s: %w", ref, err)
	}

	resource := dynamic.ResourceInterface(a.dynamic.Resource(mapping.Resource))

	if mapping.Scope.Name() == meta.RESTScopeNameNamespace {
		if ref.Namespace == "" {
			ref.Namespace = a.DefaultNamespace
			obj.SetNamespace(ref.Namespace)
		}

		resource = a.dynamic.Resource(mapping.Resource).Namespace(ref.Namespace)
	} else {
		ref.Namespace = ""
	}

	data, err := obj.MarshalJSON()
	if err != nil {
		return ref, fmt.Errorf("marshal %s: %w", ref, err)
	}

	_, err = resource.Patch(ctx, ref.Name, types.ApplyPatchType, data, metav1.PatchOptions{
		FieldManager: FieldManager,
		Force:        ptr.To(true),
	})
	if err != nil {
		return ref, fmt.Errorf("server-side apply %s: %w", ref, err)
	}

	return ref, nil
}

// HasKind reports whether the cluster serves gvk, for example a CRD-backed kind.
func (a *Applier) HasKind(gvk schema.GroupVersionKind) (bool, error) {
	_, err := a.restMapping(gvk)
	if meta.IsNoMatchError(err) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("resolve %s: %w", gvk, err)
	}

	return true, nil
}

// restMapping retries once after a discovery reset so kinds from freshly installed CRDs
// are found.
func (a *Applier) restMapping(gvk schema.GroupVersionKind) (*meta.RESTMapping, error) {
	mapping, err := a.mapper.RESTMapping(gvk.GroupKind(), gvk.Version)
	if err == nil || !meta.IsNoMatchError(err) {
		return mapping, err
	}

	resettable, ok := a.mapper.(meta.ResettableRESTMapper)
	if !ok {
		return nil, err
	}

	resettable.Reset()

	return a.mapper.RESTMapping(gvk.GroupKind(), gvk.Version)
}

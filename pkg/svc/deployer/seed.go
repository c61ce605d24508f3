package deployer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/gitops-playground/playctl/deploy"
	"github.com/gitops-playground/playctl/pkg/apis/playground/v1alpha1"
	"github.com/gitops-playground/playctl/pkg/fsutil"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
)

// ErrInvalidSeed is returned when the seed file is not a JSON object of albums.
var ErrInvalidSeed = errors.New("seed data must be a JSON object keyed by album id")

// LoadSeed returns the configured seed file, or the embedded seed when none is set.
func LoadSeed(env *v1alpha1.Environment) ([]byte, error) {
	data := deploy.Seed()

	if path := env.Spec.App.SeedFile; path != "" {
		expanded, err := fsutil.ExpandHomePath(path)
		if err != nil {
			return nil, err
		}

		data, err = os.ReadFile(expanded)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	}

	var albums map[string]json.RawMessage
	if err := json.Unmarshal(data, &albums); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSeed, err)
	}

	return data, nil
}

// SeedConfigMap wraps the seed data in the ConfigMap mounted by the application.
func SeedConfigMap(env *v1alpha1.Environment, seed []byte) (*unstructured.Unstructured, error) {
	configMap := &corev1.ConfigMap{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "ConfigMap"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      SeedConfigMapName,
			Namespace: env.Spec.App.Namespace,
			Labels: map[string]string{
				"app.kubernetes.io/name":    SeedConfigMapName,
				"app.kubernetes.io/part-of": env.Spec.App.Name,
			},
		},
		Data: map[string]string{SeedKey: string(seed)},
	}

	content, err := runtime.DefaultUnstructuredConverter.ToUnstructured(configMap)
	if err != nil {
		return nil, fmt.Errorf("convert seed configmap: %w", err)
	}

	obj := &unstructured.Unstructured{Object: content}
	unstructured.RemoveNestedField(obj.Object, "metadata", "creationTimestamp")

	return obj, nil
}

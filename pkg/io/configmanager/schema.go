package configmanager

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/gitops-playground/playctl/pkg/apis/playground/v1alpha1"
	"github.com/invopop/jsonschema"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Schema returns the JSON schema of playctl.yaml.
func Schema() ([]byte, error) {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		Mapper:                    typeMapper,
	}

	schema := reflector.Reflect(&v1alpha1.Environment{})
	customizeSchema(schema)

	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return out, nil
}

func customizeSchema(schema *jsonschema.Schema) {
	schema.ID = ""
	schema.Title = "playctl Environment"
	schema.Description = "Configuration of a local GitOps playground (playctl.yaml)"

	// Every field has a default.
	walkSchema(schema, func(s *jsonschema.Schema) {
		s.Required = nil
	})

	if schema.Properties == nil {
		return
	}

	if p, ok := schema.Properties.Get("kind"); ok && p != nil {
		p.Enum = []any{v1alpha1.Kind}
	}

	if p, ok := schema.Properties.Get("apiVersion"); ok && p != nil {
		p.Enum = []any{v1alpha1.APIVersion}
	}
}

func walkSchema(schema *jsonschema.Schema, fn func(*jsonschema.Schema)) {
	if schema == nil {
		return
	}

	fn(schema)

	if schema.Properties != nil {
		for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
			walkSchema(pair.Value, fn)
		}
	}

	walkSchema(schema.Items, fn)
	walkSchema(schema.AdditionalProperties, fn)
}

// typeMapper renders EnumValuer types as string enums and metav1.Duration as a duration string.
func typeMapper(t reflect.Type) *jsonschema.Schema {
	enumValuer := reflect.TypeFor[v1alpha1.EnumValuer]()

	if reflect.PointerTo(t).Implements(enumValuer) {
		values := reflect.New(t).Interface().(v1alpha1.EnumValuer).ValidValues() //nolint:forcetypeassert // checked above

		enum := make([]any, len(values))
		for i, value := range values {
			enum[i] = value
		}

		return &jsonschema.Schema{Type: "string", Enum: enum}
	}

	if t == reflect.TypeFor[metav1.Duration]() {
		return &jsonschema.Schema{Type: "string", Pattern: `^([0-9]+(\.[0-9]+)?(ns|us|µs|ms|s|m|h))+$`}
	}

	return nil
}

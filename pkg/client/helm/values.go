package helm

import (
	"fmt"
	"maps"
	"slices"

	helmstrvals "helm.sh/helm/v4/pkg/strvals"
	"sigs.k8s.io/yaml"
)

// MergeValues turns a ChartSpec's ValuesYaml and SetValues into a values map.
// SetValues are applied in key order so the result is deterministic.
func MergeValues(spec *ChartSpec) (map[string]any, error) {
	values := map[string]any{}

	if spec.ValuesYaml != "" {
		if err := yaml.Unmarshal([]byte(spec.ValuesYaml), &values); err != nil {
			return nil, fmt.Errorf("parse values of %s: %w", spec.ReleaseName, err)
		}
	}

	for _, key := range slices.Sorted(maps.Keys(spec.SetValues)) {
		assignment := key + "=" + spec.SetValues[key]

		if err := helmstrvals.ParseInto(assignment, values); err != nil {
			return nil, fmt.Errorf("parse --set %s: %w", assignment, err)
		}
	}

	return values, nil
}

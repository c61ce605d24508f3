package deployer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gitops-playground/playctl/deploy"
	"github.com/gitops-playground/playctl/pkg/apis/playground/v1alpha1"
	"github.com/gitops-playground/playctl/pkg/envvar"
	"github.com/gitops-playground/playctl/pkg/fsutil"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// Template file names, applied in this order.
const (
	NamespaceManifest      = "00-namespace.yaml"
	RedisManifest          = "02-redis.yaml"
	AppManifest            = "03-albums.yaml"
	IngressManifest        = "04-ingress.yaml"
	ServiceMonitorManifest = "05-servicemonitor.yaml"
)

// SeedConfigMapName is the ConfigMap holding the album seed data.
const SeedConfigMapName = "albums-seed"

// SeedKey is the ConfigMap key the server reads the seed from.
const SeedKey = "albums.json"

//nolint:gochecknoglobals // GVK constant
var serviceMonitorGVK = schema.GroupVersionKind{
	Group:   "monitoring.coreos.com",
	Version: "v1",
	Kind:    "ServiceMonitor",
}

// step is one entry of the fixed apply order.
type step struct {
	name string
	// file is the template applied by the step. Empty for the seed ConfigMap.
	file string
	// waitFor names a Deployment that must become ready after the step.
	waitFor string
	// requires is a kind the cluster must serve, otherwise the step is skipped.
	requires *schema.GroupVersionKind
}

func steps(env *v1alpha1.Environment) []step {
	ordered := []step{
		{name: "namespace", file: NamespaceManifest},
		{name: "seed data"},
		{name: "redis", file: RedisManifest, waitFor: "redis"},
		{name: env.Spec.App.Name, file: AppManifest, waitFor: env.Spec.App.Name},
		{name: "ingress", file: IngressManifest},
	}

	if env.Spec.Addons.Monitoring.Enabled() {
		ordered = append(ordered, step{
			name:     "service monitor",
			file:     ServiceMonitorManifest,
			requires: &serviceMonitorGVK,
		})
	}

	return ordered
}

// Vars returns the placeholder values for the manifest templates.
func Vars(env *v1alpha1.Environment, image string) map[string]string {
	return map[string]string{
		"APP_NAME":       env.Spec.App.Name,
		"APP_NAMESPACE":  env.Spec.App.Namespace,
		"APP_IMAGE":      image,
		"APP_HOST":       env.Spec.Cluster.Host(env.Spec.App.Name),
		"SEED_CONFIGMAP": SeedConfigMapName,
	}
}

// source resolves templates from an override directory first and the embedded set second.
type source struct {
	override fs.FS
	embedded fs.FS
}

func newSource(env *v1alpha1.Environment) (*source, error) {
	src := &source{embedded: deploy.Templates()}

	if dir := env.Spec.App.ManifestsDir; dir != "" {
		expanded, err := fsutil.ExpandHomePath(dir)
		if err != nil {
			return nil, err
		}

		src.override = os.DirFS(expanded)
	}

	return src, nil
}

// Render reads the template name and expands its placeholders with vars. It also returns
// the placeholders that had no value and no default.
func (s *source) Render(name string, vars map[string]string) ([]byte, []string, error) {
	raw, err := s.read(name)
	if err != nil {
		return nil, nil, err
	}

	lookup := envvar.Vars(vars)

	return envvar.ExpandBytes(raw, lookup), envvar.Unresolved(string(raw), lookup), nil
}

func (s *source) read(name string) ([]byte, error) {
	if s.override != nil {
		data, err := fs.ReadFile(s.override, name)
		if err == nil {
			return data, nil
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read manifest %s: %w", name, err)
		}
	}

	data, err := fs.ReadFile(s.embedded, filepath.ToSlash(name))
	if err != nil {
		return nil, fmt.Errorf("read embedded manifest %s: %w", name, err)
	}

	return data, nil
}

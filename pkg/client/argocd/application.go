package argocd

import (
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

const (
	// Namespace is where Argo CD and its Applications live.
	Namespace = "argocd"

	defaultApplicationName      = "albums"
	defaultDestinationNamespace = "albums"
	defaultDestinationServer    = "https://kubernetes.default.svc"
	defaultProject              = "default"
	defaultSourcePath           = "deploy/manifests"
	defaultTargetRevision       = "HEAD"

	refreshAnnotationKey = "argocd.argoproj.io/refresh"
	hardRefresh          = "hard"
	normalRefresh        = "normal"
)

// ApplicationGVR is the resource of argoproj.io Applications.
//
//nolint:gochecknoglobals // immutable resource identifier
var ApplicationGVR = schema.GroupVersionResource{
	Group:    "argoproj.io",
	Version:  "v1alpha1",
	Resource: "applications",
}

func applicationName(name string) string {
	if name == "" {
		return defaultApplicationName
	}

	return name
}

func buildApplication(opts EnsureOptions) *unstructured.Unstructured {
	sourcePath := opts.Path
	if sourcePath == "" {
		sourcePath = defaultSourcePath
	}

	revision := opts.TargetRevision
	if revision == "" {
		revision = defaultTargetRevision
	}

	destination := opts.DestinationNamespace
	if destination == "" {
		destination = defaultDestinationNamespace
	}

	obj := map[string]any{
		"apiVersion": "argoproj.io/v1alpha1",
		"kind":       "Application",
		"metadata": map[string]any{
			"name":      applicationName(opts.ApplicationName),
			"namespace": Namespace,
			"labels": map[string]any{
				"app.kubernetes.io/managed-by": "playctl",
			},
		},
		"spec": map[string]any{
			"project": defaultProject,
			"source": map[string]any{
				"repoURL":        opts.RepositoryURL,
				"targetRevision": revision,
				"path":           sourcePath,
			},
			"destination": map[string]any{
				"server":    defaultDestinationServer,
				"namespace": destination,
			},
			"syncPolicy": map[string]any{
				"automated":   map[string]any{"prune": true, "selfHeal": true},
				"syncOptions": []any{"CreateNamespace=true"},
			},
		},
	}

	return &unstructured.Unstructured{Object: obj}
}

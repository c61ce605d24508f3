// Package k8s builds Kubernetes API clients for the playground cluster and holds the
// small helpers shared by the services talking to it.
package k8s

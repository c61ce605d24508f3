package k8s

import "errors"

// ErrKubeconfigPathEmpty is returned when no kubeconfig path could be determined.
var ErrKubeconfigPathEmpty = errors.New("kubeconfig path is empty")

// ErrNamespaceNotDeleted is returned when a namespace is still present after the deadline.
var ErrNamespaceNotDeleted = errors.New("namespace still terminating")

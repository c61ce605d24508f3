// Package argocd registers the albums sources with Argo CD and reports how the resulting
// Application is doing.
//
// The package never reads or prints the Argo CD admin credentials.
package argocd

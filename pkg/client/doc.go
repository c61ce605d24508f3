// Package client provides Go library wrappers for the tools playctl drives, so Docker is
// the only external requirement:
//
//   - argocd: Argo CD Application management through the dynamic client
//   - docker: Docker engine access for builds and preflight
//   - helm: Helm chart installation
//   - registry: the cluster registry catalog
//   - netretry: retry classification for transient network errors
package client

// Package deployer applies the application manifests to the playground cluster in a fixed
// order and exposes the result: the Argo CD server as a NodePort, the ingress host names
// in the hosts file and, when a Git repository is configured, an Argo CD Application.
package deployer

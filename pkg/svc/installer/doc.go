// Package installer installs the playground add-ons.
//
// Each add-on is one Helm release (ingress-nginx, the Kubernetes dashboard, Argo CD and
// kube-prometheus-stack) followed by readiness polling of its workloads. Run drives the
// installers in their fixed order, optionally installing everything after the ingress
// controller concurrently.
package installer

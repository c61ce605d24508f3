// Package smoketest probes the deployed albums application over a port-forward or through
// the ingress controller.
package smoketest

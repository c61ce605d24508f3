// Package readiness polls the Kubernetes API until nodes, workloads or the API server
// itself report ready.
//
// Every wait is bounded by a deadline. API errors seen while polling are treated as
// "not ready yet" so a flapping control plane does not abort a wait early.
package readiness

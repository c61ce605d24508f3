// Package status collects a read-only report of the playground: cluster, nodes, add-on
// releases, application workloads, the Argo CD Application and the registry image tags.
package status

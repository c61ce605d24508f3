// Package clusterprovisioner manages the lifecycle of the playground cluster.
//
// The only distribution is k3s running in Docker through k3d. The k3d subpackage drives
// k3d's own cobra commands in-process, so no k3d binary has to be installed.
package clusterprovisioner

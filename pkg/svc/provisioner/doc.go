// Package provisioner groups the provisioners of playground infrastructure.
//
//   - cluster: the k3d cluster and its registry
package provisioner

// Package svc holds the service layer of playctl: the pieces that coordinate the clients
// to carry out one playground stage each.
//
// Subpackages:
//   - provisioner/cluster: k3d cluster and registry lifecycle
//   - installer: Helm add-ons in their fixed order
//   - builder: application image build and load
//   - deployer: manifest apply, hosts entries and the Argo CD Application
//   - smoketest: HTTP probe of the deployed application
//   - status, cleanup, preflight, hosts
package svc

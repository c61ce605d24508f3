// Package cmd defines the playctl command tree.
//
// The commands mirror the playground make targets: infra setup and teardown, app build,
// deploy and test, status, clean, and all, which chains the others.
package cmd

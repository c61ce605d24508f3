// Package configmanager loads an Environment from defaults, an optional playctl.yaml,
// environment variables and command-line flags, in increasing order of precedence.
package configmanager

// Package playground contains the configuration API of playctl.
package playground

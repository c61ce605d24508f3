// Package helpers holds small utilities shared by the playctl commands.
package helpers

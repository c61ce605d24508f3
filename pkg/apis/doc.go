// Package apis contains the versioned configuration types of playctl.
//
//   - playground: the Environment read from playctl.yaml, the environment and flags
package apis

// Package cli wires the playctl command line.
//
//   - cli/cmd: the cobra command tree
//   - cli/lifecycle: the stages the commands run
//   - cli/helpers: flag helpers such as timing detection
//   - cli/ui: confirmation prompts and error hints
package cli

// Package lifecycle runs the playground stages behind the CLI commands.
//
// Every stage opens with a title, reports its activities and ends with a success line that
// carries the stage timing when timing output is enabled. Commands compose stages; the
// all command runs them back to back and stops at the first failure.
package lifecycle

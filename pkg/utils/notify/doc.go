// Package notify writes the user-facing output of playctl.
//
// Every line printed by a command starts with a symbol that tells the reader what kind of
// line it is: ► for work in progress, ✔ for a finished step, ⚠ for a degraded but
// non-fatal condition, ✗ for a failure and ℹ for plain information. Stage titles start
// with an emoji and are separated from the previous stage by a blank line when written
// through a [StageWriter].
//
// [ProgressGroup] runs several tasks concurrently and renders one status line per task.
package notify

// Package utils provides small utility packages used across playctl:
//
//   - notify: formatted, symbol-prefixed output
//   - timer: per-stage and total execution time
package utils

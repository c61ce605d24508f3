// Package fsutil provides utilities for filesystem operations.
//
// Key functionality:
//   - Path operations: ExpandHomePath
//   - File writing: WriteFileAtomic
package fsutil

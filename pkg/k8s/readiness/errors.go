package readiness

import "errors"

// ErrTimeoutExceeded is returned when a resource did not become ready before the deadline.
var ErrTimeoutExceeded = errors.New("timeout exceeded")

// ErrUnknownResourceType is returned for a Check with an unsupported Type.
var ErrUnknownResourceType = errors.New("unknown resource type")

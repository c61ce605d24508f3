package readiness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"
)

// PollInterval is the pause between two readiness probes.
const PollInterval = time.Second

// PollForReadiness calls probe until it returns true, returns an error, or deadline passes.
// The first probe runs immediately. Deadline expiry yields ErrTimeoutExceeded; context
// cancellation by the caller yields the context's error.
func PollForReadiness(
	ctx context.Context,
	deadline time.Duration,
	probe func(ctx context.Context) (bool, error),
) error {
	err := wait.PollUntilContextTimeout(ctx, PollInterval, deadline, true, probe)
	if err == nil {
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("readiness polling cancelled: %w", ctxErr)
	}

	if errors.Is(err, context.DeadlineExceeded) || wait.Interrupted(err) {
		return fmt.Errorf("%w after %s", ErrTimeoutExceeded, deadline)
	}

	return fmt.Errorf("readiness probe failed: %w", err)
}

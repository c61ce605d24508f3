package readiness

import (
	"context"
	"time"

	"k8s.io/client-go/kubernetes"
)

// WaitForAPIServerReady waits for the first successful /version call.
func WaitForAPIServerReady(ctx context.Context, clientset kubernetes.Interface, deadline time.Duration) error {
	return WaitForAPIServerStable(ctx, clientset, deadline, 1)
}

// WaitForAPIServerStable waits until /version succeeds the given number of times in a row.
// A k3s server right after start may answer once and then reset connections while its
// embedded datastore settles.
func WaitForAPIServerStable(
	ctx context.Context,
	clientset kubernetes.Interface,
	deadline time.Duration,
	consecutive int,
) error {
	consecutive = max(consecutive, 1)
	streak := 0

	return PollForReadiness(ctx, deadline, func(context.Context) (bool, error) {
		if _, err := clientset.Discovery().ServerVersion(); err != nil {
			streak = 0

			return false, nil //nolint:nilerr // keep polling
		}

		streak++

		return streak >= consecutive, nil
	})
}

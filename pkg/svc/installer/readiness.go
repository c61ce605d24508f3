package installer

import (
	"context"
	"fmt"
	"time"

	"github.com/gitops-playground/playctl/pkg/k8s/readiness"
	"k8s.io/client-go/kubernetes"
)

// WaitForResourceReadiness waits for multiple Kubernetes resources to become ready.
func WaitForResourceReadiness(
	ctx context.Context,
	clientset kubernetes.Interface,
	checks []readiness.Check,
	timeout time.Duration,
	componentName string,
) error {
	if len(checks) == 0 {
		return nil
	}

	err := readiness.WaitForMultipleResources(ctx, clientset, checks, timeout)
	if err != nil {
		return fmt.Errorf("wait for %s components: %w", componentName, err)
	}

	return nil
}

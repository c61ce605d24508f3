package readiness

import (
	"context"
	"fmt"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// Resource types understood by Check.
const (
	TypeDeployment  = "deployment"
	TypeDaemonSet   = "daemonset"
	TypeStatefulSet = "statefulset"
)

// Check names a workload to wait for.
type Check struct {
	Type      string
	Namespace string
	Name      string
}

func (c Check) String() string {
	return fmt.Sprintf("%s %s/%s", c.Type, c.Namespace, c.Name)
}

// WaitForDeploymentReady waits until the deployment's current generation is fully rolled out
// and available.
func WaitForDeploymentReady(
	ctx context.Context,
	clientset kubernetes.Interface,
	namespace, name string,
	deadline time.Duration,
) error {
	return PollForReadiness(ctx, deadline, func(ctx context.Context) (bool, error) {
		deployment, err := clientset.AppsV1().Deployments(namespace).Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			return false, nil //nolint:nilerr // keep polling, may not exist yet
		}

		return IsDeploymentReady(deployment), nil
	})
}

// IsDeploymentReady reports whether every desired replica is updated and available.
func IsDeploymentReady(deployment *appsv1.Deployment) bool {
	desired := int32(1)
	if deployment.Spec.Replicas != nil {
		desired = *deployment.Spec.Replicas
	}

	status := deployment.Status

	return status.ObservedGeneration >= deployment.Generation &&
		status.UpdatedReplicas >= desired &&
		status.AvailableReplicas >= desired &&
		status.Replicas == status.UpdatedReplicas
}

// WaitForDaemonSetReady waits until every scheduled daemon pod is updated and ready.
func WaitForDaemonSetReady(
	ctx context.Context,
	clientset kubernetes.Interface,
	namespace, name string,
	deadline time.Duration,
) error {
	return PollForReadiness(ctx, deadline, func(ctx context.Context) (bool, error) {
		daemonSet, err := clientset.AppsV1().DaemonSets(namespace).Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			return false, nil //nolint:nilerr // keep polling
		}

		return IsDaemonSetReady(daemonSet), nil
	})
}

// IsDaemonSetReady reports whether every scheduled daemon pod is updated and ready.
func IsDaemonSetReady(daemonSet *appsv1.DaemonSet) bool {
	status := daemonSet.Status

	return status.ObservedGeneration >= daemonSet.Generation &&
		status.DesiredNumberScheduled > 0 &&
		status.UpdatedNumberScheduled == status.DesiredNumberScheduled &&
		status.NumberReady == status.DesiredNumberScheduled
}

// WaitForStatefulSetReady waits until every replica of the stateful set is ready.
func WaitForStatefulSetReady(
	ctx context.Context,
	clientset kubernetes.Interface,
	namespace, name string,
	deadline time.Duration,
) error {
	return PollForReadiness(ctx, deadline, func(ctx context.Context) (bool, error) {
		statefulSet, err := clientset.AppsV1().StatefulSets(namespace).Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			return false, nil //nolint:nilerr // keep polling
		}

		return IsStatefulSetReady(statefulSet), nil
	})
}

// IsStatefulSetReady reports whether every replica of the stateful set is ready.
func IsStatefulSetReady(statefulSet *appsv1.StatefulSet) bool {
	desired := int32(1)
	if statefulSet.Spec.Replicas != nil {
		desired = *statefulSet.Spec.Replicas
	}

	return statefulSet.Status.ObservedGeneration >= statefulSet.Generation &&
		statefulSet.Status.ReadyReplicas >= desired
}

// WaitForMultipleResources waits for every check in order, sharing one overall deadline.
func WaitForMultipleResources(
	ctx context.Context,
	clientset kubernetes.Interface,
	checks []Check,
	deadline time.Duration,
) error {
	waitCtx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	for _, check := range checks {
		remaining := time.Until(deadlineOf(waitCtx))
		if remaining <= 0 {
			return fmt.Errorf("%s: %w after %s", check, ErrTimeoutExceeded, deadline)
		}

		var err error

		switch check.Type {
		case TypeDeployment:
			err = WaitForDeploymentReady(ctx, clientset, check.Namespace, check.Name, remaining)
		case TypeDaemonSet:
			err = WaitForDaemonSetReady(ctx, clientset, check.Namespace, check.Name, remaining)
		case TypeStatefulSet:
			err = WaitForStatefulSetReady(ctx, clientset, check.Namespace, check.Name, remaining)
		default:
			return fmt.Errorf("%w: %s", ErrUnknownResourceType, check.Type)
		}

		if err != nil {
			return fmt.Errorf("%s: %w", check, err)
		}
	}

	return nil
}

// Probe looks the workload up once and reports whether it is present and ready. Used by
// status reporting, which must not wait.
func Probe(ctx context.Context, clientset kubernetes.Interface, check Check) (bool, bool, error) {
	var (
		ready bool
		err   error
	)

	switch check.Type {
	case TypeDeployment:
		var deployment *appsv1.Deployment

		deployment, err = clientset.AppsV1().Deployments(check.Namespace).Get(ctx, check.Name, metav1.GetOptions{})
		if err == nil {
			ready = IsDeploymentReady(deployment)
		}
	case TypeDaemonSet:
		var daemonSet *appsv1.DaemonSet

		daemonSet, err = clientset.AppsV1().DaemonSets(check.Namespace).Get(ctx, check.Name, metav1.GetOptions{})
		if err == nil {
			ready = IsDaemonSetReady(daemonSet)
		}
	case TypeStatefulSet:
		var statefulSet *appsv1.StatefulSet

		statefulSet, err = clientset.AppsV1().StatefulSets(check.Namespace).Get(ctx, check.Name, metav1.GetOptions{})
		if err == nil {
			ready = IsStatefulSetReady(statefulSet)
		}
	default:
		return false, false, fmt.Errorf("%w: %s", ErrUnknownResourceType, check.Type)
	}

	if apierrors.IsNotFound(err) {
		return false, false, nil
	}

	if err != nil {
		return false, false, fmt.Errorf("get %s: %w", check, err)
	}

	return true, ready, nil
}

func deadlineOf(ctx context.Context) time.Time {
	deadline, _ := ctx.Deadline()

	return deadline
}

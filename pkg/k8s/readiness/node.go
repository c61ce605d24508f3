package readiness

import (
	"context"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// WaitForNodesReady waits until at least want nodes exist and every node is Ready.
func WaitForNodesReady(
	ctx context.Context,
	clientset kubernetes.Interface,
	want int,
	deadline time.Duration,
) error {
	return PollForReadiness(ctx, deadline, func(ctx context.Context) (bool, error) {
		nodes, err := clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
		if err != nil {
			return false, nil //nolint:nilerr // keep polling
		}

		if len(nodes.Items) < want {
			return false, nil
		}

		for i := range nodes.Items {
			if !IsNodeReady(&nodes.Items[i]) {
				return false, nil
			}
		}

		return true, nil
	})
}

// IsNodeReady reports whether the node's Ready condition is True.
func IsNodeReady(node *corev1.Node) bool {
	for _, cond := range node.Status.Conditions {
		if cond.Type == corev1.NodeReady {
			return cond.Status == corev1.ConditionTrue
		}
	}

	return false
}

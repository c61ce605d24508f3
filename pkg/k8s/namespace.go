package k8s

import (
	"context"
	"fmt"
	"maps"
	"time"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/client-go/kubernetes"
)

const namespacePollInterval = time.Second

// EnsureNamespace creates the namespace or merges labels into an existing one.
func EnsureNamespace(
	ctx context.Context,
	clientset kubernetes.Interface,
	name string,
	labels map[string]string,
) error {
	namespaces := clientset.CoreV1().Namespaces()

	existing, err := namespaces.Get(ctx, name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		_, err = namespaces.Create(ctx, &corev1.Namespace{
			ObjectMeta: metav1.ObjectMeta{Name: name, Labels: labels},
		}, metav1.CreateOptions{})
		if err != nil && !apierrors.IsAlreadyExists(err) {
			return fmt.Errorf("create namespace %s: %w", name, err)
		}

		return nil
	}

	if err != nil {
		return fmt.Errorf("get namespace %s: %w", name, err)
	}

	if len(labels) == 0 {
		return nil
	}

	merged := maps.Clone(existing.Labels)
	if merged == nil {
		merged = map[string]string{}
	}

	maps.Copy(merged, labels)

	if maps.Equal(merged, existing.Labels) {
		return nil
	}

	existing.Labels = merged

	if _, err := namespaces.Update(ctx, existing, metav1.UpdateOptions{}); err != nil {
		return fmt.Errorf("update namespace %s labels: %w", name, err)
	}

	return nil
}

// DeleteNamespace deletes the namespace and waits up to timeout for it to disappear.
// A namespace that does not exist is not an error.
func DeleteNamespace(
	ctx context.Context,
	clientset kubernetes.Interface,
	name string,
	timeout time.Duration,
) error {
	namespaces := clientset.CoreV1().Namespaces()

	err := namespaces.Delete(ctx, name, metav1.DeleteOptions{})
	if apierrors.IsNotFound(err) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("delete namespace %s: %w", name, err)
	}

	err = wait.PollUntilContextTimeout(ctx, namespacePollInterval, timeout, true,
		func(ctx context.Context) (bool, error) {
			_, getErr := namespaces.Get(ctx, name, metav1.GetOptions{})

			return apierrors.IsNotFound(getErr), nil
		})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrNamespaceNotDeleted, name, err)
	}

	return nil
}

package argocd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gitops-playground/playctl/pkg/k8s"
	"github.com/gitops-playground/playctl/pkg/k8s/readiness"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/util/retry"
)

var (
	// ErrRepositoryURLRequired is returned when Ensure is called without a repository.
	ErrRepositoryURLRequired = errors.New("repository url is required")
	// ErrSyncTimeout is returned when an Application does not become synced and healthy in time.
	ErrSyncTimeout = errors.New("timeout waiting for argocd application sync")
	// ErrSourceNotAvailable is returned when Argo CD cannot fetch the repository.
	ErrSourceNotAvailable = errors.New("argocd cannot fetch the application source")
	// ErrOperationFailed is returned when the last sync operation failed.
	ErrOperationFailed = errors.New("argocd operation failed")
)

// Manager registers and inspects Argo CD Applications. Implementations are idempotent.
type Manager interface {
	Ensure(ctx context.Context, opts EnsureOptions) error
	Refresh(ctx context.Context, name string, hard bool) error
	GetStatus(ctx context.Context, name string) (Status, error)
	WaitForSync(ctx context.Context, name string, timeout time.Duration) error
	Delete(ctx context.Context, name, repositoryURL string) error
}

// EnsureOptions describes the Git source of an Application.
type EnsureOptions struct {
	ApplicationName string
	// RepositoryURL is an https:// or git@ URL.
	RepositoryURL string
	// Path inside the repository. Defaults to deploy/manifests.
	Path string
	// TargetRevision defaults to HEAD.
	TargetRevision string
	// DestinationNamespace defaults to albums.
	DestinationNamespace string
}

// Status is a short summary of one Application.
type Status struct {
	Present  bool
	Sync     string
	Health   string
	Revision string
	Message  string
}

// Ready reports whether the Application is synced and healthy.
func (s Status) Ready() bool {
	return s.Present && s.Sync == "Synced" && s.Health == "Healthy"
}

// ManagerImpl implements Manager with typed and dynamic Kubernetes clients.
type ManagerImpl struct {
	clientset kubernetes.Interface
	dynamic   dynamic.Interface
}

var _ Manager = (*ManagerImpl)(nil)

// NewManager creates a manager using provided Kubernetes clients.
func NewManager(clientset kubernetes.Interface, dyn dynamic.Interface) *ManagerImpl {
	return &ManagerImpl{clientset: clientset, dynamic: dyn}
}

// Ensure creates or updates the repository Secret and the Application.
func (m *ManagerImpl) Ensure(ctx context.Context, opts EnsureOptions) error {
	if opts.RepositoryURL == "" {
		return ErrRepositoryURLRequired
	}

	err := k8s.EnsureNamespace(ctx, m.clientset, Namespace, nil)
	if err != nil {
		return err
	}

	err = m.upsertRepositorySecret(ctx, opts.RepositoryURL)
	if err != nil {
		return err
	}

	return m.upsertApplication(ctx, opts)
}

// Refresh asks Argo CD to re-read the source. Conflicts with the controller are retried.
func (m *ManagerImpl) Refresh(ctx context.Context, name string, hard bool) error {
	name = applicationName(name)
	apps := m.applications()

	return retry.RetryOnConflict(retry.DefaultRetry, func() error {
		app, err := apps.Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			return fmt.Errorf("get argocd application %s: %w", name, err)
		}

		annotations := app.GetAnnotations()
		if annotations == nil {
			annotations = map[string]string{}
		}

		annotations[refreshAnnotationKey] = normalRefresh
		if hard {
			annotations[refreshAnnotationKey] = hardRefresh
		}

		app.SetAnnotations(annotations)

		_, err = apps.Update(ctx, app, metav1.UpdateOptions{})
		if err != nil {
			return fmt.Errorf("refresh argocd application %s: %w", name, err)
		}

		return nil
	})
}

// GetStatus reads sync and health of an Application. A missing Application is reported
// with Present false and no error.
func (m *ManagerImpl) GetStatus(ctx context.Context, name string) (Status, error) {
	name = applicationName(name)

	app, err := m.applications().Get(ctx, name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		return Status{Message: "application not registered"}, nil
	}

	if err != nil {
		return Status{}, fmt.Errorf("get argocd application %s: %w", name, err)
	}

	return statusOf(app), nil
}

// WaitForSync polls until the Application is synced and healthy, its last operation
// failed, or timeout elapses.
func (m *ManagerImpl) WaitForSync(ctx context.Context, name string, timeout time.Duration) error {
	name = applicationName(name)
	apps := m.applications()

	err := readiness.PollForReadiness(ctx, timeout, func(ctx context.Context) (bool, error) {
		app, err := apps.Get(ctx, name, metav1.GetOptions{})
		if apierrors.IsNotFound(err) {
			return false, nil
		}

		if err != nil {
			return false, fmt.Errorf("get argocd application %s: %w", name, err)
		}

		if err := checkOperationState(app); err != nil {
			return false, err
		}

		if err := checkConditions(app); err != nil {
			return false, err
		}

		return statusOf(app).Ready(), nil
	})
	if errors.Is(err, readiness.ErrTimeoutExceeded) {
		return fmt.Errorf("%w: %s", ErrSyncTimeout, name)
	}

	return err
}

// Delete removes the Application and its repository Secret. Missing objects are ignored.
func (m *ManagerImpl) Delete(ctx context.Context, name, repositoryURL string) error {
	name = applicationName(name)

	err := m.applications().Delete(ctx, name, metav1.DeleteOptions{})
	if err != nil && !apierrors.IsNotFound(err) {
		return fmt.Errorf("delete argocd application %s: %w", name, err)
	}

	if repositoryURL == "" {
		return nil
	}

	err = m.clientset.CoreV1().Secrets(Namespace).
		Delete(ctx, repositorySecretName(repositoryURL), metav1.DeleteOptions{})
	if err != nil && !apierrors.IsNotFound(err) {
		return fmt.Errorf("delete repository secret: %w", err)
	}

	return nil
}

func (m *ManagerImpl) applications() dynamic.ResourceInterface {
	return m.dynamic.Resource(ApplicationGVR).Namespace(Namespace)
}

func (m *ManagerImpl) upsertRepositorySecret(ctx context.Context, repositoryURL string) error {
	desired := buildRepositorySecret(repositoryURL)
	secrets := m.clientset.CoreV1().Secrets(Namespace)

	existing, err := secrets.Get(ctx, desired.Name, metav1.GetOptions{})
	if err != nil {
		if !apierrors.IsNotFound(err) {
			return fmt.Errorf("get repository secret: %w", err)
		}

		_, err = secrets.Create(ctx, desired, metav1.CreateOptions{})
		if err != nil {
			return fmt.Errorf("create repository secret: %w", err)
		}

		return nil
	}

	desired.ResourceVersion = existing.ResourceVersion

	_, err = secrets.Update(ctx, desired, metav1.UpdateOptions{})
	if err != nil {
		return fmt.Errorf("update repository secret: %w", err)
	}

	return nil
}

func (m *ManagerImpl) upsertApplication(ctx context.Context, opts EnsureOptions) error {
	desired := buildApplication(opts)
	name := desired.GetName()
	apps := m.applications()

	existing, err := apps.Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if !apierrors.IsNotFound(err) {
			return fmt.Errorf("get argocd application %s: %w", name, err)
		}

		_, err = apps.Create(ctx, desired, metav1.CreateOptions{})
		if err != nil {
			return fmt.Errorf("create argocd application %s: %w", name, err)
		}

		return nil
	}

	desired.SetResourceVersion(existing.GetResourceVersion())

	_, err = apps.Update(ctx, desired, metav1.UpdateOptions{})
	if err != nil {
		return fmt.Errorf("update argocd application %s: %w", name, err)
	}

	return nil
}

func statusOf(app *unstructured.Unstructured) Status {
	sync, _, _ := unstructured.NestedString(app.Object, "status", "sync", "status")
	health, _, _ := unstructured.NestedString(app.Object, "status", "health", "status")
	revision, _, _ := unstructured.NestedString(app.Object, "status", "sync", "revision")
	message, _, _ := unstructured.NestedString(app.Object, "status", "operationState", "message")

	return Status{
		Present:  true,
		Sync:     sync,
		Health:   health,
		Revision: revision,
		Message:  message,
	}
}

func checkOperationState(app *unstructured.Unstructured) error {
	phase, _, _ := unstructured.NestedString(app.Object, "status", "operationState", "phase")
	if phase != "Error" && phase != "Failed" {
		return nil
	}

	message, _, _ := unstructured.NestedString(app.Object, "status", "operationState", "message")
	if isSourceRelatedError(message) {
		return fmt.Errorf("%w: %s", ErrSourceNotAvailable, message)
	}

	return fmt.Errorf("%w: %s", ErrOperationFailed, message)
}

func checkConditions(app *unstructured.Unstructured) error {
	conditions, _, _ := unstructured.NestedSlice(app.Object, "status", "conditions")

	for _, condition := range conditions {
		condMap, ok := condition.(map[string]any)
		if !ok {
			continue
		}

		condType, _, _ := unstructured.NestedString(condMap, "type")
		message, _, _ := unstructured.NestedString(condMap, "message")

		if (condType == "ComparisonError" || condType == "SyncError") && isSourceRelatedError(message) {
			return fmt.Errorf("%w: %s", ErrSourceNotAvailable, message)
		}
	}

	return nil
}

func isSourceRelatedError(message string) bool {
	lower := strings.ToLower(message)

	for _, pattern := range []string{
		"repository not found",
		"authentication required",
		"unable to resolve",
		"failed to fetch",
		"does not exist",
		"connection refused",
	} {
		if strings.Contains(lower, pattern) {
			return true
		}
	}

	return false
}

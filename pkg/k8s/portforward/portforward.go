// Package portforward forwards a local port to a ready pod behind a Service.
package portforward

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/portforward"
	"k8s.io/client-go/transport/spdy"
)

var (
	// ErrNoReadyPod is returned when no ready pod backs the Service.
	ErrNoReadyPod = errors.New("no ready pod backs the service")
	// ErrServicePortNotFound is returned when the Service does not expose the port.
	ErrServicePortNotFound = errors.New("service does not expose port")
	// ErrNoSelector is returned for Services without a pod selector.
	ErrNoSelector = errors.New("service has no selector")

	errNoForwardedPort = errors.New("forwarder reported no ports")
)

// Target is the pod and container port a Service port resolves to.
type Target struct {
	Pod  string
	Port int
}

// ResolveTarget picks a ready pod selected by the Service and maps servicePort to the
// container port, resolving named target ports through the pod spec.
func ResolveTarget(
	ctx context.Context,
	clientset kubernetes.Interface,
	namespace, service string,
	servicePort int,
) (Target, error) {
	svc, err := clientset.CoreV1().Services(namespace).Get(ctx, service, metav1.GetOptions{})
	if err != nil {
		return Target{}, fmt.Errorf("get service %s/%s: %w", namespace, service, err)
	}

	if len(svc.Spec.Selector) == 0 {
		return Target{}, fmt.Errorf("%w: %s/%s", ErrNoSelector, namespace, service)
	}

	var targetPort *intstr.IntOrString

	for _, port := range svc.Spec.Ports {
		if int(port.Port) == servicePort {
			targetPort = &port.TargetPort

			break
		}
	}

	if targetPort == nil {
		return Target{}, fmt.Errorf("%w: %s/%s:%d", ErrServicePortNotFound, namespace, service, servicePort)
	}

	pods, err := clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{
		LabelSelector: labels.SelectorFromSet(svc.Spec.Selector).String(),
	})
	if err != nil {
		return Target{}, fmt.Errorf("list pods for %s/%s: %w", namespace, service, err)
	}

	for i := range pods.Items {
		pod := &pods.Items[i]
		if !isPodReady(pod) {
			continue
		}

		port, ok := containerPort(pod, *targetPort, servicePort)
		if ok {
			return Target{Pod: pod.Name, Port: port}, nil
		}
	}

	return Target{}, fmt.Errorf("%w: %s/%s", ErrNoReadyPod, namespace, service)
}

func isPodReady(pod *corev1.Pod) bool {
	if pod.Status.Phase != corev1.PodRunning || pod.DeletionTimestamp != nil {
		return false
	}

	for _, condition := range pod.Status.Conditions {
		if condition.Type == corev1.PodReady {
			return condition.Status == corev1.ConditionTrue
		}
	}

	return false
}

func containerPort(pod *corev1.Pod, target intstr.IntOrString, servicePort int) (int, bool) {
	if target.Type == intstr.Int {
		if target.IntVal == 0 {
			return servicePort, true
		}

		return int(target.IntVal), true
	}

	for _, container := range pod.Spec.Containers {
		for _, port := range container.Ports {
			if port.Name == target.StrVal {
				return int(port.ContainerPort), true
			}
		}
	}

	return 0, false
}

// Session is a running port-forward. It stops on Close or when the context given to
// Start is cancelled.
type Session struct {
	LocalPort int

	stop     chan struct{}
	stopOnce sync.Once
	finished chan struct{}
	err      error
}

// forwarder is the part of *portforward.PortForwarder a Session drives.
type forwarder interface {
	ForwardPorts() error
	GetPorts() ([]portforward.ForwardedPort, error)
}

func newSession() *Session {
	return &Session{stop: make(chan struct{}), finished: make(chan struct{})}
}

// Close stops forwarding and waits for the forwarder to exit. Every call returns the
// forwarder's result.
func (s *Session) Close() error {
	s.halt()
	<-s.finished

	if s.err != nil {
		return fmt.Errorf("port-forward: %w", s.err)
	}

	return nil
}

func (s *Session) halt() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// serve runs fw until it reports ready, records the local port and then stops fw when
// ctx is done.
func (s *Session) serve(ctx context.Context, fw forwarder, ready <-chan struct{}) error {
	go func() {
		s.err = fw.ForwardPorts()
		close(s.finished)
	}()

	select {
	case <-ready:
	case <-s.finished:
		if s.err == nil {
			return errNoForwardedPort
		}

		return s.err
	case <-ctx.Done():
		s.halt()
		<-s.finished

		return ctx.Err()
	}

	ports, err := fw.GetPorts()
	if err == nil && len(ports) == 0 {
		err = errNoForwardedPort
	}

	if err != nil {
		_ = s.Close()

		return fmt.Errorf("read forwarded port: %w", err)
	}

	s.LocalPort = int(ports[0].Local)

	go func() {
		select {
		case <-ctx.Done():
			s.halt()
		case <-s.finished:
		}
	}()

	return nil
}

// Start forwards a random local port on 127.0.0.1 to servicePort of the Service.
// Forwarder chatter goes to out.
func Start(
	ctx context.Context,
	config *rest.Config,
	clientset kubernetes.Interface,
	namespace, service string,
	servicePort int,
	out io.Writer,
) (*Session, error) {
	target, err := ResolveTarget(ctx, clientset, namespace, service, servicePort)
	if err != nil {
		return nil, err
	}

	roundTripper, upgrader, err := spdy.RoundTripperFor(config)
	if err != nil {
		return nil, fmt.Errorf("build spdy transport: %w", err)
	}

	url := clientset.CoreV1().RESTClient().Post().
		Resource("pods").
		Namespace(namespace).
		Name(target.Pod).
		SubResource("portforward").
		URL()

	dialer := spdy.NewDialer(upgrader, &http.Client{Transport: roundTripper}, http.MethodPost, url)

	session := newSession()
	ready := make(chan struct{})

	fw, err := portforward.NewOnAddresses(
		dialer,
		[]string{"127.0.0.1"},
		[]string{fmt.Sprintf("0:%d", target.Port)},
		session.stop,
		ready,
		out,
		out,
	)
	if err != nil {
		return nil, fmt.Errorf("create port-forward to %s/%s: %w", namespace, target.Pod, err)
	}

	if err := session.serve(ctx, fw, ready); err != nil {
		return nil, fmt.Errorf("port-forward to %s/%s: %w", namespace, target.Pod, err)
	}

	return session, nil
}

package smoketest

import (
	"context"
	"fmt"
	"io"
	"net"
	"strconv"

	"github.com/gitops-playground/playctl/pkg/k8s/portforward"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
)

// Endpoint is where the probes are sent.
type Endpoint struct {
	// BaseURL is scheme and authority, without a trailing slash.
	BaseURL string
	// Host overrides the Host header when set.
	Host string
}

// Dialer opens an Endpoint. The returned closer releases whatever the endpoint holds.
type Dialer interface {
	Dial(ctx context.Context) (Endpoint, io.Closer, error)
}

// PortForward reaches the Service through a port-forward to one of its ready pods.
type PortForward struct {
	Config    *rest.Config
	Clientset kubernetes.Interface
	Namespace string
	Service   string
	Port      int
	Out       io.Writer
}

// Dial starts the port-forward.
func (p PortForward) Dial(ctx context.Context) (Endpoint, io.Closer, error) {
	out := p.Out
	if out == nil {
		out = io.Discard
	}

	session, err := portforward.Start(ctx, p.Config, p.Clientset, p.Namespace, p.Service, p.Port, out)
	if err != nil {
		return Endpoint{}, nil, fmt.Errorf("forward to service %s/%s: %w", p.Namespace, p.Service, err)
	}

	return Endpoint{BaseURL: "http://" + net.JoinHostPort("127.0.0.1", strconv.Itoa(session.LocalPort))}, session, nil
}

// Ingress reaches the application through the cluster load balancer on the host.
type Ingress struct {
	Address string
	Port    int
	Host    string
}

// Dial returns the load balancer endpoint. Nothing needs closing.
func (i Ingress) Dial(context.Context) (Endpoint, io.Closer, error) {
	address := i.Address
	if address == "" {
		address = "127.0.0.1"
	}

	return Endpoint{
		BaseURL: "http://" + net.JoinHostPort(address, strconv.Itoa(i.Port)),
		Host:    i.Host,
	}, noClose{}, nil
}

type noClose struct{}

func (noClose) Close() error { return nil }

package k8s

import (
	"fmt"

	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/client-go/discovery/cached/memory"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/restmapper"
)

// Clients bundles the typed, dynamic and mapping clients for one cluster.
type Clients struct {
	Config    *rest.Config
	Clientset kubernetes.Interface
	Dynamic   dynamic.Interface
	Mapper    meta.ResettableRESTMapper
}

// ClientFactory creates Clients for a kubeconfig path and context.
type ClientFactory interface {
	ForContext(kubeconfig, kubeContext string) (*Clients, error)
}

// DefaultClientFactory builds real clients from kubeconfig files.
type DefaultClientFactory struct{}

// ForContext implements ClientFactory.
func (DefaultClientFactory) ForContext(kubeconfig, kubeContext string) (*Clients, error) {
	return NewClients(ResolveKubeconfigPath(kubeconfig), kubeContext)
}

// NewClients builds every client from a single REST config.
func NewClients(kubeconfig, kubeContext string) (*Clients, error) {
	config, err := BuildRESTConfig(kubeconfig, kubeContext)
	if err != nil {
		return nil, err
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("create clientset: %w", err)
	}

	dynamicClient, err := dynamic.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("create dynamic client: %w", err)
	}

	mapper := restmapper.NewDeferredDiscoveryRESTMapper(memory.NewMemCacheClient(clientset.Discovery()))

	return &Clients{
		Config:    config,
		Clientset: clientset,
		Dynamic:   dynamicClient,
		Mapper:    mapper,
	}, nil
}

package lifecycle

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gitops-playground/playctl/pkg/svc/builder"
	"github.com/gitops-playground/playctl/pkg/svc/deployer"
	"github.com/gitops-playground/playctl/pkg/svc/smoketest"
	"github.com/gitops-playground/playctl/pkg/utils/notify"
)

// appServicePort is the port of the albums Service in the bundled manifests.
const appServicePort = 80

// BuildOptions tune BuildApp.
type BuildOptions struct {
	NoCache bool
}

// DeployOptions tune DeployApp.
type DeployOptions struct {
	// Image overrides the reference written into the Deployment.
	Image  string
	Strict bool
}

// TestOptions tune TestApp.
type TestOptions struct {
	// ViaIngress calls the ingress on the HTTP host port instead of port-forwarding.
	ViaIngress bool
	Key        string
	Expect     string
	// Timeout bounds each probe. Zero uses the readiness timeout.
	Timeout time.Duration
}

// BuildApp builds the application image and loads it into the cluster.
func (p *Playground) BuildApp(ctx context.Context, opts BuildOptions) (builder.Result, error) {
	tmr := p.begin("📦", "Build application")

	provisioner, err := p.requireCluster(ctx)
	if err != nil {
		return builder.Result{}, err
	}

	engine, err := p.Services.Docker()
	if err != nil {
		return builder.Result{}, fmt.Errorf("open docker client: %w", err)
	}
	defer func() { _ = engine.Close() }()

	result, err := builder.New(engine, provisioner, p.Env, p.out(), builder.WithNoCache(opts.NoCache)).Run(ctx)
	if err != nil {
		return builder.Result{}, fmt.Errorf("build %s: %w", p.Env.Spec.App.ImageRef(), err)
	}

	if result.Digest != "" {
		notify.StageDonef(p.out(), tmr, "image %s loaded (%s)", result.Image, result.Digest)
	} else {
		notify.StageDonef(p.out(), tmr, "image %s loaded", result.Image)
	}

	return result, nil
}

// DeployApp applies the application manifests and registers its hostnames.
func (p *Playground) DeployApp(ctx context.Context, opts DeployOptions) (*deployer.Result, error) {
	tmr := p.begin("🚢", "Deploy application")

	_, err := p.requireCluster(ctx)
	if err != nil {
		return nil, err
	}

	clients, err := p.clients()
	if err != nil {
		return nil, err
	}

	deployOpts := []deployer.Option{
		deployer.WithStrict(opts.Strict),
		deployer.WithArgoCD(p.Services.ArgoCD(clients)),
	}
	if opts.Image != "" {
		deployOpts = append(deployOpts, deployer.WithImage(opts.Image))
	}

	result, err := deployer.New(p.Env, clients, p.out(), deployOpts...).Deploy(ctx)
	if err != nil {
		return nil, fmt.Errorf("deploy %s: %w", p.Env.Spec.App.Name, err)
	}

	for _, hostname := range result.Hostnames {
		notify.Infof(p.out(), "http://%s:%d", hostname, p.Env.Spec.Cluster.HTTPPort)
	}

	notify.StageDonef(p.out(), tmr, "%d resources applied to %s", len(result.Applied), p.Env.Spec.App.Namespace)

	return result, nil
}

// TestApp runs the smoke test against the deployed application.
func (p *Playground) TestApp(ctx context.Context, opts TestOptions) ([]smoketest.Result, error) {
	tmr := p.begin("🧪", "Test application")

	dialer, err := p.dialer(ctx, opts.ViaIngress)
	if err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = p.readinessTimeout()
	}

	results, err := smoketest.New(dialer, smoketest.Options{
		Key:     opts.Key,
		Expect:  opts.Expect,
		Timeout: timeout,
		Out:     p.out(),
	}).Run(ctx)
	if err != nil {
		return results, fmt.Errorf("smoke test: %w", err)
	}

	for _, result := range results {
		notify.Successf(p.out(), "%s: %d after %d attempt(s)", result.Name, result.Status, result.Attempts)
	}

	notify.StageDonef(p.out(), tmr, "smoke test passed")

	return results, nil
}

//nolint:ireturn // either transport satisfies the dialer
func (p *Playground) dialer(ctx context.Context, viaIngress bool) (smoketest.Dialer, error) {
	cluster := p.Env.Spec.Cluster
	app := p.Env.Spec.App

	if viaIngress {
		return smoketest.Ingress{Port: cluster.HTTPPort, Host: cluster.Host(app.Name)}, nil
	}

	_, err := p.requireCluster(ctx)
	if err != nil {
		return nil, err
	}

	clients, err := p.clients()
	if err != nil {
		return nil, err
	}

	return smoketest.PortForward{
		Config:    clients.Config,
		Clientset: clients.Clientset,
		Namespace: app.Namespace,
		Service:   app.Name,
		Port:      appServicePort,
		Out:       io.Discard,
	}, nil
}

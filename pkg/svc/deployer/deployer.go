package deployer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/gitops-playground/playctl/pkg/apis/playground/v1alpha1"
	"github.com/gitops-playground/playctl/pkg/client/argocd"
	"github.com/gitops-playground/playctl/pkg/k8s"
	"github.com/gitops-playground/playctl/pkg/k8s/apply"
	"github.com/gitops-playground/playctl/pkg/k8s/readiness"
	"github.com/gitops-playground/playctl/pkg/svc/hosts"
	argocdinstaller "github.com/gitops-playground/playctl/pkg/svc/installer/argocd"
	dashboardinstaller "github.com/gitops-playground/playctl/pkg/svc/installer/dashboard"
	monitoringinstaller "github.com/gitops-playground/playctl/pkg/svc/installer/monitoring"
	"github.com/gitops-playground/playctl/pkg/utils/notify"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
)

// ErrClientsRequired is returned when the deployer has no Kubernetes clients.
var ErrClientsRequired = errors.New("kubernetes clients are required")

// nodePortPatch switches a Service to NodePort.
const nodePortPatch = `{"spec":{"type":"NodePort"}}`

// Result summarizes one deployment.
type Result struct {
	Applied      []apply.Ref
	Hostnames    []string
	HostsUpdated bool
	// Warnings lists the degraded steps.
	Warnings []string
}

// Deployer applies the application to the cluster.
type Deployer struct {
	env     *v1alpha1.Environment
	clients *k8s.Clients
	argo    argocd.Manager
	out     io.Writer

	image     string
	hostsFile string
	strict    bool
}

// Option configures a Deployer.
type Option func(*Deployer)

// WithImage overrides the image reference written into the manifests.
func WithImage(image string) Option {
	return func(d *Deployer) { d.image = image }
}

// WithStrict turns readiness timeouts and exposure failures into errors.
func WithStrict(strict bool) Option {
	return func(d *Deployer) { d.strict = strict }
}

// WithHostsFile overrides the hosts file path.
func WithHostsFile(path string) Option {
	return func(d *Deployer) { d.hostsFile = path }
}

// WithArgoCD sets the manager used to register the Argo CD Application.
func WithArgoCD(manager argocd.Manager) Option {
	return func(d *Deployer) { d.argo = manager }
}

// New returns a deployer for env.
func New(env *v1alpha1.Environment, clients *k8s.Clients, out io.Writer, opts ...Option) *Deployer {
	deployer := &Deployer{
		env:       env,
		clients:   clients,
		out:       out,
		image:     env.InClusterImage(),
		hostsFile: env.Spec.Cluster.HostsFile,
	}

	for _, opt := range opts {
		opt(deployer)
	}

	if deployer.argo == nil && clients != nil {
		deployer.argo = argocd.NewManager(clients.Clientset, clients.Dynamic)
	}

	return deployer
}

// Deploy runs every step in order. A failure to apply stops the run; slow rollouts and
// exposure problems are collected as warnings unless the deployer is strict.
func (d *Deployer) Deploy(ctx context.Context) (*Result, error) {
	if d.clients == nil {
		return nil, ErrClientsRequired
	}

	result := &Result{}

	err := d.applyManifests(ctx, result)
	if err != nil {
		return result, err
	}

	if d.env.Spec.Addons.ArgoCD.Enabled() {
		err = d.exposeArgoCD(ctx)
		if err != nil {
			err = d.degrade(result, "expose argocd server", err)
			if err != nil {
				return result, err
			}
		}
	}

	err = d.registerHosts(result)
	if err != nil {
		return result, err
	}

	if d.env.Spec.GitOps.RepoURL != "" {
		err = d.registerApplication(ctx, result)
		if err != nil {
			return result, err
		}
	}

	return result, nil
}

func (d *Deployer) applyManifests(ctx context.Context, result *Result) error {
	src, err := newSource(d.env)
	if err != nil {
		return err
	}

	applier := apply.NewApplier(d.clients.Dynamic, d.clients.Mapper)
	applier.DefaultNamespace = d.env.Spec.App.Namespace
	vars := Vars(d.env, d.image)

	for _, current := range steps(d.env) {
		if current.requires != nil {
			served, err := applier.HasKind(*current.requires)
			if err != nil {
				return fmt.Errorf("discover %s: %w", current.requires.Kind, err)
			}

			if !served {
				notify.Warningf(d.out, "skipping %s: %s is not served by the cluster",
					current.name, current.requires.Kind)

				continue
			}
		}

		notify.Activityf(d.out, "applying %s", current.name)

		refs, err := d.applyStep(ctx, applier, src, current, vars)
		if err != nil {
			return fmt.Errorf("apply %s: %w", current.name, err)
		}

		result.Applied = append(result.Applied, refs...)

		if current.waitFor == "" {
			continue
		}

		err = readiness.WaitForDeploymentReady(ctx, d.clients.Clientset,
			d.env.Spec.App.Namespace, current.waitFor, d.readinessTimeout())
		if err != nil {
			err = d.degrade(result, "deployment "+current.waitFor, err)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func (d *Deployer) applyStep(
	ctx context.Context,
	applier *apply.Applier,
	src *source,
	current step,
	vars map[string]string,
) ([]apply.Ref, error) {
	if current.file == "" {
		seed, err := LoadSeed(d.env)
		if err != nil {
			return nil, err
		}

		configMap, err := SeedConfigMap(d.env, seed)
		if err != nil {
			return nil, err
		}

		ref, err := applier.ApplyObject(ctx, configMap)
		if err != nil {
			return nil, err
		}

		return []apply.Ref{ref}, nil
	}

	manifests, unresolved, err := src.Render(current.file, vars)
	if err != nil {
		return nil, err
	}

	if len(unresolved) > 0 {
		notify.Warningf(d.out, "%s: no value for %s, rendered empty", current.file, strings.Join(unresolved, ", "))
	}

	return applier.Apply(ctx, manifests)
}

func (d *Deployer) exposeArgoCD(ctx context.Context) error {
	notify.Activityf(d.out, "exposing %s as NodePort", argocdinstaller.ServerService)

	_, err := d.clients.Clientset.CoreV1().Services(argocd.Namespace).Patch(
		ctx,
		argocdinstaller.ServerService,
		types.StrategicMergePatchType,
		[]byte(nodePortPatch),
		metav1.PatchOptions{FieldManager: apply.FieldManager},
	)
	if apierrors.IsNotFound(err) {
		return fmt.Errorf("service %s/%s not found", argocd.Namespace, argocdinstaller.ServerService)
	}

	if err != nil {
		return fmt.Errorf("patch %s service: %w", argocdinstaller.ServerService, err)
	}

	return nil
}

func (d *Deployer) registerHosts(result *Result) error {
	result.Hostnames = Hostnames(d.env)

	changed, err := hosts.Ensure(d.hostsFile, d.env.Spec.Cluster.Name, hosts.DefaultIP, result.Hostnames)
	if errors.Is(err, fs.ErrPermission) {
		notify.Warningf(d.out, "cannot write %s, add this line yourself:\n%s %v",
			d.hostsFile, hosts.DefaultIP, result.Hostnames)
		result.Warnings = append(result.Warnings, "hosts file: "+err.Error())

		return nil
	}

	if err != nil {
		return fmt.Errorf("update hosts file: %w", err)
	}

	result.HostsUpdated = changed
	if changed {
		notify.Activityf(d.out, "registered %d host names in %s", len(result.Hostnames), d.hostsFile)
	}

	return nil
}

func (d *Deployer) registerApplication(ctx context.Context, result *Result) error {
	gitops := d.env.Spec.GitOps

	notify.Activityf(d.out, "registering argocd application %s for %s", d.env.Spec.App.Name, gitops.RepoURL)

	err := d.argo.Ensure(ctx, argocd.EnsureOptions{
		ApplicationName:      d.env.Spec.App.Name,
		RepositoryURL:        gitops.RepoURL,
		Path:                 gitops.Path,
		TargetRevision:       gitops.Revision,
		DestinationNamespace: d.env.Spec.App.Namespace,
	})
	if err != nil {
		return fmt.Errorf("register argocd application: %w", err)
	}

	// A re-run points at a source Argo CD may have cached, so drop the cache.
	err = d.argo.Refresh(ctx, d.env.Spec.App.Name, true)
	if err != nil {
		err = d.degrade(result, "refresh argocd application "+d.env.Spec.App.Name, err)
		if err != nil {
			return err
		}
	}

	err = d.argo.WaitForSync(ctx, d.env.Spec.App.Name, d.readinessTimeout())
	if err != nil {
		return d.degrade(result, "argocd application "+d.env.Spec.App.Name, err)
	}

	return nil
}

// degrade reports err as a warning and swallows it, or returns it when strict.
func (d *Deployer) degrade(result *Result, what string, err error) error {
	if d.strict {
		return fmt.Errorf("%s: %w", what, err)
	}

	notify.Warningf(d.out, "%s: %v", what, err)
	result.Warnings = append(result.Warnings, what+": "+err.Error())

	return nil
}

func (d *Deployer) readinessTimeout() time.Duration {
	return d.env.Spec.Timeouts.Readiness.Duration
}

// Hostnames lists the ingress hosts the playground serves: the application plus every
// enabled add-on with a UI.
func Hostnames(env *v1alpha1.Environment) []string {
	names := []string{env.Spec.Cluster.Host(env.Spec.App.Name)}

	if env.Spec.Addons.ArgoCD.Enabled() {
		names = append(names, env.Spec.Cluster.Host(argocdinstaller.HostPrefix))
	}

	if env.Spec.Addons.Monitoring.Enabled() {
		names = append(names, env.Spec.Cluster.Host(monitoringinstaller.HostPrefix))
	}

	if env.Spec.Addons.Dashboard.Enabled() {
		names = append(names, env.Spec.Cluster.Host(dashboardinstaller.HostPrefix))
	}

	return names
}

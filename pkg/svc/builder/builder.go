// Package builder builds the application image and makes it pullable by the cluster nodes.
package builder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/containerd/platforms"
	"github.com/distribution/reference"
	"github.com/gitops-playground/playctl/pkg/apis/playground/v1alpha1"
	"github.com/gitops-playground/playctl/pkg/client/docker"
	"github.com/gitops-playground/playctl/pkg/client/registry"
	"github.com/gitops-playground/playctl/pkg/utils/notify"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

var (
	// ErrUnknownLoadStrategy is returned for a load strategy the builder cannot execute.
	ErrUnknownLoadStrategy = errors.New("unknown load strategy")

	// ErrImporterRequired is returned when the Import strategy has no importer.
	ErrImporterRequired = errors.New("image importer is required for the Import strategy")
)

// ImageImporter copies local images into the cluster nodes.
type ImageImporter interface {
	ImportImages(ctx context.Context, name string, images ...string) error
}

// Registry is the part of the registry client used to publish the image.
type Registry interface {
	WaitForReady(ctx context.Context, endpoint string, timeout time.Duration) error
	Digest(ctx context.Context, ref string) (string, error)
}

type defaultRegistry struct{}

func (defaultRegistry) WaitForReady(ctx context.Context, endpoint string, timeout time.Duration) error {
	return registry.WaitForReady(ctx, endpoint, timeout)
}

func (defaultRegistry) Digest(ctx context.Context, ref string) (string, error) {
	return registry.Digest(ctx, ref)
}

// Result describes the image the deployment should reference.
type Result struct {
	// Image is the reference pods pull.
	Image string
	// Digest is the manifest digest reported by the registry. Empty for the Import strategy.
	Digest string
}

// Builder builds the application image and loads it into the cluster.
type Builder struct {
	engine   docker.Engine
	importer ImageImporter
	registry Registry
	env      *v1alpha1.Environment
	out      io.Writer
	noCache  bool
}

// Option configures a Builder.
type Option func(*Builder)

// WithRegistry replaces the registry client.
func WithRegistry(reg Registry) Option {
	return func(b *Builder) { b.registry = reg }
}

// WithNoCache disables the build cache.
func WithNoCache(noCache bool) Option {
	return func(b *Builder) { b.noCache = noCache }
}

// New returns a Builder for env. importer may be nil when the Registry strategy is used.
func New(
	engine docker.Engine,
	importer ImageImporter,
	env *v1alpha1.Environment,
	out io.Writer,
	opts ...Option,
) *Builder {
	b := &Builder{
		engine:   engine,
		importer: importer,
		registry: defaultRegistry{},
		env:      env,
		out:      out,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Tags returns the local tag and the registry tag of the image.
func (b *Builder) Tags() ([]string, error) {
	app := b.env.Spec.App

	tags := []string{app.ImageRef(), b.env.PushImage()}
	for _, tag := range tags {
		if _, err := reference.ParseNormalizedNamed(tag); err != nil {
			return nil, fmt.Errorf("invalid image reference %q: %w", tag, err)
		}
	}

	return tags, nil
}

// Build builds the image from the configured context and Dockerfile.
func (b *Builder) Build(ctx context.Context) error {
	app := b.env.Spec.App

	tags, err := b.Tags()
	if err != nil {
		return err
	}

	platform, err := ParsePlatform(app.Platform)
	if err != nil {
		return err
	}

	notify.Activityf(b.out, "building %s for %s", app.ImageRef(), platforms.Format(platform))

	err = docker.BuildImage(ctx, b.engine, docker.BuildOptions{
		ContextDir: filepath.Clean(app.BuildContext),
		Dockerfile: app.Dockerfile,
		Tags:       tags,
		Platform:   platforms.Format(platform),
		BuildArgs:  BuildArgs(platform),
		NoCache:    b.noCache,
	}, b.out)
	if err != nil {
		return fmt.Errorf("build %s: %w", app.ImageRef(), err)
	}

	notify.Successf(b.out, "built %s", app.ImageRef())

	return nil
}

// Load makes the built image available to the cluster using the configured strategy.
func (b *Builder) Load(ctx context.Context) (Result, error) {
	switch b.env.Spec.App.LoadStrategy {
	case v1alpha1.LoadStrategyRegistry:
		return b.push(ctx)
	case v1alpha1.LoadStrategyImport:
		return b.importImage(ctx)
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownLoadStrategy, b.env.Spec.App.LoadStrategy)
	}
}

// Run builds and loads the image.
func (b *Builder) Run(ctx context.Context) (Result, error) {
	err := b.Build(ctx)
	if err != nil {
		return Result{}, err
	}

	return b.Load(ctx)
}

func (b *Builder) push(ctx context.Context) (Result, error) {
	endpoint := v1alpha1.RegistryHostAddress(b.env.Spec.Cluster.Registry.HostPort)
	ref := b.env.PushImage()

	notify.Activityf(b.out, "waiting for registry %s", endpoint)

	err := b.registry.WaitForReady(ctx, endpoint, b.env.Spec.Timeouts.Readiness.Duration)
	if err != nil {
		return Result{}, err
	}

	notify.Activityf(b.out, "pushing %s", ref)

	err = docker.PushImage(ctx, b.engine, ref, b.out)
	if err != nil {
		return Result{}, fmt.Errorf("push %s: %w", ref, err)
	}

	digest, err := b.registry.Digest(ctx, ref)
	if err != nil {
		return Result{}, fmt.Errorf("confirm %s: %w", ref, err)
	}

	notify.Successf(b.out, "pushed %s@%s", ref, digest)

	return Result{Image: b.env.InClusterImage(), Digest: digest}, nil
}

func (b *Builder) importImage(ctx context.Context) (Result, error) {
	if b.importer == nil {
		return Result{}, ErrImporterRequired
	}

	ref := b.env.Spec.App.ImageRef()

	notify.Activityf(b.out, "importing %s into %s", ref, b.env.Spec.Cluster.Name)

	err := b.importer.ImportImages(ctx, b.env.Spec.Cluster.Name, ref)
	if err != nil {
		return Result{}, fmt.Errorf("import %s: %w", ref, err)
	}

	notify.Successf(b.out, "imported %s", ref)

	return Result{Image: b.env.InClusterImage()}, nil
}

// ParsePlatform parses an os/arch[/variant] specifier.
func ParsePlatform(specifier string) (ocispec.Platform, error) {
	platform, err := platforms.Parse(specifier)
	if err != nil {
		return ocispec.Platform{}, fmt.Errorf("parse platform %q: %w", specifier, err)
	}

	return platforms.Normalize(platform), nil
}

// BuildArgs returns the GOOS, GOARCH and GOARM arguments for cross-compiling the server.
func BuildArgs(platform ocispec.Platform) map[string]string {
	args := map[string]string{
		"GOOS":   platform.OS,
		"GOARCH": platform.Architecture,
	}

	if platform.Architecture == "arm" {
		// containerd normalizes arm/v7 to an empty variant.
		variant := strings.TrimPrefix(platform.Variant, "v")
		if variant == "" {
			variant = "7"
		}

		args["GOARM"] = variant
	}

	return args
}

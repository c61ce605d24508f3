package docker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/build"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/pkg/jsonmessage"
	archive "github.com/moby/go-archive"
	"github.com/moby/patternmatcher/ignorefile"
	"golang.org/x/term"
)

// ErrNoTags is returned when a build is requested without any image tag.
var ErrNoTags = errors.New("at least one image tag is required")

// BuildOptions describes an image build from a local context directory.
type BuildOptions struct {
	ContextDir string
	// Dockerfile is relative to ContextDir.
	Dockerfile string
	Tags       []string
	Platform   string
	BuildArgs  map[string]string
	NoCache    bool
}

// BuildImage tars the build context, honouring .dockerignore, sends it to the daemon
// and streams the build output to out.
func BuildImage(ctx context.Context, engine Engine, opts BuildOptions, out io.Writer) error {
	if engine == nil {
		return ErrEngineNil
	}

	if len(opts.Tags) == 0 {
		return ErrNoTags
	}

	buildContext, err := TarContext(opts.ContextDir)
	if err != nil {
		return err
	}
	defer buildContext.Close()

	args := make(map[string]*string, len(opts.BuildArgs))
	for key, value := range opts.BuildArgs {
		args[key] = &value
	}

	resp, err := engine.ImageBuild(ctx, buildContext, build.ImageBuildOptions{
		Tags:        opts.Tags,
		Dockerfile:  opts.Dockerfile,
		Platform:    opts.Platform,
		BuildArgs:   args,
		NoCache:     opts.NoCache,
		Remove:      true,
		ForceRemove: true,
	})
	if err != nil {
		return fmt.Errorf("build image %s: %w", opts.Tags[0], err)
	}
	defer resp.Body.Close()

	fd, isTerminal := terminalFd(out)

	err = jsonmessage.DisplayJSONMessagesStream(resp.Body, out, fd, isTerminal, nil)
	if err != nil {
		return fmt.Errorf("build image %s: %w", opts.Tags[0], err)
	}

	return nil
}

// TarContext archives dir for the build API, skipping paths matched by dir/.dockerignore.
func TarContext(dir string) (io.ReadCloser, error) {
	excludes, err := readDockerignore(dir)
	if err != nil {
		return nil, err
	}

	reader, err := archive.TarWithOptions(dir, &archive.TarOptions{ExcludePatterns: excludes})
	if err != nil {
		return nil, fmt.Errorf("archive build context %s: %w", dir, err)
	}

	return reader, nil
}

func readDockerignore(dir string) ([]string, error) {
	file, err := os.Open(filepath.Join(dir, ".dockerignore"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("open .dockerignore: %w", err)
	}
	defer file.Close()

	patterns, err := ignorefile.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read .dockerignore: %w", err)
	}

	return patterns, nil
}

// anonymousAuth is the base64url encoding of an empty auth config.
const anonymousAuth = "e30="

// PushImage pushes ref from the daemon to its registry and streams progress to out.
func PushImage(ctx context.Context, engine Engine, ref string, out io.Writer) error {
	if engine == nil {
		return ErrEngineNil
	}

	body, err := engine.ImagePush(ctx, ref, image.PushOptions{RegistryAuth: anonymousAuth})
	if err != nil {
		return fmt.Errorf("push image %s: %w", ref, err)
	}
	defer body.Close()

	fd, isTerminal := terminalFd(out)

	err = jsonmessage.DisplayJSONMessagesStream(body, out, fd, isTerminal, nil)
	if err != nil {
		return fmt.Errorf("push image %s: %w", ref, err)
	}

	return nil
}

// ImageExists reports whether the daemon has an image matching ref.
func ImageExists(ctx context.Context, engine Engine, ref string) (bool, error) {
	if engine == nil {
		return false, ErrEngineNil
	}

	images, err := engine.ImageList(ctx, image.ListOptions{
		Filters: filters.NewArgs(filters.Arg("reference", ref)),
	})
	if err != nil {
		return false, fmt.Errorf("list images for %s: %w", ref, err)
	}

	return len(images) > 0, nil
}

// RemoveImage deletes ref from the daemon. A missing image is not an error.
func RemoveImage(ctx context.Context, engine Engine, ref string) error {
	if engine == nil {
		return ErrEngineNil
	}

	_, err := engine.ImageRemove(ctx, ref, image.RemoveOptions{Force: true, PruneChildren: true})
	if err != nil && !cerrdefs.IsNotFound(err) {
		return fmt.Errorf("remove image %s: %w", ref, err)
	}

	return nil
}

func terminalFd(out io.Writer) (uintptr, bool) {
	file, ok := out.(*os.File)
	if !ok {
		return 0, false
	}

	return file.Fd(), term.IsTerminal(int(file.Fd()))
}

// Package k3dprovisioner manages the playground cluster by running k3d's own cobra
// commands in-process.
package k3dprovisioner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/gitops-playground/playctl/pkg/cmd/runner"
	clustercommand "github.com/k3d-io/k3d/v5/cmd/cluster"
	imagecommand "github.com/k3d-io/k3d/v5/cmd/image"
	k3dv1alpha5 "github.com/k3d-io/k3d/v5/pkg/config/v1alpha5"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// ErrNoImages is returned when ImportImages is called without images.
var ErrNoImages = errors.New("no images to import")

var (
	// listMutex serialises List because k3d writes to os.Stdout directly.
	listMutex sync.Mutex //nolint:gochecknoglobals // guards process-wide stdout swap

	logrusConfigOnce sync.Once //nolint:gochecknoglobals // one-time logrus setup
)

// Provisioner runs k3d lifecycle commands for one SimpleConfig.
type Provisioner struct {
	simpleCfg *k3dv1alpha5.SimpleConfig
	runner    runner.CommandRunner
	tempDir   string
}

// NewProvisioner constructs a provisioner. k3d logs through logrus, which is configured
// once to write human-readable lines to out.
func NewProvisioner(simpleCfg *k3dv1alpha5.SimpleConfig, out io.Writer) *Provisioner {
	if out == nil {
		out = os.Stdout
	}

	logrusConfigOnce.Do(func() {
		logrus.SetOutput(out)
		logrus.SetFormatter(&logrus.TextFormatter{
			ForceColors:      true,
			DisableTimestamp: true,
		})
		logrus.SetLevel(logrus.InfoLevel)
	})

	return &Provisioner{
		simpleCfg: simpleCfg,
		runner:    runner.NewCobraCommandRunner(out, out),
		tempDir:   os.TempDir(),
	}
}

// WithRunner replaces the command runner.
func (p *Provisioner) WithRunner(commandRunner runner.CommandRunner) *Provisioner {
	p.runner = commandRunner

	return p
}

// Create writes the SimpleConfig to a temporary file and runs `k3d cluster create`.
func (p *Provisioner) Create(ctx context.Context, name string) error {
	if p.simpleCfg == nil {
		return p.runLifecycleCommand(ctx, clustercommand.NewCmdClusterCreate, nil, name, "cluster create")
	}

	if target := p.resolveName(name); target != "" {
		p.simpleCfg.Name = target
	}

	path, err := WriteConfig(p.simpleCfg, p.tempDir)
	if err != nil {
		return fmt.Errorf("cluster create: %w", err)
	}
	defer os.Remove(path)

	return p.runLifecycleCommand(
		ctx,
		clustercommand.NewCmdClusterCreate,
		[]string{"--config", path},
		"",
		"cluster create",
	)
}

// Delete removes the cluster and the registry k3d created with it.
func (p *Provisioner) Delete(ctx context.Context, name string) error {
	return p.runLifecycleCommand(ctx, clustercommand.NewCmdClusterDelete, nil, name, "cluster delete")
}

// Start resumes a stopped cluster.
func (p *Provisioner) Start(ctx context.Context, name string) error {
	return p.runLifecycleCommand(ctx, clustercommand.NewCmdClusterStart, nil, name, "cluster start")
}

// Stop halts a running cluster.
func (p *Provisioner) Stop(ctx context.Context, name string) error {
	return p.runLifecycleCommand(ctx, clustercommand.NewCmdClusterStop, nil, name, "cluster stop")
}

// List returns the names of all k3d clusters.
func (p *Provisioner) List(ctx context.Context) ([]string, error) {
	originalLogOutput := logrus.StandardLogger().Out

	logrus.SetOutput(io.Discard)
	defer logrus.SetOutput(originalLogOutput)

	listMutex.Lock()

	originalStdout := os.Stdout

	pipeReader, pipeWriter, err := os.Pipe()
	if err != nil {
		listMutex.Unlock()

		return nil, fmt.Errorf("cluster list: create stdout pipe: %w", err)
	}

	os.Stdout = pipeWriter

	output, runErr := p.runListCommand(ctx)

	_ = pipeWriter.Close()
	os.Stdout = originalStdout

	listMutex.Unlock()

	_, copyErr := io.Copy(io.Discard, pipeReader)
	_ = pipeReader.Close()

	if copyErr != nil {
		logrus.WithError(copyErr).Debug("failed to drain stdout pipe when listing k3d clusters")
	}

	if runErr != nil {
		return nil, fmt.Errorf("cluster list: %w", runErr)
	}

	return ParseClusterNames(output)
}

// Exists reports whether the cluster is known to k3d.
func (p *Provisioner) Exists(ctx context.Context, name string) (bool, error) {
	target := p.resolveName(name)
	if target == "" {
		return false, nil
	}

	clusters, err := p.List(ctx)
	if err != nil {
		return false, err
	}

	return slices.Contains(clusters, target), nil
}

// ImportImages copies images from the local daemon into every node of the cluster.
func (p *Provisioner) ImportImages(ctx context.Context, name string, images ...string) error {
	if len(images) == 0 {
		return ErrNoImages
	}

	args := append([]string{"--cluster", p.resolveName(name), "--mode", "auto"}, images...)

	res, err := p.runner.Run(ctx, imagecommand.NewCmdImageImport(), args)
	if err != nil {
		return commandError("image import", res, err)
	}

	return nil
}

func (p *Provisioner) runListCommand(ctx context.Context) (string, error) {
	res, err := runner.NewQuietRunner().
		Run(ctx, clustercommand.NewCmdClusterList(), []string{"--output", "json"})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(res.Stdout), nil
}

// ParseClusterNames extracts names from `k3d cluster list --output json`.
func ParseClusterNames(output string) ([]string, error) {
	if output == "" {
		return nil, nil
	}

	var entries []struct {
		Name string `json:"name"`
	}

	if err := json.Unmarshal([]byte(output), &entries); err != nil {
		return nil, fmt.Errorf("cluster list: parse output: %w", err)
	}

	names := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.Name != "" {
			names = append(names, entry.Name)
		}
	}

	return names, nil
}

func (p *Provisioner) resolveName(name string) string {
	if strings.TrimSpace(name) != "" {
		return name
	}

	if p.simpleCfg != nil {
		return strings.TrimSpace(p.simpleCfg.Name)
	}

	return ""
}

func (p *Provisioner) runLifecycleCommand(
	ctx context.Context,
	builder func() *cobra.Command,
	args []string,
	name string,
	errorPrefix string,
) error {
	if target := p.resolveName(name); target != "" && !slices.Contains(args, "--config") {
		args = append(args, target)
	}

	res, err := p.runner.Run(ctx, builder(), args)
	if err != nil {
		return commandError(errorPrefix, res, err)
	}

	return nil
}

// commandError wraps err and appends the last line the command wrote to stderr.
func commandError(prefix string, res runner.Result, err error) error {
	if line := res.LastErrorLine(); line != "" {
		return fmt.Errorf("%s: %w: %s", prefix, err, line)
	}

	return fmt.Errorf("%s: %w", prefix, err)
}

package installer

import (
	"context"
	"errors"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/gitops-playground/playctl/pkg/k8s/readiness"
	"github.com/gitops-playground/playctl/pkg/utils/notify"
	"github.com/gitops-playground/playctl/pkg/utils/timer"
	"k8s.io/client-go/kubernetes"
)

// Options control how Run installs add-ons.
type Options struct {
	// Clientset is used for readiness polling. Nil skips polling.
	Clientset kubernetes.Interface
	// ReadinessTimeout bounds the wait of each add-on.
	ReadinessTimeout time.Duration
	// Parallel installs everything after the first add-on concurrently.
	Parallel bool
	// Strict turns a readiness timeout into a failure instead of a warning.
	Strict bool
	Out    io.Writer
	Timer  timer.Timer
}

// Run installs installers in order and waits for each one's workloads.
//
// A readiness timeout leaves the add-on degraded: it is reported as a warning and the
// remaining add-ons are still installed, unless Options.Strict is set. Install errors
// always stop the run.
func Run(ctx context.Context, installers []Installer, opts Options) error {
	if len(installers) == 0 {
		return nil
	}

	if !opts.Parallel || len(installers) == 1 {
		for _, inst := range installers {
			err := installSequential(ctx, inst, opts)
			if err != nil {
				return err
			}
		}

		return nil
	}

	// The ingress controller goes first; the others create Ingress objects whose
	// admission webhook it serves.
	err := installSequential(ctx, installers[0], opts)
	if err != nil {
		return err
	}

	return installParallel(ctx, installers[1:], opts)
}

// Uninstall removes the releases in reverse install order and reports every failure.
func Uninstall(ctx context.Context, installers []Installer, out io.Writer) error {
	var errs []error

	for _, inst := range slices.Backward(installers) {
		notify.Activityf(out, "uninstalling %s", inst.Name())

		err := inst.Uninstall(ctx)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// DegradedError reports an add-on that installed but did not become ready in time.
type DegradedError struct {
	Component string
	Err       error
}

func (e *DegradedError) Error() string {
	return e.Component + " is installed but not ready: " + e.Err.Error()
}

func (e *DegradedError) Unwrap() error {
	return e.Err
}

func installSequential(ctx context.Context, inst Installer, opts Options) error {
	notify.Activityf(opts.Out, "installing %s", inst.Name())

	err := installAndWait(ctx, inst, opts)

	var degraded *DegradedError
	if errors.As(err, &degraded) {
		notify.Warningf(opts.Out, "%s", degraded.Error())

		return nil
	}

	if err != nil {
		return err
	}

	notify.Successf(opts.Out, "%s installed", inst.Name())

	return nil
}

func installParallel(ctx context.Context, installers []Installer, opts Options) error {
	var (
		mu       sync.Mutex
		warnings []*DegradedError
	)

	tasks := make([]notify.Task, 0, len(installers))

	for _, inst := range installers {
		tasks = append(tasks, notify.Task{
			Name: inst.Name(),
			Fn: func(ctx context.Context) error {
				err := installAndWait(ctx, inst, opts)

				var degraded *DegradedError
				if errors.As(err, &degraded) {
					mu.Lock()
					warnings = append(warnings, degraded)
					mu.Unlock()

					return nil
				}

				return err
			},
		})
	}

	progress := notify.NewProgressGroup(
		"Install add-ons",
		"📦",
		opts.Out,
		notify.WithVerbs(notify.InstallVerbs()),
		notify.WithTimer(opts.Timer),
	)

	err := progress.Run(ctx, tasks...)

	for _, warning := range warnings {
		notify.Warningf(opts.Out, "%s", warning.Error())
	}

	return err
}

// installAndWait returns a *DegradedError when the add-on installed but did not become
// ready in time and the run is not strict.
func installAndWait(ctx context.Context, inst Installer, opts Options) error {
	err := inst.Install(ctx)
	if err != nil {
		return err
	}

	if opts.Clientset == nil {
		return nil
	}

	err = WaitForResourceReadiness(ctx, opts.Clientset, inst.Checks(), opts.ReadinessTimeout, inst.Name())
	if err != nil && !opts.Strict && errors.Is(err, readiness.ErrTimeoutExceeded) {
		return &DegradedError{Component: inst.Name(), Err: err}
	}

	return err
}

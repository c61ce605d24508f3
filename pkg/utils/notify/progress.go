package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	fcolor "github.com/fatih/color"
	"github.com/gitops-playground/playctl/pkg/utils/timer"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// Verbs are the words printed next to a task name for each state.
type Verbs struct {
	Waiting string
	Running string
	Done    string
}

// InstallVerbs suits Helm releases.
func InstallVerbs() Verbs {
	return Verbs{Waiting: "queued", Running: "installing", Done: "installed"}
}

// CheckVerbs suits read-only probes.
func CheckVerbs() Verbs {
	return Verbs{Waiting: "queued", Running: "checking", Done: "ok"}
}

// Task is a unit of work run by a ProgressGroup.
type Task struct {
	Name string
	Fn   func(ctx context.Context) error
}

type taskPhase int

const (
	phaseWaiting taskPhase = iota
	phaseRunning
	phaseDone
	phaseFailed
)

const spinnerInterval = 120 * time.Millisecond

//nolint:gochecknoglobals // animation frames
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// ProgressGroup runs tasks concurrently. On a terminal it keeps one live line per task;
// anywhere else it prints a line when a task starts and when it ends.
type ProgressGroup struct {
	title string
	emoji string
	verbs Verbs
	out   io.Writer
	timer timer.Timer
	live  bool

	mu     sync.Mutex
	names  []string
	phases map[string]taskPhase
	frame  int
	drawn  int
}

// ProgressOption configures a ProgressGroup.
type ProgressOption func(*ProgressGroup)

// WithVerbs overrides the state words.
func WithVerbs(verbs Verbs) ProgressOption {
	return func(pg *ProgressGroup) { pg.verbs = verbs }
}

// WithTimer prints stage timing after all tasks succeeded.
func WithTimer(tmr timer.Timer) ProgressOption {
	return func(pg *ProgressGroup) { pg.timer = tmr }
}

// NewProgressGroup returns a group writing to out (stdout when nil).
func NewProgressGroup(title, emoji string, out io.Writer, opts ...ProgressOption) *ProgressGroup {
	if out == nil {
		out = os.Stdout
	}

	live := false
	if file, ok := out.(*os.File); ok {
		live = term.IsTerminal(int(file.Fd()))
	}

	pg := &ProgressGroup{
		title:  title,
		emoji:  emoji,
		verbs:  Verbs{Waiting: "pending", Running: "running", Done: "done"},
		out:    out,
		live:   live,
		phases: map[string]taskPhase{},
	}

	for _, opt := range opts {
		opt(pg)
	}

	return pg
}

// Run executes all tasks and returns the first error, wrapped with the task name.
func (pg *ProgressGroup) Run(ctx context.Context, tasks ...Task) error {
	if len(tasks) == 0 {
		return nil
	}

	for _, task := range tasks {
		pg.names = append(pg.names, task.Name)
		pg.phases[task.Name] = phaseWaiting
	}

	if pg.timer != nil {
		pg.timer.NewStage()
	}

	Titlef(pg.out, pg.emoji, "%s...", pg.title)

	stop := make(chan struct{})
	spun := make(chan struct{})

	if pg.live {
		pg.redraw()

		go pg.spin(stop, spun)
	} else {
		close(spun)
	}

	group, groupCtx := errgroup.WithContext(ctx)

	for _, task := range tasks {
		group.Go(func() error {
			pg.set(task.Name, phaseRunning)

			if err := task.Fn(groupCtx); err != nil {
				pg.set(task.Name, phaseFailed)

				return fmt.Errorf("%s: %w", task.Name, err)
			}

			pg.set(task.Name, phaseDone)

			return nil
		})
	}

	err := group.Wait()

	close(stop)
	<-spun

	if pg.live {
		pg.redraw()
	}

	if err != nil {
		return fmt.Errorf("run %s: %w", pg.title, err)
	}

	if pg.timer != nil {
		total, stage := pg.timer.GetTiming()
		_, _ = fcolor.New(fcolor.FgGreen).Fprintf(pg.out, "⏲ current: %s\n  total:  %s\n", stage, total)
	}

	return nil
}

func (pg *ProgressGroup) set(name string, phase taskPhase) {
	pg.mu.Lock()
	pg.phases[name] = phase

	if !pg.live {
		_, _ = fmt.Fprintln(pg.out, pg.render(name, phase))
	}
	pg.mu.Unlock()

	if pg.live {
		pg.redraw()
	}
}

func (pg *ProgressGroup) spin(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			pg.mu.Lock()
			pg.frame = (pg.frame + 1) % len(spinnerFrames)
			pg.mu.Unlock()
			pg.redraw()
		}
	}
}

func (pg *ProgressGroup) redraw() {
	pg.mu.Lock()
	defer pg.mu.Unlock()

	if pg.drawn > 0 {
		_, _ = fmt.Fprintf(pg.out, "\033[%dA", pg.drawn)
	}

	for _, name := range pg.names {
		_, _ = fmt.Fprintf(pg.out, "\033[K%s\n", pg.render(name, pg.phases[name]))
	}

	pg.drawn = len(pg.names)
}

// render must be called with mu held.
func (pg *ProgressGroup) render(name string, phase taskPhase) string {
	switch phase {
	case phaseWaiting:
		return fcolor.New(fcolor.FgHiBlack).Sprintf("○ %s %s", name, pg.verbs.Waiting)
	case phaseRunning:
		symbol := "►"
		if pg.live {
			symbol = spinnerFrames[pg.frame]
		}

		return fcolor.New(fcolor.FgCyan).Sprintf("%s %s %s", symbol, name, pg.verbs.Running)
	case phaseDone:
		return fcolor.New(fcolor.FgGreen).Sprintf("✔ %s %s", name, pg.verbs.Done)
	case phaseFailed:
		return fcolor.New(fcolor.FgRed).Sprintf("✗ %s failed", name)
	default:
		return name
	}
}

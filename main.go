// Package main is the entry point of playctl.
package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gitops-playground/playctl/internal/buildmeta"
	"github.com/gitops-playground/playctl/pkg/cli/cmd"
	"github.com/gitops-playground/playctl/pkg/cli/ui/errorhandler"
	"github.com/gitops-playground/playctl/pkg/utils/notify"
)

func main() {
	exitCode := runSafely(os.Args[1:], runWithArgs, os.Stderr)

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

//nolint:nonamedreturns // Named return simplifies panic recovery logic.
func runSafely(args []string, runner func([]string) int, errWriter io.Writer) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			notify.Errorf(errWriter, "panic recovered: %v\n%s", r, debug.Stack())

			exitCode = 1
		}
	}()

	exitCode = runner(args)

	return exitCode
}

func runWithArgs(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cmd.NewRootCmd(buildmeta.Version, buildmeta.Commit, buildmeta.Date)
	rootCmd.SetArgs(args)
	rootCmd.SetContext(ctx)

	err := cmd.Execute(rootCmd)
	if err != nil {
		reportError(rootCmd.ErrOrStderr(), err)

		return 1
	}

	return 0
}

func reportError(w io.Writer, err error) {
	notify.Errorf(w, "%v", err)

	var cmdErr *errorhandler.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Hint() != "" {
		notify.Infof(w, "%s", cmdErr.Hint())
	}
}

// Package main provides the CLI entry point for scenechapters.
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/scenechapters/internal/errors"
)

const appName = "scenechapters"

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		var reported *reportedError
		if !stderrors.As(err, &reported) {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
			if errors.IsUsage(err) {
				_, _ = fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", appName)
			}
		}
	}
	return errors.ExitCode(err)
}

// reportedError marks an error the reporter has already shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

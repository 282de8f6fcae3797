// Package main provides the srp6 tool for registering SRP-6a verifiers and
// running handshakes against them.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fzdarsky/srp6a/internal/cli/commands"
	"github.com/fzdarsky/srp6a/internal/lifecycle"
)

// exitInterrupted follows the shell convention of 128 + SIGINT.
const exitInterrupted = 130

func main() {
	os.Exit(run(context.Background(), os.Stderr, commands.ExecuteContext))
}

// run executes the command tree under a signal-aware context and maps the
// outcome to an exit code.
func run(parent context.Context, stderr io.Writer, execute func(context.Context) error) int {
	interrupt := lifecycle.NewInterrupt()
	ctx, cancel := interrupt.Start(parent)

	err := execute(ctx)

	cancel()
	interrupt.Stop()

	if interrupt.Interrupted() {
		fmt.Fprintf(stderr, "srp6: interrupted (%s)\n", interrupt.Reason())
		return exitInterrupted
	}
	if err != nil {
		return 1
	}
	return 0
}

// Command trurl parses, edits and prints URLs.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/roach88/trurl/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		cli.PrintError(os.Stderr, err)
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fwPull/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", cli.Name, err)
		stop()
		os.Exit(1)
	}
}

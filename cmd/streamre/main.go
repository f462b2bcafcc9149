package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pvto/streamre/cmd/streamre/cmd"
)

func main() {
	exitCode := run()
	os.Exit(exitCode)
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return cmd.Execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// Package main provides the entry point for the partsearch CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"partsearch/cmd/partsearch/cmd"
)

func main() {
	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

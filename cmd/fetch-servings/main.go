package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/noot-app/fetch-servings/internal/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cmd.Run(ctx)
	stop()
	if err != nil {
		// Stdout belongs to the JSON payload
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

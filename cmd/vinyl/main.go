package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &Application{}
	rootCmd := app.createRootCommand(ctx)

	err := rootCmd.Execute()
	app.Close()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

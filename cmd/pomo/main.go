package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pomo/internal/cli"
	"pomo/internal/config"
	apperrors "pomo/internal/errors"
	"pomo/internal/logging"
)

// Exit codes
const (
	exitOK          = 0
	exitError       = 1
	exitConfigError = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand()
	err := root.ExecuteContext(ctx)
	if err == nil || apperrors.IsInterrupted(err) {
		return exitOK
	}

	if apperrors.ShouldLogError(err) {
		logging.Debugf("pomo: %s: %v\n", apperrors.GetErrorCode(err), err)
	}

	var cfgErr *config.ConfigError
	if errors.As(err, &cfgErr) {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", cfgErr)
		return exitConfigError
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return exitError
}

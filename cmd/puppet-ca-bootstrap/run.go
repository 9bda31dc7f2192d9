// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/cli"
	"github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/logger"
	verpkg "github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/version"
)

var version string // set by ldflags or defaults to imported version

func init() {
	if version == "" {
		version = verpkg.Version
	}
}

func main() {
	// Create CLI logger
	log := logger.NewCLILogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Channel to signal completion
	done := make(chan error, 1)

	// Run the CLI in a separate goroutine
	go func() {
		done <- cli.Execute(ctx, version, log)
	}()

	// Wait for either completion or context cancellation
	select {
	case err := <-done:
		os.Exit(exitCode(err, log))
	case <-ctx.Done():
		log.Println("Operation cancelled by signal. Exiting...")
		// Give the CLI a moment to clean up
		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
		}
		os.Exit(130) // Standard exit code for SIGINT
	}
}

// exitCode maps the result of the command tree to a process exit status,
// printing errors the commands have not already reported.
func exitCode(err error, log logger.Logger) int {
	if err == nil {
		return 0
	}
	if !cli.Reported(err) {
		log.Printf("Error: %v", err)
	}
	return 1
}

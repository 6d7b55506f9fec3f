// Package main provides the semreview binary entry point.
// Semreview analyzes hackathon project reviews against a domain ontology
// and produces weighted per-dimension scores and narrative feedback.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/c360studio/semreview/commands"

	// Register LLM providers via init()
	_ "github.com/c360studio/semreview/llm/providers"
)

// Set via -ldflags at release build time.
var (
	version   = "0.1.0"
	buildTime = "dev"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := commands.NewRoot(version, buildTime).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

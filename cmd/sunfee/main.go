// Copyright 2025 Sunfee Users
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dotandev/sunfee/internal/cmd"
	"github.com/dotandev/sunfee/internal/logger"
	"github.com/dotandev/sunfee/internal/telemetry"
)

// Build-time variables injected via -ldflags.
var (
	version = "dev"
)

func main() {
	ctx := context.Background()

	cmd.Version = version

	// Tracing is off unless an OTLP collector endpoint is configured
	shutdown, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:     os.Getenv("SUNFEE_OTLP_ENDPOINT") != "",
		ExporterURL: os.Getenv("SUNFEE_OTLP_ENDPOINT"),
		ServiceName: "sunfee",
	})
	if err != nil {
		logger.Logger.Warn("Telemetry disabled", "error", err)
		shutdown = func() {}
	}
	defer shutdown()

	if execErr := cmd.Execute(); execErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", execErr)
		os.Exit(1)
	}
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"os"

	"github.com/AleutianAI/upgradeguard/pkg/logging"
	"github.com/spf13/cobra"
)

// Version is the CLI version, overridable at build time via -ldflags.
var Version = "dev"

// Exit codes shared by all commands.
const (
	ExitSuccess   = 0 // Risk at or below threshold
	ExitRiskFound = 1 // Risk above threshold
	ExitError     = 2 // Error (bad input, unreadable files)
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "upgradeguard",
	Short: "Assess the risk of dependency upgrades",
	Long: `upgradeguard turns raw upgrade signals (source diff, changelog text,
version delta, usage counts, test coverage) into an actionable risk
verdict per dependency.

The engine is pure and offline: it never fetches data. Supply the diff
and metadata yourself (e.g. from "npm diff") and upgradeguard does the
breaking-change detection and risk scoring.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
}

// newLogger builds the command logger honoring --verbose.
func newLogger() *logging.Logger {
	level := logging.LevelInfo
	if verbose {
		level = logging.LevelDebug
	}
	return logging.New(logging.Config{Level: level, Service: "upgradeguard"})
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return ExitError
	}
	return exitCode
}

// exitCode is set by commands that gate on a risk threshold.
var exitCode = ExitSuccess

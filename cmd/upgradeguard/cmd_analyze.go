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
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/AleutianAI/upgradeguard/pkg/breaking"
	"github.com/AleutianAI/upgradeguard/pkg/diffscan"
	"github.com/spf13/cobra"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	analyzeDiff  string
	analyzeFrom  string
	analyzeTo    string
	analyzeHints []string
	analyzeJSON  bool
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

var analyzeCmd = &cobra.Command{
	Use:   "analyze PACKAGE",
	Short: "Detect breaking changes in a dependency's source diff",
	Long: `Scan a unified diff for concrete breaking-change evidence.

The diff is typically produced by "npm diff <pkg>@<from> <pkg>@<to>"
and saved to a file. Use "-" to read the diff from stdin.

Detected signals:
  - Raised Node.js engine requirements in package.json
  - Documented markers (BREAKING CHANGE:, [BREAKING])
  - Removed exported APIs and changed function signatures
  - New deprecation annotations

When the diff shows nothing specific but the version pair crosses a
major boundary, a generic major-version finding is emitted instead.

Examples:
  upgradeguard analyze lodash --diff lodash.diff --from 4.17.21 --to 5.0.0
  npm diff lodash@4 lodash@5 | upgradeguard analyze lodash --diff - --from 4 --to 5`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyzeCommand,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeDiff, "diff", "",
		"Path to the unified diff ('-' for stdin)")
	analyzeCmd.Flags().StringVar(&analyzeFrom, "from", "",
		"Installed version")
	analyzeCmd.Flags().StringVar(&analyzeTo, "to", "",
		"Candidate upgrade version")
	analyzeCmd.Flags().StringSliceVar(&analyzeHints, "hint", nil,
		"Public entry point name (repeatable)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false,
		"Output as JSON")

	rootCmd.AddCommand(analyzeCmd)
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runAnalyzeCommand(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	pkg := args[0]

	raw, err := readDiffInput(analyzeDiff)
	if err != nil {
		return err
	}

	changes := diffscan.Parse(raw)
	logger.Debug("diff parsed", "package", pkg, "files", len(changes))

	findings := breaking.NewAnalyzer().Analyze(changes, pkg, analyzeFrom, analyzeTo,
		breaking.Options{PublicEntryHints: analyzeHints})

	if analyzeJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(findings)
	}

	if len(findings) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No breaking-change evidence found.")
		return nil
	}
	for _, f := range findings {
		fmt.Fprintf(cmd.OutOrStdout(), "[%s/%s] %s (%.2f, %s)\n",
			f.Severity, f.Category, f.Text, f.Confidence, f.Source)
	}
	return nil
}

// readDiffInput loads the diff from a file, stdin, or returns empty when
// no diff was supplied.
func readDiffInput(path string) (string, error) {
	switch path {
	case "":
		return "", nil
	case "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read diff from stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read diff: %w", err)
		}
		return string(data), nil
	}
}

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
	"time"

	"github.com/AleutianAI/upgradeguard/pkg/breaking"
	"github.com/AleutianAI/upgradeguard/pkg/diffscan"
	"github.com/AleutianAI/upgradeguard/pkg/risk"
	"github.com/AleutianAI/upgradeguard/pkg/semverjump"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// DefaultBatchSize bounds how many dependencies are assessed in
// parallel.
const DefaultBatchSize = 3

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	assessManifest    string
	assessThreshold   string
	assessJSON        bool
	assessQuiet       bool
	assessConcurrency int
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Assess upgrade risk for the dependencies in a manifest",
	Long: `Run the full risk pipeline over an assessment manifest.

The manifest is a YAML file listing one entry per dependency: the
version pair, an optional saved diff, static-usage counts, test
coverage, evidence sources, and package-type flags. Each entry is
scored independently; entries run in parallel with bounded concurrency.

Example manifest:

  dependencies:
    - package: lodash
      from: 4.17.20
      to: 5.0.0
      diff: ./diffs/lodash.diff
      evidence:
        changelog: changelog-file
      usage:
        direct_usage_count: 12
        critical_path_usage: true
        test_coverage: 80
    - package: "@types/node"
      from: 20.1.0
      to: 20.1.7
      type_definition: true

Exit Codes:
  0 = All assessments at or below the threshold
  1 = At least one assessment above the threshold (or unknown)
  2 = Error (unreadable manifest or diff)`,
	RunE: runAssessCommand,
}

func init() {
	assessCmd.Flags().StringVarP(&assessManifest, "manifest", "m", "",
		"Path to the assessment manifest (required)")
	assessCmd.Flags().StringVar(&assessThreshold, "threshold", "high",
		"Exit 0 if all levels at/below: safe, low, medium, high, critical")
	assessCmd.Flags().BoolVar(&assessJSON, "json", false,
		"Output as JSON")
	assessCmd.Flags().BoolVar(&assessQuiet, "quiet", false,
		"Only exit code, no report")
	assessCmd.Flags().IntVar(&assessConcurrency, "concurrency", DefaultBatchSize,
		"Maximum parallel assessments")
	_ = assessCmd.MarkFlagRequired("manifest")

	rootCmd.AddCommand(assessCmd)
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runAssessCommand(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	start := time.Now()

	manifest, err := LoadManifest(assessManifest)
	if err != nil {
		return err
	}
	logger.Info("assessing dependencies",
		"count", len(manifest.Dependencies),
		"concurrency", assessConcurrency)

	analyzer := breaking.NewAnalyzer()
	results := make([]DependencyReport, len(manifest.Dependencies))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(assessConcurrency, 1))
	for i, entry := range manifest.Dependencies {
		i, entry := i, entry
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = assessDependency(analyzer, entry)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	report := NewReport()
	report.Dependencies = results
	report.DurationMs = time.Since(start).Milliseconds()

	if !assessQuiet {
		if assessJSON || !isatty.IsTerminal(os.Stdout.Fd()) {
			if err := report.writeJSON(cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
		} else {
			report.writeText(cmd.OutOrStdout())
		}
	}

	threshold := risk.ParseLevel(assessThreshold)
	if report.MaxLevel().Exceeds(threshold) {
		exitCode = ExitRiskFound
	}
	return nil
}

// assessDependency runs the engine pipeline for one manifest entry.
// Unreadable diffs degrade to a diff-less assessment rather than
// failing the run; the error is surfaced on the report entry.
func assessDependency(analyzer *breaking.Analyzer, entry DependencyEntry) DependencyReport {
	report := DependencyReport{
		Package: entry.Package,
		From:    entry.From,
		To:      entry.To,
	}

	var changes []diffscan.Change
	evidence := entry.Evidence
	depth := entry.diffDepth()

	if entry.Diff != "" {
		raw, err := os.ReadFile(entry.Diff)
		if err != nil {
			report.Error = fmt.Sprintf("read diff: %v", err)
			evidence.HasCodeDiff = false
			depth = risk.DiffNone
		} else {
			changes = diffscan.Parse(string(raw))
		}
	}

	findings := analyzer.Analyze(changes, entry.Package, entry.From, entry.To,
		breaking.Options{PublicEntryHints: entry.PublicEntryHints})

	report.Findings = findings
	report.Assessment = risk.Assess(risk.Factors{
		Package:          entry.Package,
		Jump:             semverjump.Analyze(entry.From, entry.To),
		Usage:            entry.Usage,
		DiffDepth:        depth,
		BreakingChanges:  findings,
		Evidence:         evidence,
		IsTypeDefinition: entry.TypeDefinition,
		IsDevDependency:  entry.DevDependency,
		IsLockfileOnly:   entry.LockfileOnly,
	})
	return report
}

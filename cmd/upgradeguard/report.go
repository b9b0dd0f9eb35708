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
	"strings"
	"time"

	"github.com/AleutianAI/upgradeguard/pkg/breaking"
	"github.com/AleutianAI/upgradeguard/pkg/risk"
	"github.com/google/uuid"
)

// DependencyReport is the per-dependency section of a report.
type DependencyReport struct {
	Package    string            `json:"package"`
	From       string            `json:"from"`
	To         string            `json:"to"`
	Findings   []breaking.Change `json:"findings"`
	Assessment risk.Assessment   `json:"assessment"`
	Error      string            `json:"error,omitempty"`
}

// Report is the envelope for one assessment run.
type Report struct {
	RunID                string             `json:"run_id"`
	RiskAlgorithmVersion string             `json:"risk_algorithm_version"`
	GeneratedAt          time.Time          `json:"generated_at"`
	Dependencies         []DependencyReport `json:"dependencies"`
	DurationMs           int64              `json:"duration_ms"`
}

// NewReport creates a report envelope with a fresh run ID.
func NewReport() *Report {
	return &Report{
		RunID:                uuid.NewString(),
		RiskAlgorithmVersion: risk.RiskAlgorithmVersion,
		GeneratedAt:          time.Now().UTC(),
		Dependencies:         make([]DependencyReport, 0),
	}
}

// MaxLevel returns the highest risk level in the report. Unknown counts
// as above critical so that threshold gating flags it for review.
func (r *Report) MaxLevel() risk.Level {
	maxLevel := risk.LevelSafe
	for _, dep := range r.Dependencies {
		if dep.Assessment.Level.Order() > maxLevel.Order() {
			maxLevel = dep.Assessment.Level
		}
	}
	return maxLevel
}

// writeJSON renders the report as indented JSON.
func (r *Report) writeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// writeText renders a human-readable report.
func (r *Report) writeText(w io.Writer) {
	for _, dep := range r.Dependencies {
		fmt.Fprintf(w, "%s %s -> %s\n", dep.Package, dep.From, dep.To)
		if dep.Error != "" {
			fmt.Fprintf(w, "  error: %s\n", dep.Error)
			continue
		}

		a := dep.Assessment
		fmt.Fprintf(w, "  risk:       %s (score %.1f, confidence %.2f)\n",
			strings.ToUpper(string(a.Level)), a.Score, a.Confidence)
		fmt.Fprintf(w, "  effort:     %s, testing: %s\n", a.EstimatedEffort, a.TestingScope)

		for _, f := range dep.Findings {
			fmt.Fprintf(w, "  [%s/%s] %s (%.2f)\n", f.Severity, f.Category, f.Text, f.Confidence)
		}
		for _, factor := range a.Factors {
			fmt.Fprintf(w, "  - %s\n", factor)
		}
		for _, step := range a.MitigationSteps {
			fmt.Fprintf(w, "  > %s\n", step)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Overall: %s (%d dependencies, run %s)\n",
		strings.ToUpper(string(r.MaxLevel())), len(r.Dependencies), r.RunID)
}

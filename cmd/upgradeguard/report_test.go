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
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/AleutianAI/upgradeguard/pkg/breaking"
	"github.com/AleutianAI/upgradeguard/pkg/confidence"
	"github.com/AleutianAI/upgradeguard/pkg/risk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func depReport(pkg string, level risk.Level) DependencyReport {
	return DependencyReport{
		Package:    pkg,
		From:       "1.0.0",
		To:         "2.0.0",
		Assessment: risk.Assessment{Level: level},
	}
}

func TestNewReport_Envelope(t *testing.T) {
	r := NewReport()

	assert.NotEmpty(t, r.RunID)
	assert.Equal(t, risk.RiskAlgorithmVersion, r.RiskAlgorithmVersion)
	assert.False(t, r.GeneratedAt.IsZero())
	assert.NotNil(t, r.Dependencies)

	other := NewReport()
	assert.NotEqual(t, r.RunID, other.RunID)
}

func TestReport_MaxLevel(t *testing.T) {
	tests := []struct {
		name   string
		levels []risk.Level
		want   risk.Level
	}{
		{"empty", nil, risk.LevelSafe},
		{"single", []risk.Level{risk.LevelLow}, risk.LevelLow},
		{
			"highest_wins",
			[]risk.Level{risk.LevelSafe, risk.LevelHigh, risk.LevelMedium},
			risk.LevelHigh,
		},
		{
			"unknown_tops_critical",
			[]risk.Level{risk.LevelCritical, risk.LevelUnknown},
			risk.LevelUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReport()
			for i, level := range tt.levels {
				r.Dependencies = append(r.Dependencies, depReport(string(rune('a'+i)), level))
			}
			assert.Equal(t, tt.want, r.MaxLevel())
		})
	}
}

func TestReport_WriteJSON(t *testing.T) {
	r := NewReport()
	r.Dependencies = append(r.Dependencies, depReport("lodash", risk.LevelMedium))

	var buf bytes.Buffer
	require.NoError(t, r.writeJSON(&buf))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, r.RunID, decoded.RunID)
	require.Len(t, decoded.Dependencies, 1)
	assert.Equal(t, risk.LevelMedium, decoded.Dependencies[0].Assessment.Level)
}

func TestReport_WriteText(t *testing.T) {
	r := NewReport()
	dep := depReport("lodash", risk.LevelHigh)
	dep.Findings = []breaking.Change{{
		Text:       "Removed exported API: merge",
		Severity:   breaking.SeverityBreaking,
		Category:   breaking.CategoryRemoval,
		Confidence: 0.8,
	}}
	dep.Assessment.Factors = []string{"Major version jump (+1)"}
	r.Dependencies = append(r.Dependencies, dep)

	failed := depReport("broken", risk.LevelUnknown)
	failed.Error = "read diff: no such file"
	r.Dependencies = append(r.Dependencies, failed)

	var buf bytes.Buffer
	r.writeText(&buf)
	out := buf.String()

	assert.Contains(t, out, "lodash 1.0.0 -> 2.0.0")
	assert.Contains(t, out, "HIGH")
	assert.Contains(t, out, "Removed exported API: merge")
	assert.Contains(t, out, "Major version jump (+1)")
	assert.Contains(t, out, "error: read diff: no such file")
	assert.Contains(t, out, "Overall: UNKNOWN (2 dependencies")
}

func TestAssessDependency_UnreadableDiffDegrades(t *testing.T) {
	entry := DependencyEntry{
		Package:   "lodash",
		From:      "4.17.20",
		To:        "5.0.0",
		Diff:      filepath.Join(t.TempDir(), "absent.diff"),
		DiffDepth: string(risk.DiffFull),
		Evidence:  confidence.Evidence{HasCodeDiff: true},
	}

	got := assessDependency(breaking.NewAnalyzer(), entry)

	assert.Contains(t, got.Error, "read diff")
	require.Len(t, got.Findings, 1, "major fallback finding still expected")
	assert.Contains(t, got.Findings[0].Text, "Major version update")
	assert.NotEmpty(t, got.Assessment.Level)
}

func TestAssessDependency_WithDiff(t *testing.T) {
	diffPath := filepath.Join(t.TempDir(), "pkg.diff")
	raw := "diff --git a/src/index.js b/src/index.js\n" +
		"-export function merge(a, b) {\n"
	require.NoError(t, os.WriteFile(diffPath, []byte(raw), 0600))

	entry := DependencyEntry{
		Package:   "lodash",
		From:      "4.17.20",
		To:        "5.0.0",
		Diff:      diffPath,
		DiffDepth: string(risk.DiffFull),
		Evidence: confidence.Evidence{
			Changelog:   confidence.TierChangelogFile,
			HasCodeDiff: true,
		},
	}

	got := assessDependency(breaking.NewAnalyzer(), entry)

	assert.Empty(t, got.Error)
	require.Len(t, got.Findings, 1)
	assert.Equal(t, breaking.CategoryRemoval, got.Findings[0].Category)
	assert.NotEqual(t, risk.LevelUnknown, got.Assessment.Level)
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package confidence

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

// TestEstimate_Sources tests the additive contribution of each evidence
// source.
func TestEstimate_Sources(t *testing.T) {
	tests := []struct {
		name     string
		evidence Evidence
		want     float64
	}{
		{"no_evidence", Evidence{}, 0.0},
		{"release_notes", Evidence{Changelog: TierReleaseNotes}, 0.5},
		{"changelog_file", Evidence{Changelog: TierChangelogFile}, 0.4},
		{"commit_history", Evidence{Changelog: TierCommitHistory}, 0.3},
		{"code_diff_only", Evidence{HasCodeDiff: true}, 0.2},
		{"summary_only", Evidence{HasSummary: true}, 0.1},
		{"usage_balanced", Evidence{ProductionUsageHits: 3, TestUsageHits: 2}, 0.2},
		{"usage_production_only", Evidence{ProductionUsageHits: 3}, 0.1},
		{"usage_test_only", Evidence{TestUsageHits: 5}, 0.1},
		{
			"diff_plus_changelog",
			Evidence{Changelog: TierChangelogFile, HasCodeDiff: true},
			0.6,
		},
		{
			"everything",
			Evidence{
				Changelog:           TierReleaseNotes,
				HasCodeDiff:         true,
				ProductionUsageHits: 1,
				TestUsageHits:       1,
				HasSummary:          true,
			},
			1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Estimate(tt.evidence)
			if !approx(got, tt.want) {
				t.Errorf("Estimate() = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("Estimate() = %v, outside [0, 1]", got)
			}
		})
	}
}

// TestEstimate_UnknownThreshold tests which source combinations clear the
// trust threshold.
func TestEstimate_UnknownThreshold(t *testing.T) {
	tests := []struct {
		name     string
		evidence Evidence
		trusted  bool
	}{
		{"nothing", Evidence{}, false},
		{"diff_alone", Evidence{HasCodeDiff: true}, false},
		{"commit_history_alone", Evidence{Changelog: TierCommitHistory}, false},
		{"release_notes_alone", Evidence{Changelog: TierReleaseNotes}, true},
		{
			"changelog_plus_diff",
			Evidence{Changelog: TierChangelogFile, HasCodeDiff: true},
			true,
		},
		{
			"commit_history_plus_diff_plus_usage",
			Evidence{Changelog: TierCommitHistory, HasCodeDiff: true, ProductionUsageHits: 1},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Estimate(tt.evidence) >= UnknownThreshold
			if got != tt.trusted {
				t.Errorf("Estimate() >= UnknownThreshold = %v, want %v", got, tt.trusted)
			}
		})
	}
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package confidence scores how trustworthy an assessment's evidence set
// is.
//
// # Description
//
// Each optional information source that was actually obtained contributes
// additively to an overall confidence in [0, 1]. Callers interpret a
// total below 0.5 as "insufficient information": the risk level should be
// reported as unknown rather than scored.
//
// # Thread Safety
//
// Estimate is a pure function and safe for concurrent use.
package confidence

// UnknownThreshold is the confidence below which callers must not trust
// the risk score.
const UnknownThreshold = 0.5

// Source contribution weights. The sum is capped at 1.0.
const (
	WeightReleaseNotes  = 0.5
	WeightChangelogFile = 0.4
	WeightCommitHistory = 0.3
	WeightCodeDiff      = 0.2
	WeightUsageBalanced = 0.2
	WeightUsageOneSided = 0.1
	WeightSummary       = 0.1
)

// ChangelogTier identifies the reliability tier of the changelog source.
type ChangelogTier string

const (
	// TierNone indicates no changelog was obtained.
	TierNone ChangelogTier = "none"

	// TierReleaseNotes indicates curated release notes (most reliable).
	TierReleaseNotes ChangelogTier = "release-notes"

	// TierChangelogFile indicates a CHANGELOG file from the package.
	TierChangelogFile ChangelogTier = "changelog-file"

	// TierCommitHistory indicates raw commit messages (least reliable).
	TierCommitHistory ChangelogTier = "commit-history"
)

// Evidence records which optional information sources were obtained.
type Evidence struct {
	// Changelog is the reliability tier of the changelog source.
	Changelog ChangelogTier `json:"changelog" yaml:"changelog"`

	// HasCodeDiff is true when a source diff was available.
	HasCodeDiff bool `json:"has_code_diff" yaml:"has_code_diff"`

	// ProductionUsageHits counts static-usage findings in production code.
	ProductionUsageHits int `json:"production_usage_hits" yaml:"production_usage_hits"`

	// TestUsageHits counts static-usage findings in test code.
	TestUsageHits int `json:"test_usage_hits" yaml:"test_usage_hits"`

	// HasSummary is true when a supplementary generated summary exists.
	HasSummary bool `json:"has_summary" yaml:"has_summary"`
}

// Estimate computes the additive evidence confidence, capped at 1.0.
//
// # Outputs
//
//   - float64: Confidence in [0, 1]. Zero when no sources are present.
func Estimate(e Evidence) float64 {
	total := 0.0

	switch e.Changelog {
	case TierReleaseNotes:
		total += WeightReleaseNotes
	case TierChangelogFile:
		total += WeightChangelogFile
	case TierCommitHistory:
		total += WeightCommitHistory
	}

	if e.HasCodeDiff {
		total += WeightCodeDiff
	}

	switch {
	case e.ProductionUsageHits > 0 && e.TestUsageHits > 0:
		total += WeightUsageBalanced
	case e.ProductionUsageHits > 0 || e.TestUsageHits > 0:
		total += WeightUsageOneSided
	}

	if e.HasSummary {
		total += WeightSummary
	}

	if total > 1.0 {
		total = 1.0
	}
	return total
}

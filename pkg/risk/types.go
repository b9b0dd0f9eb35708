// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package risk

import (
	"strings"

	"github.com/AleutianAI/upgradeguard/pkg/breaking"
	"github.com/AleutianAI/upgradeguard/pkg/confidence"
	"github.com/AleutianAI/upgradeguard/pkg/semverjump"
)

// RiskAlgorithmVersion is the version of the risk scoring algorithm.
// Increment when making changes that affect risk calculations.
const RiskAlgorithmVersion = "1.0"

// Scoring weights. These are load-bearing: the thresholds in classify.go
// assume exactly these contributions.
const (
	WeightMajor = 20.0
	WeightMinor = 5.0
	WeightPatch = 1.0

	WeightDirectUsage = 2.0
	UsageScoreCap     = 20.0
	CriticalPathBonus = 10.0

	WeightBreakingChange = 5.0
	BreakingScoreCap     = 20.0

	PenaltyNoDiff      = 10.0
	PenaltyPartialDiff = 5.0

	CoverageMitigationMax = 20.0

	TypeDefPatchRelief = 10.0
	TypeDefMinorRelief = 5.0
	TypeDefDamping     = 0.3
	TypeDefMajorFloor  = 10.0

	DevDependencyRelief = 1.0

	LockfileDamping = 0.3
	LockfileCeiling = 10.0

	MinScore = 0.0
	MaxScore = 100.0
)

// Level thresholds on the clamped score.
const (
	ThresholdSafe   = 5.0
	ThresholdLow    = 15.0
	ThresholdMedium = 30.0
	ThresholdHigh   = 50.0
)

// =============================================================================
// Level
// =============================================================================

// Level represents the severity of upgrade risk.
type Level string

const (
	LevelSafe     Level = "safe"
	LevelLow      Level = "low"
	LevelMedium   Level = "medium"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"

	// LevelUnknown signals insufficient information. It bypasses scoring
	// entirely and is never derived from a score.
	LevelUnknown Level = "unknown"
)

// ParseLevel parses a string to Level, defaulting to LevelUnknown.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "safe":
		return LevelSafe
	case "low":
		return LevelLow
	case "medium":
		return LevelMedium
	case "high":
		return LevelHigh
	case "critical":
		return LevelCritical
	default:
		return LevelUnknown
	}
}

// Order returns the numeric order of this level. Unknown sorts highest so
// threshold gating treats it as "needs attention".
func (l Level) Order() int {
	switch l {
	case LevelSafe:
		return 0
	case LevelLow:
		return 1
	case LevelMedium:
		return 2
	case LevelHigh:
		return 3
	case LevelCritical:
		return 4
	default:
		return 5
	}
}

// Exceeds returns true if this level exceeds the threshold.
func (l Level) Exceeds(threshold Level) bool {
	return l.Order() > threshold.Order()
}

// =============================================================================
// Effort and Testing Scope
// =============================================================================

// Effort estimates the remediation work for an upgrade.
type Effort string

const (
	EffortNone        Effort = "none"
	EffortMinimal     Effort = "minimal"
	EffortModerate    Effort = "moderate"
	EffortSignificant Effort = "significant"
	EffortUnknown     Effort = "unknown"
)

// TestingScope recommends how much of the test suite to exercise.
type TestingScope string

const (
	TestingNone        TestingScope = "none"
	TestingUnit        TestingScope = "unit"
	TestingIntegration TestingScope = "integration"
	TestingUnknown     TestingScope = "unknown"
)

// =============================================================================
// Diff Analysis Depth
// =============================================================================

// DiffDepth records how complete the diff analysis input was.
type DiffDepth string

const (
	// DiffFull indicates the complete source diff was analyzed.
	DiffFull DiffDepth = "full"

	// DiffPartial indicates only part of the diff was available.
	DiffPartial DiffDepth = "partial"

	// DiffNone indicates no diff analysis was possible.
	DiffNone DiffDepth = "none"
)

// =============================================================================
// Factors (engine input)
// =============================================================================

// UsageStats describes how the project consumes the dependency. The
// counts come from an external static-analysis collaborator.
type UsageStats struct {
	// DirectUsageCount is the number of direct call/import sites.
	DirectUsageCount int `json:"direct_usage_count" yaml:"direct_usage_count"`

	// CriticalPathUsage is true when the dependency sits on a critical
	// execution path.
	CriticalPathUsage bool `json:"critical_path_usage" yaml:"critical_path_usage"`

	// TestCoverage is the project's coverage percentage in [0, 100].
	TestCoverage float64 `json:"test_coverage" yaml:"test_coverage"`
}

// Factors is the full input bundle for one risk assessment.
//
// Missing optional fields contribute zero; the additive scoring formula
// treats absence as no signal, never as an error.
type Factors struct {
	// Package is the dependency name, used only in factor text.
	Package string `json:"package"`

	// Jump is the semantic version delta.
	Jump semverjump.Jump `json:"version_jump"`

	// Usage describes exposure to the dependency.
	Usage UsageStats `json:"usage"`

	// DiffDepth records how complete the diff input was.
	DiffDepth DiffDepth `json:"diff_analysis_depth"`

	// BreakingChanges are the analyzer findings for this upgrade.
	BreakingChanges []breaking.Change `json:"breaking_changes"`

	// Evidence feeds the confidence estimate.
	Evidence confidence.Evidence `json:"evidence"`

	// IsTypeDefinition marks declaration-only packages (e.g. @types/*).
	IsTypeDefinition bool `json:"is_type_definition"`

	// IsDevDependency marks dependencies not shipped to production.
	IsDevDependency bool `json:"is_dev_dependency"`

	// IsLockfileOnly marks updates where only lockfile metadata changed.
	IsLockfileOnly bool `json:"is_lockfile_only"`
}

// =============================================================================
// Assessment (engine output)
// =============================================================================

// Assessment is the final risk verdict for one dependency upgrade.
type Assessment struct {
	// Level is the classified risk level.
	Level Level `json:"level"`

	// Score is the clamped risk score in [0, 100]. Zero when Level is
	// unknown.
	Score float64 `json:"score"`

	// Confidence is the evidence confidence in [0, 1].
	Confidence float64 `json:"confidence"`

	// Factors lists human-readable contributing reasons.
	Factors []string `json:"factors"`

	// MitigationSteps lists recommended actions before upgrading.
	MitigationSteps []string `json:"mitigation_steps"`

	// EstimatedEffort is derived from Level.
	EstimatedEffort Effort `json:"estimated_effort"`

	// TestingScope is derived from Level.
	TestingScope TestingScope `json:"testing_scope"`
}

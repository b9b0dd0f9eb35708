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

// Score computes the weighted risk score for the given factors.
//
// # Description
//
// Base contributions are additive: version jump, usage exposure,
// breaking-change volume, and a penalty for incomplete diff analysis,
// minus a test-coverage mitigation. Package-type adjustments then run
// sequentially - type-definition relief, dev-dependency relief, then the
// lockfile-only ceiling - each operating on the already-adjusted running
// score. The result is clamped to [MinScore, MaxScore].
//
// # Inputs
//
//   - f: The assessment factors. Zero-value fields contribute nothing.
//
// # Outputs
//
//   - float64: Clamped score in [0, 100].
func Score(f Factors) float64 {
	score := versionJumpScore(f)
	score += usageScore(f.Usage)
	score += breakingChangeScore(len(f.BreakingChanges))
	score += diffDepthPenalty(f.DiffDepth)
	score -= coverageMitigation(f.Usage.TestCoverage)

	if f.IsTypeDefinition {
		score = applyTypeDefinitionRelief(score, f)
	}
	if f.IsDevDependency {
		score -= DevDependencyRelief
	}
	if f.IsLockfileOnly {
		score = min(score*LockfileDamping, LockfileCeiling)
	}

	return clamp(score, MinScore, MaxScore)
}

// versionJumpScore weights the semantic delta. Negative deltas
// (downgrades) contribute nothing.
func versionJumpScore(f Factors) float64 {
	score := WeightMajor*float64(f.Jump.Major) +
		WeightMinor*float64(f.Jump.Minor) +
		WeightPatch*float64(f.Jump.Patch)
	if score < 0 {
		return 0
	}
	return score
}

// usageScore weights direct usage (capped) plus the critical-path bonus.
func usageScore(u UsageStats) float64 {
	score := min(WeightDirectUsage*float64(u.DirectUsageCount), UsageScoreCap)
	if u.CriticalPathUsage {
		score += CriticalPathBonus
	}
	return score
}

// breakingChangeScore weights the finding count, capped.
func breakingChangeScore(count int) float64 {
	return min(WeightBreakingChange*float64(count), BreakingScoreCap)
}

// diffDepthPenalty penalizes incomplete diff analysis.
func diffDepthPenalty(depth DiffDepth) float64 {
	switch depth {
	case DiffNone:
		return PenaltyNoDiff
	case DiffPartial:
		return PenaltyPartialDiff
	default:
		return 0
	}
}

// coverageMitigation scales the maximum mitigation by the coverage
// percentage. Coverage outside [0, 100] is clamped first.
func coverageMitigation(coverage float64) float64 {
	return clamp(coverage, 0, 100) / 100 * CoverageMitigationMax
}

// applyTypeDefinitionRelief discounts declaration-only packages.
//
// Patch-only and minor-only bumps get a flat relief floored at zero. A
// major bump keeps a LOW-level floor: type stubs can still break builds.
// Anything else (no effective bump) is simply damped.
func applyTypeDefinitionRelief(score float64, f Factors) float64 {
	switch {
	case f.Jump.IsPatchOnly():
		return max(0, score-TypeDefPatchRelief)
	case f.Jump.IsMinorOnly():
		return max(0, score-TypeDefMinorRelief)
	case f.Jump.IsMajor():
		return max(score*TypeDefDamping, TypeDefMajorFloor)
	default:
		return score * TypeDefDamping
	}
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

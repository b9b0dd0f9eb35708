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
	"fmt"

	"github.com/AleutianAI/upgradeguard/pkg/breaking"
	"github.com/AleutianAI/upgradeguard/pkg/confidence"
)

// Assess produces the final risk verdict for one dependency upgrade.
//
// # Description
//
// Computes the evidence confidence, applies the unknown override
// (confidence below the threshold with no breaking-change evidence at
// all), and otherwise scores, classifies, and derives the remediation
// estimate. The function is pure: identical inputs yield identical
// assessments, and nothing is shared between calls.
//
// # Inputs
//
//   - f: The assessment factors. Zero-value fields contribute nothing.
//
// # Outputs
//
//   - Assessment: Level, clamped score, confidence, contributing factors,
//     and mitigation steps.
func Assess(f Factors) Assessment {
	conf := confidence.Estimate(f.Evidence)

	if conf < confidence.UnknownThreshold && len(f.BreakingChanges) == 0 {
		return Assessment{
			Level:      LevelUnknown,
			Score:      0,
			Confidence: conf,
			Factors: []string{
				"Insufficient information to assess upgrade risk",
			},
			MitigationSteps: []string{
				"Obtain the package changelog or source diff before upgrading",
				"Re-run the assessment once more evidence is available",
			},
			EstimatedEffort: EffortFor(LevelUnknown),
			TestingScope:    TestingScopeFor(LevelUnknown),
		}
	}

	score := Score(f)
	level := Classify(score, f.IsTypeDefinition)

	return Assessment{
		Level:           level,
		Score:           score,
		Confidence:      conf,
		Factors:         buildFactors(f),
		MitigationSteps: buildMitigations(f, level),
		EstimatedEffort: EffortFor(level),
		TestingScope:    TestingScopeFor(level),
	}
}

// buildFactors lists the human-readable contributing reasons in a fixed
// order so assessments are byte-identical across runs.
func buildFactors(f Factors) []string {
	factors := make([]string, 0, 8)

	switch {
	case f.Jump.IsMajor():
		factors = append(factors, fmt.Sprintf("Major version jump (+%d)", f.Jump.Major))
	case f.Jump.IsMinorOnly():
		factors = append(factors, fmt.Sprintf("Minor version jump (+%d)", f.Jump.Minor))
	case f.Jump.IsPatchOnly():
		factors = append(factors, fmt.Sprintf("Patch version jump (+%d)", f.Jump.Patch))
	}

	if f.Usage.DirectUsageCount > 0 {
		factors = append(factors, fmt.Sprintf("%d direct usage sites", f.Usage.DirectUsageCount))
	}
	if f.Usage.CriticalPathUsage {
		factors = append(factors, "Used on a critical execution path")
	}

	if n := len(f.BreakingChanges); n > 0 {
		factors = append(factors, fmt.Sprintf("%d breaking-change signal(s) detected", n))
		for _, bc := range f.BreakingChanges {
			if bc.Severity == breaking.SeverityCritical {
				factors = append(factors, bc.Text)
			}
		}
	}

	switch f.DiffDepth {
	case DiffNone:
		factors = append(factors, "No source diff analysis available")
	case DiffPartial:
		factors = append(factors, "Only partial source diff analyzed")
	}

	if f.Usage.TestCoverage > 0 {
		factors = append(factors, fmt.Sprintf("Test coverage %.0f%% mitigates regression risk", clamp(f.Usage.TestCoverage, 0, 100)))
	}

	if f.IsTypeDefinition {
		factors = append(factors, "Type-definition package (declarations only)")
	}
	if f.IsDevDependency {
		factors = append(factors, "Development dependency (not shipped to production)")
	}
	if f.IsLockfileOnly {
		factors = append(factors, "Lockfile-only update (no source changes)")
	}

	return factors
}

// buildMitigations derives recommended actions from the findings and the
// classified level, in a fixed order.
func buildMitigations(f Factors, level Level) []string {
	steps := make([]string, 0, 4)

	for _, bc := range f.BreakingChanges {
		if bc.Category == breaking.CategoryRuntimeRequirement {
			steps = append(steps, "Verify the deployment runtime satisfies the raised requirement")
			break
		}
	}
	for _, bc := range f.BreakingChanges {
		if bc.Category == breaking.CategoryRemoval || bc.Category == breaking.CategoryAPIChange {
			steps = append(steps, "Audit call sites for removed or changed APIs before upgrading")
			break
		}
	}

	switch level {
	case LevelSafe:
		steps = append(steps, "No action required beyond the normal upgrade")
	case LevelLow:
		steps = append(steps, "Run the unit test suite after upgrading")
	case LevelMedium:
		steps = append(steps, "Review the package changelog and run the unit test suite")
	case LevelHigh, LevelCritical:
		steps = append(steps, "Review the full changelog and run integration tests before merging")
	}

	if f.IsLockfileOnly {
		steps = append(steps, "Regenerate the lockfile and confirm no resolution drift")
	}

	return steps
}

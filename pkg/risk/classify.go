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

// Classify maps a clamped score to a risk level.
//
// # Description
//
// Pure, monotonic thresholds: score <= 5 is safe, <= 15 low, <= 30
// medium, <= 50 high, else critical. Type-definition packages treat any
// score strictly below the safe threshold as safe even when adjustments
// land the score at the boundary. LevelUnknown is never returned here; it
// is a caller-level override for insufficient confidence (see Assess).
func Classify(score float64, isTypeDefinition bool) Level {
	if isTypeDefinition && score < ThresholdSafe {
		return LevelSafe
	}
	switch {
	case score <= ThresholdSafe:
		return LevelSafe
	case score <= ThresholdLow:
		return LevelLow
	case score <= ThresholdMedium:
		return LevelMedium
	case score <= ThresholdHigh:
		return LevelHigh
	default:
		return LevelCritical
	}
}

// effortByLevel derives the remediation estimate from the level. Effort
// and scope are non-decreasing with level.
var effortByLevel = map[Level]Effort{
	LevelSafe:     EffortNone,
	LevelLow:      EffortMinimal,
	LevelMedium:   EffortModerate,
	LevelHigh:     EffortSignificant,
	LevelCritical: EffortSignificant,
	LevelUnknown:  EffortUnknown,
}

// testingScopeByLevel derives the testing recommendation from the level.
var testingScopeByLevel = map[Level]TestingScope{
	LevelSafe:     TestingNone,
	LevelLow:      TestingUnit,
	LevelMedium:   TestingUnit,
	LevelHigh:     TestingIntegration,
	LevelCritical: TestingIntegration,
	LevelUnknown:  TestingUnknown,
}

// EffortFor returns the estimated remediation effort for a level.
func EffortFor(level Level) Effort {
	if e, ok := effortByLevel[level]; ok {
		return e
	}
	return EffortUnknown
}

// TestingScopeFor returns the recommended testing scope for a level.
func TestingScopeFor(level Level) TestingScope {
	if s, ok := testingScopeByLevel[level]; ok {
		return s
	}
	return TestingUnknown
}

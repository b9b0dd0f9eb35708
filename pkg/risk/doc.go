// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package risk combines upgrade signals into a bounded, monotonic risk
// verdict.
//
// # Overview
//
// The scoring model is a weighted sum over the semantic version jump,
// usage exposure, breaking-change volume, and a confidence penalty, minus
// a test-coverage mitigation, followed by sequential package-type
// adjustments (type-definition, dev-dependency, lockfile-only) and a
// clamp to [0, 100]:
//
//	┌──────────────────────────────────────────────────────────┐
//	│                    Assessment Flow                       │
//	├──────────────────────────────────────────────────────────┤
//	│  Factors ──▶ confidence.Estimate ──▶ unknown override?   │
//	│                    │                                     │
//	│                    ▼                                     │
//	│              Score (weighted sum + adjustments)          │
//	│                    │                                     │
//	│                    ▼                                     │
//	│              Classify (threshold table)                  │
//	│                    │                                     │
//	│                    ▼                                     │
//	│              Assessment (level, factors, mitigation)     │
//	└──────────────────────────────────────────────────────────┘
//
// Weights and thresholds are compiled constants; there is no runtime
// tuning and no shared mutable state.
//
// # Usage
//
//	assessment := risk.Assess(risk.Factors{
//	    Package: "lodash",
//	    Jump:    semverjump.Analyze("4.17.20", "5.0.0"),
//	    Usage:   risk.UsageStats{DirectUsageCount: 12, TestCoverage: 80},
//	})
//
// # Thread Safety
//
// All functions are pure and safe for concurrent use.
package risk

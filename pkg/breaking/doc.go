// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package breaking detects concrete breaking-change evidence in a
// dependency's source diff.
//
// # Overview
//
// The analyzer consumes per-file diff records (see pkg/diffscan) and
// emits typed findings with a category, severity, origin tag, and
// confidence. Rules run in priority order:
//
//	┌──────────────────────────────────────────────────────────┐
//	│                   Rule Pipeline                          │
//	├──────────────────────────────────────────────────────────┤
//	│  node-engine        raised runtime requirement   (0.95)  │
//	│  changelog-marker   documented breaking changes  (0.9)   │
//	│  deprecation        new deprecation annotations  (0.6)   │
//	│  api-decl           removals + signature diffs   (0.8+)  │
//	│  ──────────────────────────────────────────────────────  │
//	│  semver-major       generic fallback, gated on   (0.7)   │
//	│                     "no specific rule fired"             │
//	└──────────────────────────────────────────────────────────┘
//
// False-positive suppression: a declaration removed and re-added with an
// identical parameter list is treated as reformatting; changes under
// test directories never produce api-change or removal findings; the
// generic fallback is suppressed whenever any specific rule fires.
//
// # Usage
//
//	analyzer := breaking.NewAnalyzer()
//	findings := analyzer.Analyze(changes, "lodash", "4.17.21", "5.0.0", breaking.Options{})
//
// # Thread Safety
//
// Analyzer is stateless between calls and safe for concurrent use.
package breaking

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package semverjump computes the semantic version delta between two
// dependency versions.
//
// # Description
//
// Version strings in dependency manifests are frequently not strict semver
// ("16", "v2.1", "1.2.3-beta.1"). This package coerces both endpoints to a
// three-component semantic version before computing per-component deltas.
// When either endpoint cannot be coerced, the analysis falls back to a
// conservative major-level jump so that downstream risk scoring assumes the
// riskiest plausible change instead of failing.
//
// # Thread Safety
//
// All functions are pure and safe for concurrent use.
package semverjump

import (
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Jump holds the per-component version delta (to - from).
type Jump struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
	Patch int `json:"patch"`
}

// Fallback returns the conservative jump used when a version pair cannot
// be parsed. Callers must treat it as "assume at least a major change".
func Fallback() Jump {
	return Jump{Major: 1, Minor: 0, Patch: 0}
}

// IsMajor returns true if the jump crosses a major version boundary.
func (j Jump) IsMajor() bool {
	return j.Major > 0
}

// IsMinorOnly returns true if the jump is a minor bump with no major change.
func (j Jump) IsMinorOnly() bool {
	return j.Major == 0 && j.Minor > 0
}

// IsPatchOnly returns true if only the patch component changed.
func (j Jump) IsPatchOnly() bool {
	return j.Major == 0 && j.Minor == 0 && j.Patch > 0
}

// IsNone returns true if no component increased.
func (j Jump) IsNone() bool {
	return j.Major <= 0 && j.Minor <= 0 && j.Patch <= 0
}

// Analyze computes the semantic delta between two version strings.
//
// # Inputs
//
//   - fromVersion: The currently installed version. May be non-strict semver.
//   - toVersion: The candidate upgrade version. May be non-strict semver.
//
// # Outputs
//
//   - Jump: Per-component deltas (to - from). Fallback() when either
//     version fails to coerce.
func Analyze(fromVersion, toVersion string) Jump {
	from, ok := coerce(fromVersion)
	if !ok {
		return Fallback()
	}
	to, ok := coerce(toVersion)
	if !ok {
		return Fallback()
	}

	return Jump{
		Major: to[0] - from[0],
		Minor: to[1] - from[1],
		Patch: to[2] - from[2],
	}
}

// coerce normalizes a loose version string to three numeric components.
//
// Accepted forms include "16", "2.1", "v1.2.3", and semver with
// prerelease or build suffixes. Missing components default to zero.
func coerce(raw string) ([3]int, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "v")
	s = strings.TrimPrefix(s, "V")
	if s == "" {
		return [3]int{}, false
	}

	// Strip prerelease and build metadata before splitting components.
	if i := strings.IndexAny(s, "-+"); i >= 0 {
		s = s[:i]
	}

	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		return [3]int{}, false
	}
	for len(parts) < 3 {
		parts = append(parts, "0")
	}

	var out [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return [3]int{}, false
		}
		out[i] = n
	}

	// Cross-check against the canonical semver grammar. This rejects
	// component forms like "01" that survive naive Atoi parsing.
	canonical := "v" + parts[0] + "." + parts[1] + "." + parts[2]
	if !semver.IsValid(canonical) {
		return [3]int{}, false
	}

	return out, true
}

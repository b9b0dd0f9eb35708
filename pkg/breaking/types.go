// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package breaking

// =============================================================================
// Severity
// =============================================================================

// Severity grades how disruptive a detected change is.
type Severity string

const (
	// SeverityCritical indicates the change can break at install or load
	// time (e.g. a raised runtime requirement).
	SeverityCritical Severity = "critical"

	// SeverityBreaking indicates an API contract change that can break
	// consumers at call sites.
	SeverityBreaking Severity = "breaking"

	// SeverityWarning indicates heuristic or advisory evidence.
	SeverityWarning Severity = "warning"
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// =============================================================================
// Category
// =============================================================================

// Category classifies the kind of breaking-change evidence.
type Category string

const (
	// CategoryRuntimeRequirement covers raised engine/runtime constraints.
	CategoryRuntimeRequirement Category = "runtime-requirement"

	// CategoryAPIChange covers changed signatures and generic
	// major-version evidence.
	CategoryAPIChange Category = "api-change"

	// CategoryRemoval covers removed exported declarations.
	CategoryRemoval Category = "removal"

	// CategoryDeprecation covers newly deprecated APIs.
	CategoryDeprecation Category = "deprecation"

	// CategoryDocumented covers explicit changelog/readme markers.
	CategoryDocumented Category = "documented-change"
)

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// =============================================================================
// Sources
// =============================================================================

// Origin tags recorded on findings.
const (
	// SourceNpmDiff marks findings derived from the package source diff.
	SourceNpmDiff = "npm-diff"

	// SourceDocumented marks findings derived from changelog/readme markers.
	SourceDocumented = "documented-change"

	// SourceSemverMajor marks the generic major-version fallback.
	SourceSemverMajor = "semver-major"
)

// =============================================================================
// Change
// =============================================================================

// Change is one typed breaking-change finding.
//
// # Description
//
// One logical signal per finding. Confidence is strictly within (0, 1]:
// a finding that cannot be trusted at all is simply not emitted.
type Change struct {
	// Text is the human-readable finding.
	Text string `json:"text"`

	// Severity grades the disruption.
	Severity Severity `json:"severity"`

	// Source is the origin tag (npm-diff, documented-change, semver-major).
	Source string `json:"source"`

	// Category classifies the finding.
	Category Category `json:"category"`

	// Confidence is the per-finding trust score in (0, 1].
	Confidence float64 `json:"confidence"`
}

// Options carries optional analysis hints.
type Options struct {
	// PublicEntryHints lists exported names known to be public entry
	// points of the package. Removal and signature findings for hinted
	// names receive a confidence boost.
	PublicEntryHints []string
}

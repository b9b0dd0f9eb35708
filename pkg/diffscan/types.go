// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package diffscan turns raw unified-diff text into structured per-file
// change records.
//
// # Description
//
// This package is the entry point of the upgrade analysis pipeline: the
// caller obtains a source diff between two published versions of a
// dependency (npm diff, registry tarball comparison, git range) and parses
// it here before handing the records to the breaking-change analyzer.
//
// Parsing is deliberately forgiving. Well-formed diffs take the strict path
// through sourcegraph/go-diff; anything that parser rejects is re-scanned
// with a lenient line scanner so that a best-effort record set is always
// produced. Malformed input never returns an error.
//
// # Thread Safety
//
// All functions are pure and safe for concurrent use. Change values are
// immutable after parse.
package diffscan

// =============================================================================
// Change Types
// =============================================================================

// ChangeType describes how a file was changed.
type ChangeType string

const (
	// ChangeAdded indicates a file with only added lines.
	ChangeAdded ChangeType = "added"

	// ChangeRemoved indicates a file with only removed lines.
	ChangeRemoved ChangeType = "removed"

	// ChangeModified indicates a file with both added and removed lines.
	ChangeModified ChangeType = "modified"
)

// String returns the string representation of the change type.
func (t ChangeType) String() string {
	return string(t)
}

// =============================================================================
// Change
// =============================================================================

// Change represents the accumulated modifications to a single file.
//
// # Description
//
// Content holds the raw changed lines with their leading "+" or "-"
// markers preserved, one per line. Context lines and diff headers are not
// retained; downstream pattern rules only inspect changed lines.
type Change struct {
	// File is the path of the file, without the "b/" prefix.
	File string `json:"file"`

	// Type is derived from the addition/deletion counts.
	Type ChangeType `json:"change_type"`

	// Additions is the number of added lines.
	Additions int `json:"additions"`

	// Deletions is the number of removed lines.
	Deletions int `json:"deletions"`

	// Content is the raw "+"/"-" line content, newline separated.
	Content string `json:"content,omitempty"`
}

// deriveType classifies a file change from its line counts.
func deriveType(additions, deletions int) ChangeType {
	switch {
	case deletions == 0 && additions > 0:
		return ChangeAdded
	case additions == 0 && deletions > 0:
		return ChangeRemoved
	default:
		return ChangeModified
	}
}

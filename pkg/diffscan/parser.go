// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package diffscan

import (
	"strings"

	"github.com/sourcegraph/go-diff/diff"
)

// Parse converts raw unified-diff text into ordered per-file Changes.
//
// # Description
//
// Tries the strict sourcegraph/go-diff parser first. If the input is not a
// well-formed multi-file diff, falls back to a lenient line scan keyed on
// "diff --git" headers. Empty input yields an empty slice, never an error.
//
// # Inputs
//
//   - raw: Unified diff text. May be empty or malformed.
//
// # Outputs
//
//   - []Change: One record per file, in input order.
func Parse(raw string) []Change {
	if strings.TrimSpace(raw) == "" {
		return []Change{}
	}

	fileDiffs, err := diff.ParseMultiFileDiff([]byte(raw))
	if err == nil && len(fileDiffs) > 0 {
		return fromFileDiffs(fileDiffs)
	}

	return scanLenient(raw)
}

// fromFileDiffs builds Changes from strictly parsed file diffs.
func fromFileDiffs(fileDiffs []*diff.FileDiff) []Change {
	changes := make([]Change, 0, len(fileDiffs))
	for _, fd := range fileDiffs {
		var (
			content   []string
			additions int
			deletions int
		)

		for _, hunk := range fd.Hunks {
			for _, line := range strings.Split(string(hunk.Body), "\n") {
				switch {
				case strings.HasPrefix(line, "+"):
					additions++
					content = append(content, line)
				case strings.HasPrefix(line, "-"):
					deletions++
					content = append(content, line)
				}
			}
		}

		changes = append(changes, Change{
			File:      pathFromNames(fd.NewName, fd.OrigName),
			Type:      deriveType(additions, deletions),
			Additions: additions,
			Deletions: deletions,
			Content:   strings.Join(content, "\n"),
		})
	}
	return changes
}

// pathFromNames selects the post-image path, falling back to the pre-image
// path for deleted files, and strips the git "a/"/"b/" prefixes.
func pathFromNames(newName, origName string) string {
	name := newName
	if name == "" || name == "/dev/null" {
		name = origName
	}
	name = strings.TrimPrefix(name, "b/")
	name = strings.TrimPrefix(name, "a/")
	return name
}

// scanLenient is the fallback scanner for diffs the strict parser rejects.
//
// A "diff --git" header flushes the accumulated file record and starts a
// new one; "+"/"-" lines (excluding "+++"/"---" file headers) accumulate
// counts and content. The trailing file is flushed at end of input.
func scanLenient(raw string) []Change {
	var (
		changes   []Change
		current   string
		content   []string
		additions int
		deletions int
		inFile    bool
	)

	flush := func() {
		if !inFile {
			return
		}
		changes = append(changes, Change{
			File:      current,
			Type:      deriveType(additions, deletions),
			Additions: additions,
			Deletions: deletions,
			Content:   strings.Join(content, "\n"),
		})
		content = nil
		additions = 0
		deletions = 0
	}

	for _, line := range strings.Split(raw, "\n") {
		switch {
		case strings.HasPrefix(line, "diff --git"):
			flush()
			current = headerPath(line)
			inFile = true
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			// File headers, not content.
		case strings.HasPrefix(line, "+"):
			if inFile {
				additions++
				content = append(content, line)
			}
		case strings.HasPrefix(line, "-"):
			if inFile {
				deletions++
				content = append(content, line)
			}
		}
	}
	flush()

	if changes == nil {
		return []Change{}
	}
	return changes
}

// headerPath extracts the file path from the "b/<path>" suffix of a
// "diff --git a/<path> b/<path>" header.
func headerPath(header string) string {
	if i := strings.LastIndex(header, " b/"); i >= 0 {
		return header[i+len(" b/"):]
	}
	// Fall back to the last whitespace-separated token.
	fields := strings.Fields(header)
	if len(fields) > 0 {
		return strings.TrimPrefix(fields[len(fields)-1], "b/")
	}
	return ""
}

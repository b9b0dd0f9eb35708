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

import (
	"fmt"

	"github.com/AleutianAI/upgradeguard/pkg/diffscan"
	"github.com/AleutianAI/upgradeguard/pkg/semverjump"
)

// Analyzer runs the ordered breaking-change rule pipeline.
//
// # Thread Safety
//
// Analyzer holds only the immutable rule list and is safe for concurrent
// use. Each Analyze call builds its own context; no findings or counters
// leak between calls.
type Analyzer struct {
	rules []rule
}

// NewAnalyzer creates an Analyzer with the default rule set.
//
// Rules run in priority order: the higher-confidence, more specific rules
// come first so their findings gate the generic major-version fallback.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		rules: []rule{
			nodeEngineRule{},
			changelogMarkerRule{},
			deprecationRule{},
			apiDeclRule{},
		},
	}
}

// Analyze converts parsed diff records into deduplicated findings.
//
// # Description
//
// Two-pass pipeline: pass one runs each specific rule over the full diff
// and collects candidates (suppression of re-added declarations and
// test-directory churn happens inside the rules, which see the whole
// diff). Pass two deduplicates by category and text. The generic
// major-version fallback is emitted only when the version jump crosses a
// major boundary and no specific rule produced any finding.
//
// # Inputs
//
//   - changes: Parsed diff records. May be empty.
//   - pkg: Package name for finding text.
//   - fromVersion, toVersion: Version pair; unparsable pairs are treated
//     as a major-level jump.
//   - opts: Optional hints.
//
// # Outputs
//
//   - []Change: Deduplicated findings, confidence strictly in (0, 1].
//     Never nil.
func (a *Analyzer) Analyze(changes []diffscan.Change, pkg, fromVersion, toVersion string, opts Options) []Change {
	ctx := &ruleContext{
		changes: changes,
		pkg:     pkg,
		from:    fromVersion,
		to:      toVersion,
		jump:    semverjump.Analyze(fromVersion, toVersion),
		hints:   hintSet(opts.PublicEntryHints),
	}

	var candidates []Change
	for _, r := range a.rules {
		candidates = append(candidates, r.apply(ctx)...)
	}

	findings := dedupe(candidates)

	if len(findings) == 0 && ctx.jump.IsMajor() {
		findings = append(findings, Change{
			Text:       fmt.Sprintf("Major version update: %s %s -> %s may include breaking changes", pkg, fromVersion, toVersion),
			Severity:   SeverityWarning,
			Source:     SourceSemverMajor,
			Category:   CategoryAPIChange,
			Confidence: ConfidenceMajorFallback,
		})
	}

	return findings
}

// hintSet builds the lookup set for public entry hints.
func hintSet(hints []string) map[string]struct{} {
	set := make(map[string]struct{}, len(hints))
	for _, h := range hints {
		set[h] = struct{}{}
	}
	return set
}

// dedupe drops findings whose category and text repeat an earlier one,
// preserving first-seen order.
func dedupe(findings []Change) []Change {
	seen := make(map[string]struct{}, len(findings))
	out := make([]Change, 0, len(findings))
	for _, f := range findings {
		key := string(f.Category) + "|" + f.Text
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, f)
	}
	return out
}

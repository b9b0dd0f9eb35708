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
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/AleutianAI/upgradeguard/pkg/diffscan"
	"github.com/AleutianAI/upgradeguard/pkg/semverjump"
)

// Rule confidences. All values must stay within (0, 1].
const (
	ConfidenceRuntimeRequirement = 0.95
	ConfidenceMarkerExplicit     = 0.9  // "BREAKING CHANGE:" / "BREAKING-CHANGE:"
	ConfidenceMarkerTag          = 0.75 // "[BREAKING]"
	ConfidenceSignatureChange    = 0.85
	ConfidenceRemoval            = 0.8
	ConfidenceDeprecation        = 0.6
	ConfidenceMajorFallback      = 0.7

	// HintBoost is added to removal/signature findings whose symbol is a
	// known public entry point. Capped below 1.0 so hinted heuristics
	// never outrank the runtime-requirement rule.
	HintBoost    = 0.1
	HintBoostCap = 0.99
)

// ruleContext bundles the immutable inputs shared by all rules for one
// analysis call. Rules never mutate it.
type ruleContext struct {
	changes []diffscan.Change
	pkg     string
	from    string
	to      string
	jump    semverjump.Jump
	hints   map[string]struct{}
}

// rule is one independent detection rule over the parsed diff.
type rule interface {
	name() string
	apply(ctx *ruleContext) []Change
}

// =============================================================================
// Runtime Requirement Rule
// =============================================================================

var nodeEngineRe = regexp.MustCompile(`"node"\s*:\s*"([^"]+)"`)
var leadingIntRe = regexp.MustCompile(`\d+`)

// nodeEngineRule detects a raised Node.js engine constraint in
// package.json.
type nodeEngineRule struct{}

func (nodeEngineRule) name() string { return "node-engine" }

func (nodeEngineRule) apply(ctx *ruleContext) []Change {
	var findings []Change
	for _, change := range ctx.changes {
		if path.Base(change.File) != "package.json" {
			continue
		}

		var oldConstraint, newConstraint string
		for _, line := range strings.Split(change.Content, "\n") {
			m := nodeEngineRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			switch {
			case strings.HasPrefix(line, "-"):
				oldConstraint = m[1]
			case strings.HasPrefix(line, "+"):
				newConstraint = m[1]
			}
		}

		if oldConstraint == "" || newConstraint == "" {
			continue
		}
		oldBound, okOld := leadingInt(oldConstraint)
		newBound, okNew := leadingInt(newConstraint)
		if !okOld || !okNew || newBound <= oldBound {
			continue
		}

		findings = append(findings, Change{
			Text:       fmt.Sprintf("Node.js requirement raised from %s to %s", oldConstraint, newConstraint),
			Severity:   SeverityCritical,
			Source:     SourceNpmDiff,
			Category:   CategoryRuntimeRequirement,
			Confidence: ConfidenceRuntimeRequirement,
		})
	}
	return findings
}

// leadingInt extracts the first integer in a version constraint like
// ">=16" or "^18.2.0".
func leadingInt(constraint string) (int, bool) {
	m := leadingIntRe.FindString(constraint)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// =============================================================================
// Documented Marker Rule
// =============================================================================

// marker is a literal changelog/readme breaking-change marker.
type marker struct {
	literal    string
	confidence float64
}

// Ordered by specificity: the first marker found on a line wins, so the
// colon forms take precedence over the bare tag.
var breakingMarkers = []marker{
	{"BREAKING CHANGE:", ConfidenceMarkerExplicit},
	{"BREAKING-CHANGE:", ConfidenceMarkerExplicit},
	{"[BREAKING]", ConfidenceMarkerTag},
}

// changelogMarkerRule emits one documented-change finding per marker
// occurrence in added lines.
type changelogMarkerRule struct{}

func (changelogMarkerRule) name() string { return "changelog-marker" }

func (changelogMarkerRule) apply(ctx *ruleContext) []Change {
	var findings []Change
	for _, change := range ctx.changes {
		for _, line := range strings.Split(change.Content, "\n") {
			if !strings.HasPrefix(line, "+") {
				continue
			}
			for _, mk := range breakingMarkers {
				idx := strings.Index(line, mk.literal)
				if idx < 0 {
					continue
				}
				text := strings.TrimSpace(line[idx+len(mk.literal):])
				if text == "" {
					text = "Documented breaking change"
				}
				findings = append(findings, Change{
					Text:       text,
					Severity:   SeverityBreaking,
					Source:     SourceDocumented,
					Category:   CategoryDocumented,
					Confidence: mk.confidence,
				})
				break
			}
		}
	}
	return findings
}

// =============================================================================
// Deprecation Rule
// =============================================================================

var deprecationMarkers = []string{"@deprecated", "DEPRECATED:", "[DEPRECATED]"}

// deprecationRule flags newly added deprecation annotations.
type deprecationRule struct{}

func (deprecationRule) name() string { return "deprecation" }

func (deprecationRule) apply(ctx *ruleContext) []Change {
	var findings []Change
	for _, change := range ctx.changes {
		if isTestPath(change.File) {
			continue
		}
		for _, line := range strings.Split(change.Content, "\n") {
			if !strings.HasPrefix(line, "+") {
				continue
			}
			for _, mk := range deprecationMarkers {
				if !strings.Contains(line, mk) {
					continue
				}
				findings = append(findings, Change{
					Text:       fmt.Sprintf("Deprecation in %s: %s", change.File, strings.TrimSpace(strings.TrimPrefix(line, "+"))),
					Severity:   SeverityWarning,
					Source:     SourceNpmDiff,
					Category:   CategoryDeprecation,
					Confidence: ConfidenceDeprecation,
				})
				break
			}
		}
	}
	return findings
}

// =============================================================================
// API Declaration Rule (removals + signature changes)
// =============================================================================

// declPatterns match exported JS/TS declarations on a stripped line.
// Submatch 1 is the symbol name; submatch 2 (when present) the raw
// parameter list.
var declPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^export\s+(?:default\s+)?(?:async\s+)?function\s*\*?\s*([A-Za-z_$][\w$]*)\s*\(([^)]*)\)`),
	regexp.MustCompile(`^export\s+(?:default\s+)?(?:abstract\s+)?class\s+([A-Za-z_$][\w$]*)`),
	regexp.MustCompile(`^export\s+const\s+([A-Za-z_$][\w$]*)\s*=\s*(?:async\s+)?\(([^)]*)\)\s*=>`),
	regexp.MustCompile(`^(?:module\.)?exports\.([A-Za-z_$][\w$]*)\s*=\s*(?:async\s+)?function\s*\(([^)]*)\)`),
}

// decl is one exported declaration seen in the diff.
type decl struct {
	name   string
	params string
	file   string
}

// apiDeclRule diffs exported declarations between the "-" and "+" sides.
//
// A removed declaration re-added with identical parameters is treated as
// reformatting or relocation and suppressed. Same name with a different
// parameter list becomes a signature-change finding; a name with no "+"
// counterpart becomes a removal finding. Test-directory files are excluded
// entirely.
type apiDeclRule struct{}

func (apiDeclRule) name() string { return "api-decl" }

func (apiDeclRule) apply(ctx *ruleContext) []Change {
	removed := make(map[string]decl)
	added := make(map[string]decl)
	var removedOrder []string

	for _, change := range ctx.changes {
		if isTestPath(change.File) {
			continue
		}
		for _, line := range strings.Split(change.Content, "\n") {
			var side byte
			switch {
			case strings.HasPrefix(line, "-"):
				side = '-'
			case strings.HasPrefix(line, "+"):
				side = '+'
			default:
				continue
			}

			d, ok := matchDecl(strings.TrimSpace(line[1:]), change.File)
			if !ok {
				continue
			}
			if side == '-' {
				if _, seen := removed[d.name]; !seen {
					removedOrder = append(removedOrder, d.name)
				}
				removed[d.name] = d
			} else {
				added[d.name] = d
			}
		}
	}

	var findings []Change
	for _, name := range removedOrder {
		old := removed[name]
		replacement, reAdded := added[name]
		switch {
		case reAdded && replacement.params == old.params:
			// Reformatting or relocation, not a breakage.
		case reAdded:
			findings = append(findings, ctx.withHintBoost(name, Change{
				Text:       fmt.Sprintf("Function signatures changed: %s(%s)", name, replacement.params),
				Severity:   SeverityBreaking,
				Source:     SourceNpmDiff,
				Category:   CategoryAPIChange,
				Confidence: ConfidenceSignatureChange,
			}))
		default:
			findings = append(findings, ctx.withHintBoost(name, Change{
				Text:       fmt.Sprintf("Removed exported API: %s", name),
				Severity:   SeverityBreaking,
				Source:     SourceNpmDiff,
				Category:   CategoryRemoval,
				Confidence: ConfidenceRemoval,
			}))
		}
	}
	return findings
}

// withHintBoost raises confidence for symbols named in PublicEntryHints.
func (ctx *ruleContext) withHintBoost(name string, c Change) Change {
	if _, ok := ctx.hints[name]; !ok {
		return c
	}
	c.Confidence = min(c.Confidence+HintBoost, HintBoostCap)
	return c
}

// matchDecl matches a stripped content line against the declaration
// patterns and returns the normalized declaration.
func matchDecl(line, file string) (decl, bool) {
	for _, re := range declPatterns {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		d := decl{name: m[1], file: file}
		if len(m) > 2 {
			d.params = normalizeParams(m[2])
		}
		return d, true
	}
	return decl{}, false
}

// normalizeParams canonicalizes a raw parameter list so that pure
// whitespace differences do not read as signature changes.
func normalizeParams(raw string) string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Join(strings.Fields(p), " ")
		p = strings.ReplaceAll(p, " :", ":")
		p = strings.ReplaceAll(p, ": ", ":")
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ",")
}

// =============================================================================
// Shared Helpers
// =============================================================================

// testDirNames are path segments that mark test-only code. Changes under
// these directories never produce api-change or removal findings.
var testDirNames = map[string]struct{}{
	"test":      {},
	"tests":     {},
	"__tests__": {},
	"spec":      {},
	"__specs__": {},
}

// isTestPath reports whether the file lies under a conventional test
// directory.
func isTestPath(file string) bool {
	for _, segment := range strings.Split(file, "/") {
		if _, ok := testDirNames[segment]; ok {
			return true
		}
	}
	return false
}

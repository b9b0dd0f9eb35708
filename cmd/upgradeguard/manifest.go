// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/AleutianAI/upgradeguard/pkg/confidence"
	"github.com/AleutianAI/upgradeguard/pkg/risk"
	"gopkg.in/yaml.v3"
)

// Sentinel errors for manifest loading.
var (
	// ErrNoDependencies is returned when the manifest lists no entries.
	ErrNoDependencies = errors.New("manifest contains no dependencies")

	// ErrMissingPackage is returned when an entry has no package name.
	ErrMissingPackage = errors.New("dependency entry missing package name")
)

// DependencyEntry is one dependency to assess, with the externally
// supplied facts the engine consumes.
type DependencyEntry struct {
	// Package is the dependency name. Required.
	Package string `yaml:"package"`

	// From and To are the version pair. Loose semver is accepted;
	// unparsable pairs are scored as a major-level jump.
	From string `yaml:"from"`
	To   string `yaml:"to"`

	// Diff is an optional path to a unified diff between the versions
	// (e.g. the output of "npm diff").
	Diff string `yaml:"diff,omitempty"`

	// DiffDepth overrides the derived analysis depth (full, partial,
	// none). Defaults to full when Diff is set, none otherwise.
	DiffDepth string `yaml:"diff_depth,omitempty"`

	// PublicEntryHints lists exported names known to be public entry
	// points of the package.
	PublicEntryHints []string `yaml:"public_entry_hints,omitempty"`

	// Usage holds static-usage counts and coverage from the project.
	Usage risk.UsageStats `yaml:"usage"`

	// Evidence records which information sources were obtained.
	Evidence confidence.Evidence `yaml:"evidence"`

	// Package-type flags.
	TypeDefinition bool `yaml:"type_definition,omitempty"`
	DevDependency  bool `yaml:"dev_dependency,omitempty"`
	LockfileOnly   bool `yaml:"lockfile_only,omitempty"`
}

// Manifest is the assessment input file.
type Manifest struct {
	Dependencies []DependencyEntry `yaml:"dependencies"`
}

// LoadManifest reads and validates an assessment manifest.
//
// # Inputs
//
//   - path: Path to the YAML manifest.
//
// # Outputs
//
//   - *Manifest: The validated manifest with derived defaults applied.
//   - error: Non-nil on read, parse, or validation failure.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	if len(m.Dependencies) == 0 {
		return nil, ErrNoDependencies
	}

	for i := range m.Dependencies {
		entry := &m.Dependencies[i]
		if entry.Package == "" {
			return nil, fmt.Errorf("%w (entry %d)", ErrMissingPackage, i)
		}
		applyDefaults(entry)
	}

	return &m, nil
}

// applyDefaults derives unset fields from what the entry provides.
func applyDefaults(entry *DependencyEntry) {
	if entry.Diff != "" {
		entry.Evidence.HasCodeDiff = true
		if entry.DiffDepth == "" {
			entry.DiffDepth = string(risk.DiffFull)
		}
	}
	if entry.DiffDepth == "" {
		entry.DiffDepth = string(risk.DiffNone)
	}
}

// diffDepth converts the manifest string to the engine enum,
// conservatively treating unrecognized values as none.
func (e *DependencyEntry) diffDepth() risk.DiffDepth {
	switch e.DiffDepth {
	case string(risk.DiffFull):
		return risk.DiffFull
	case string(risk.DiffPartial):
		return risk.DiffPartial
	default:
		return risk.DiffNone
	}
}

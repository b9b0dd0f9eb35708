// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package semverjump

import "testing"

// TestAnalyze_LooseFormats tests coercion of non-strict version strings.
func TestAnalyze_LooseFormats(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want Jump
	}{
		{"strict_semver", "1.2.3", "2.0.0", Jump{Major: 1, Minor: -2, Patch: -3}},
		{"major_only", "16", "18", Jump{Major: 2}},
		{"v_prefix", "v2.1", "v2.3", Jump{Minor: 2}},
		{"two_component", "2.1", "3.0", Jump{Major: 1, Minor: -1}},
		{"prerelease_stripped", "1.2.3-beta.1", "1.2.4", Jump{Patch: 1}},
		{"build_metadata_stripped", "1.0.0+build.5", "1.0.1", Jump{Patch: 1}},
		{"patch_bump", "4.17.20", "4.17.21", Jump{Patch: 1}},
		{"identical", "1.0.0", "1.0.0", Jump{}},
		{"downgrade", "2.0.0", "1.0.0", Jump{Major: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Analyze(tt.from, tt.to); got != tt.want {
				t.Errorf("Analyze(%q, %q) = %+v, want %+v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

// TestAnalyze_Fallback tests the conservative fallback for unparsable
// input.
func TestAnalyze_Fallback(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
	}{
		{"garbage_from", "not-a-version", "2.0.0"},
		{"garbage_to", "1.0.0", "latest"},
		{"empty_from", "", "2.0.0"},
		{"empty_to", "1.0.0", ""},
		{"four_components", "1.2.3.4", "2.0.0"},
		{"negative_component", "-1.0.0", "2.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Analyze(tt.from, tt.to); got != Fallback() {
				t.Errorf("Analyze(%q, %q) = %+v, want fallback %+v",
					tt.from, tt.to, got, Fallback())
			}
		})
	}
}

// TestJump_Predicates tests the jump classification helpers.
func TestJump_Predicates(t *testing.T) {
	tests := []struct {
		name      string
		jump      Jump
		major     bool
		minorOnly bool
		patchOnly bool
		none      bool
	}{
		{"major", Jump{Major: 1}, true, false, false, false},
		{"minor_only", Jump{Minor: 2}, false, true, false, false},
		{"minor_and_patch", Jump{Minor: 1, Patch: 3}, false, true, false, false},
		{"patch_only", Jump{Patch: 1}, false, false, true, false},
		{"none", Jump{}, false, false, false, true},
		{"downgrade", Jump{Major: -1}, false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.jump.IsMajor(); got != tt.major {
				t.Errorf("IsMajor() = %v, want %v", got, tt.major)
			}
			if got := tt.jump.IsMinorOnly(); got != tt.minorOnly {
				t.Errorf("IsMinorOnly() = %v, want %v", got, tt.minorOnly)
			}
			if got := tt.jump.IsPatchOnly(); got != tt.patchOnly {
				t.Errorf("IsPatchOnly() = %v, want %v", got, tt.patchOnly)
			}
			if got := tt.jump.IsNone(); got != tt.none {
				t.Errorf("IsNone() = %v, want %v", got, tt.none)
			}
		})
	}
}

// TestFallback tests the fallback constant.
func TestFallback(t *testing.T) {
	fb := Fallback()
	if !fb.IsMajor() {
		t.Error("Fallback() must be a major-level jump")
	}
	if fb != (Jump{Major: 1}) {
		t.Errorf("Fallback() = %+v, want {Major:1}", fb)
	}
}

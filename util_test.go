// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package xtypes

import "testing"

func TestProductU32(t *testing.T) {
	tests := []struct {
		name string
		dims []uint32
		want uint32
	}{
		{"empty", nil, 0},
		{"single", []uint32{5}, 5},
		{"two axes", []uint32{2, 3}, 6},
		{"zero axis", []uint32{4, 0, 2}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := productU32(tt.dims); got != tt.want {
				t.Errorf("productU32(%v) = %d, want %d", tt.dims, got, tt.want)
			}
		})
	}
}

func TestMaxMinU32(t *testing.T) {
	if got := maxU32(3, 7); got != 7 {
		t.Errorf("maxU32(3,7) = %d, want 7", got)
	}
	if got := minU32(3, 7); got != 3 {
		t.Errorf("minU32(3,7) = %d, want 3", got)
	}
}

func TestIsValidMemberName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"", false},
		{"field", true},
		{"_field", true},
		{"field_1", true},
		{"1field", false},
		{"field one", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isValidMemberName(tt.name); got != tt.want {
				t.Errorf("isValidMemberName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestStorageWidthForBitBound(t *testing.T) {
	tests := []struct {
		bitBound uint32
		want     uint32
		ok       bool
	}{
		{1, 1, true},
		{8, 1, true},
		{9, 2, true},
		{16, 2, true},
		{17, 4, true},
		{32, 4, true},
		{33, 8, true},
		{64, 8, true},
		{65, 0, false},
	}
	for _, tt := range tests {
		got, rc := storageWidthForBitBound(tt.bitBound)
		if tt.ok && (got != tt.want || !rc.OK()) {
			t.Errorf("storageWidthForBitBound(%d) = (%d, %v), want (%d, OK)", tt.bitBound, got, rc, tt.want)
		}
		if !tt.ok && rc.OK() {
			t.Errorf("storageWidthForBitBound(%d) = OK, want RetcodeBadParameter", tt.bitBound)
		}
	}
}

func TestTrimNul(t *testing.T) {
	if got := trimNul("hello\x00garbage"); got != "hello" {
		t.Errorf("trimNul = %q, want %q", got, "hello")
	}
	if got := trimNul("noterm"); got != "noterm" {
		t.Errorf("trimNul = %q, want %q", got, "noterm")
	}
}

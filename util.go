// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package xtypes

import "strings"

// maxU32 returns the larger of x or y.
func maxU32(x, y uint32) uint32 {
	if x < y {
		return y
	}
	return x
}

// minU32 returns the smaller of x or y.
func minU32(x, y uint32) uint32 {
	if x < y {
		return x
	}
	return y
}

// productU32 returns the product of dims, or 0 if dims is empty or any
// dimension is 0. Used for ARRAY's total_bounds.
func productU32(dims []uint32) uint32 {
	if len(dims) == 0 {
		return 0
	}
	p := uint32(1)
	for _, d := range dims {
		if d == 0 {
			return 0
		}
		p *= d
	}
	return p
}

// isValidMemberName reports whether name is a non-empty identifier-shaped
// string. Anonymous composite type names are allowed to be empty, but
// member and literal names are not.
func isValidMemberName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// storageWidthForBitBound returns the BITMASK/ENUM storage width in bytes:
// ceil(bit_bound/8) rounded up to the next power-of-two CDR primitive
// width, one of {1,2,4,8}.
func storageWidthForBitBound(bitBound uint32) (uint32, ReturnCode) {
	bytes := (bitBound + 7) / 8
	switch {
	case bytes <= 1:
		return 1, RetcodeOK
	case bytes <= 2:
		return 2, RetcodeOK
	case bytes <= 4:
		return 4, RetcodeOK
	case bytes <= 8:
		return 8, RetcodeOK
	}
	return 0, RetcodeBadParameter
}

// trimNul drops a single trailing NUL byte some CDR strings carry, and any
// bytes that follow it, matching the C-string convention STRING8 uses.
func trimNul(s string) string {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return s[:i]
	}
	return s
}

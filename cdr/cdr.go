// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

// Package cdr implements the OMG CDR v1 primitive read/write contract the
// xtypes codec drives: natural alignment on {1,2,4,8}-byte boundaries,
// length-prefixed STRING8, and UTF-16 STRING16/CHAR16 encoding. It has no
// notion of DynamicType or DynamicData; callers supply bytes and a
// current alignment offset and get back a widened primitive.
package cdr

import "errors"

// ErrShortBuffer is returned by every Reader method when the underlying
// buffer has fewer bytes remaining than the primitive being read requires.
var ErrShortBuffer = errors.New("cdr: short buffer")

// pad returns the number of padding bytes needed to align offset up to a
// width-byte boundary (width one of 1, 2, 4, 8).
func pad(offset, width int) int {
	if width <= 1 {
		return 0
	}
	rem := offset % width
	if rem == 0 {
		return 0
	}
	return width - rem
}

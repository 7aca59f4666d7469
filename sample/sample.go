// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

// Package sample memory-maps a recorded raw CDR sample blob for inspection
// tooling. It is deliberately kept outside the core xtypes package: the
// type/value-tree traversal does zero I/O, and mmap'ing a multi-megabyte
// capture has no business happening on the hot path of a DynamicData
// method.
package sample

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// Blob is a read-only memory-mapped CDR sample file.
type Blob struct {
	f    *os.File
	data mmap.MMap
}

// Open memory-maps name read-only.
func Open(name string) (*Blob, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &Blob{f: f, data: data}, nil
}

// Bytes returns the mapped contents, valid until Close.
func (b *Blob) Bytes() []byte { return b.data }

// Len reports the blob's byte length.
func (b *Blob) Len() int { return len(b.data) }

// Close unmaps the file and releases the descriptor.
func (b *Blob) Close() error {
	if b.data != nil {
		_ = b.data.Unmap()
	}
	if b.f != nil {
		return b.f.Close()
	}
	return nil
}

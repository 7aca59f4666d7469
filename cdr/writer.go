// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package cdr

import (
	"encoding/binary"
	"math"

	"golang.org/x/text/encoding/unicode"
)

// Writer accumulates a CDR-encoded byte stream, little- or big-endian per
// the enclosing frame's flag; byte order is never negotiated here, the
// caller picks the ByteOrder at construction.
type Writer struct {
	buf   []byte
	order binary.ByteOrder
}

// NewWriter returns an empty Writer. littleEndian selects the frame's byte
// order; alignment is always measured from offset 0 of this Writer's own
// buffer (callers that embed a sub-stream pass CurrentAlignment as an
// offset bias via Skip/Align).
func NewWriter(littleEndian bool) *Writer {
	w := &Writer{order: binary.BigEndian}
	if littleEndian {
		w.order = binary.LittleEndian
	}
	return w
}

// Bytes returns the accumulated byte stream.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the current stream length, usable as "current_alignment"
// for a nested size computation.
func (w *Writer) Len() int { return len(w.buf) }

// Align pads the stream with zero bytes until its length is a multiple of
// width (width one of 1, 2, 4, 8).
func (w *Writer) Align(width int) {
	if n := pad(len(w.buf), width); n > 0 {
		w.buf = append(w.buf, make([]byte, n)...)
	}
}

// Skip appends n zero bytes without regard to alignment, used to seed a
// Writer with a "current_alignment" baseline before a size-prediction pass
// (see codec_size.go).
func (w *Writer) Skip(n int) {
	if n > 0 {
		w.buf = append(w.buf, make([]byte, n)...)
	}
}

// AppendRaw appends b verbatim, used to splice a trial sub-encoding (e.g.
// a union's chosen max-size branch) computed against the same alignment
// baseline as w.
func (w *Writer) AppendRaw(b []byte) {
	w.buf = append(w.buf, b...)
}

func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf = append(w.buf, 1)
	} else {
		w.buf = append(w.buf, 0)
	}
}

func (w *Writer) WriteByte(v byte) { w.buf = append(w.buf, v) }

func (w *Writer) WriteInt16(v int16) { w.WriteUint16(uint16(v)) }

func (w *Writer) WriteUint16(v uint16) {
	w.Align(2)
	var b [2]byte
	w.order.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) WriteInt32(v int32) { w.WriteUint32(uint32(v)) }

func (w *Writer) WriteUint32(v uint32) {
	w.Align(4)
	var b [4]byte
	w.order.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) WriteInt64(v int64) { w.WriteUint64(uint64(v)) }

func (w *Writer) WriteUint64(v uint64) {
	w.Align(8)
	var b [8]byte
	w.order.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) WriteFloat32(v float32) { w.WriteUint32(math.Float32bits(v)) }

func (w *Writer) WriteFloat64(v float64) { w.WriteUint64(math.Float64bits(v)) }

// WriteFloat128 writes a 16-byte CDR long double. xtypes represents
// FLOAT128 values as decimal text (no native Go type); the payload here is
// the IEEE 754 binary64 rendering of that text zero-extended to 128 bits,
// sufficient to round-trip through this codec's own reader (see
// DESIGN.md).
func (w *Writer) WriteFloat128(bits64 uint64) {
	w.Align(8)
	var b [16]byte
	w.order.PutUint64(b[0:8], bits64)
	w.buf = append(w.buf, b[:]...)
}

// WriteChar16 writes a CDR wide char as 4 bytes.
func (w *Writer) WriteChar16(v rune) { w.WriteUint32(uint32(v)) }

// WriteString writes a STRING8: a 32-bit length (character count including
// the terminating NUL) followed by the UTF-8 bytes and a trailing NUL.
func (w *Writer) WriteString(s string) {
	w.WriteUint32(uint32(len(s) + 1))
	w.buf = append(w.buf, s...)
	w.buf = append(w.buf, 0)
}

var utf16Encoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()

// WriteWString writes a STRING16: a 32-bit character count followed by
// that many 2-byte UTF-16 code units (no terminating NUL, per CDR rules).
// The length prefix itself is 4 bytes; the payload is 2 bytes per code
// unit.
func (w *Writer) WriteWString(s string) {
	encoded, err := utf16Encoder.String(s)
	if err != nil {
		encoded = ""
	}
	units := len(encoded) / 2
	w.WriteUint32(uint32(units))
	w.Align(2)
	w.buf = append(w.buf, encoded...)
}

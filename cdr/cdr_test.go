// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package cdr

import "testing"

func TestWriterAlignsBeforeWidenPrimitives(t *testing.T) {
	w := NewWriter(true)
	w.WriteByte(1)
	w.WriteUint32(0xDEADBEEF)
	if got := w.Len(); got != 8 {
		t.Fatalf("Len() = %d, want 8 (1 byte + 3 padding + 4)", got)
	}
	if w.Bytes()[1] != 0 || w.Bytes()[2] != 0 || w.Bytes()[3] != 0 {
		t.Fatalf("padding bytes not zero: %v", w.Bytes()[1:4])
	}
}

func TestWriterReaderRoundTripPrimitives(t *testing.T) {
	w := NewWriter(true)
	w.WriteBool(true)
	w.WriteInt16(-7)
	w.WriteUint32(42)
	w.WriteInt64(-123456789)
	w.WriteFloat64(3.5)

	r := NewReader(w.Bytes(), true)
	if v, err := r.ReadBool(); err != nil || !v {
		t.Fatalf("ReadBool() = (%v, %v), want (true, nil)", v, err)
	}
	if v, err := r.ReadInt16(); err != nil || v != -7 {
		t.Fatalf("ReadInt16() = (%d, %v), want (-7, nil)", v, err)
	}
	if v, err := r.ReadUint32(); err != nil || v != 42 {
		t.Fatalf("ReadUint32() = (%d, %v), want (42, nil)", v, err)
	}
	if v, err := r.ReadInt64(); err != nil || v != -123456789 {
		t.Fatalf("ReadInt64() = (%d, %v), want (-123456789, nil)", v, err)
	}
	if v, err := r.ReadFloat64(); err != nil || v != 3.5 {
		t.Fatalf("ReadFloat64() = (%v, %v), want (3.5, nil)", v, err)
	}
	if r.Remaining() != 0 {
		t.Fatalf("Remaining() = %d, want 0", r.Remaining())
	}
}

func TestStringRoundTrip(t *testing.T) {
	w := NewWriter(true)
	w.WriteString("hello")
	r := NewReader(w.Bytes(), true)
	s, err := r.ReadString()
	if err != nil || s != "hello" {
		t.Fatalf("ReadString() = (%q, %v), want (hello, nil)", s, err)
	}
}

func TestStringEmptyRoundTrip(t *testing.T) {
	w := NewWriter(true)
	w.WriteString("")
	r := NewReader(w.Bytes(), true)
	s, err := r.ReadString()
	if err != nil || s != "" {
		t.Fatalf("ReadString() = (%q, %v), want (\"\", nil)", s, err)
	}
}

func TestWStringRoundTrip(t *testing.T) {
	w := NewWriter(true)
	w.WriteWString("héllo")
	r := NewReader(w.Bytes(), true)
	s, err := r.ReadWString()
	if err != nil || s != "héllo" {
		t.Fatalf("ReadWString() = (%q, %v), want (héllo, nil)", s, err)
	}
}

func TestChar16Is4BytesWide(t *testing.T) {
	w := NewWriter(true)
	w.WriteChar16('A')
	if got := w.Len(); got != 4 {
		t.Fatalf("Len() after WriteChar16 = %d, want 4", got)
	}
	r := NewReader(w.Bytes(), true)
	v, err := r.ReadChar16()
	if err != nil || v != 'A' {
		t.Fatalf("ReadChar16() = (%q, %v), want (A, nil)", v, err)
	}
}

func TestFloat128RoundTripsBinary64Payload(t *testing.T) {
	w := NewWriter(true)
	w.WriteFloat128(0x3FF0000000000000) // 1.0 as binary64 bits
	if got := w.Len(); got != 16 {
		t.Fatalf("Len() after WriteFloat128 = %d, want 16", got)
	}
	r := NewReader(w.Bytes(), true)
	bits, err := r.ReadFloat128()
	if err != nil || bits != 0x3FF0000000000000 {
		t.Fatalf("ReadFloat128() = (%#x, %v), want (0x3ff0000000000000, nil)", bits, err)
	}
}

func TestShortBufferReturnsError(t *testing.T) {
	r := NewReader([]byte{1, 2}, true)
	if _, err := r.ReadUint64(); err != ErrShortBuffer {
		t.Fatalf("ReadUint64() on short buffer = %v, want ErrShortBuffer", err)
	}
}

func TestBigEndianOrder(t *testing.T) {
	w := NewWriter(false)
	w.WriteUint32(1)
	if w.Bytes()[3] != 1 {
		t.Fatalf("big-endian WriteUint32(1) bytes = %v, want last byte 1", w.Bytes())
	}
}

func TestAppendRawAndSkip(t *testing.T) {
	w := NewWriter(true)
	w.Skip(4)
	w.AppendRaw([]byte{1, 2, 3})
	if got := w.Len(); got != 7 {
		t.Fatalf("Len() = %d, want 7", got)
	}
	if w.Bytes()[4] != 1 || w.Bytes()[5] != 2 || w.Bytes()[6] != 3 {
		t.Fatalf("AppendRaw content mismatch: %v", w.Bytes()[4:])
	}
}

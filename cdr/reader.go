// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package cdr

import (
	"encoding/binary"
	"math"

	"golang.org/x/text/encoding/unicode"
)

// Reader walks a CDR-encoded byte stream, mirroring Writer's alignment and
// width rules.
type Reader struct {
	buf   []byte
	pos   int
	order binary.ByteOrder
}

// NewReader wraps buf for sequential CDR decoding.
func NewReader(buf []byte, littleEndian bool) *Reader {
	r := &Reader{buf: buf, order: binary.BigEndian}
	if littleEndian {
		r.order = binary.LittleEndian
	}
	return r
}

// Pos returns the current read offset, usable as "current_alignment".
func (r *Reader) Pos() int { return r.pos }

// Remaining reports how many bytes are left unread.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

// Align advances the read cursor past alignment padding.
func (r *Reader) Align(width int) {
	r.pos += pad(r.pos, width)
}

func (r *Reader) need(n int) error {
	if r.pos+n > len(r.buf) {
		return ErrShortBuffer
	}
	return nil
}

func (r *Reader) ReadBool() (bool, error) {
	if err := r.need(1); err != nil {
		return false, err
	}
	v := r.buf[r.pos] != 0
	r.pos++
	return v, nil
}

func (r *Reader) ReadByte() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

func (r *Reader) ReadUint16() (uint16, error) {
	r.Align(2)
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := r.order.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

func (r *Reader) ReadUint32() (uint32, error) {
	r.Align(4)
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := r.order.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

func (r *Reader) ReadUint64() (uint64, error) {
	r.Align(8)
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := r.order.Uint64(r.buf[r.pos:])
	r.pos += 8
	return v, nil
}

func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	return math.Float32frombits(v), err
}

func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	return math.Float64frombits(v), err
}

// ReadFloat128 reads a 16-byte CDR long double and returns the bit pattern
// of its leading binary64 half (see Writer.WriteFloat128).
func (r *Reader) ReadFloat128() (uint64, error) {
	r.Align(8)
	if err := r.need(16); err != nil {
		return 0, err
	}
	v := r.order.Uint64(r.buf[r.pos:])
	r.pos += 16
	return v, nil
}

func (r *Reader) ReadChar16() (rune, error) {
	v, err := r.ReadUint32()
	return rune(v), err
}

// ReadString reads a STRING8: 32-bit length (including terminator) then
// that many bytes, the final one dropped as the NUL terminator.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	if err := r.need(int(n)); err != nil {
		return "", err
	}
	s := string(r.buf[r.pos : r.pos+int(n)-1])
	r.pos += int(n)
	return s, nil
}

var utf16Decoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()

// ReadWString reads a STRING16: 32-bit code-unit count then that many
// 2-byte UTF-16 code units.
func (r *Reader) ReadWString() (string, error) {
	units, err := r.ReadUint32()
	if err != nil {
		return "", err
	}
	r.Align(2)
	byteLen := int(units) * 2
	if err := r.need(byteLen); err != nil {
		return "", err
	}
	raw := r.buf[r.pos : r.pos+byteLen]
	r.pos += byteLen
	decoded, err := utf16Decoder.Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

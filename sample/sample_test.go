// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package sample

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenReadsMappedBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "capture.cdr")
	want := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x02}
	if err := os.WriteFile(path, want, 0o644); err != nil {
		t.Fatalf("WriteFile() = %v", err)
	}

	b, err := Open(path)
	if err != nil {
		t.Fatalf("Open() = %v", err)
	}
	defer b.Close()

	if b.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", b.Len(), len(want))
	}
	got := b.Bytes()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Bytes()[%d] = %#x, want %#x", i, got[i], want[i])
		}
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.cdr")); err == nil {
		t.Fatalf("Open() on a missing file should fail")
	}
}

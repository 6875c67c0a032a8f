//go:build unix

package mmfile

import (
	"os"
	"testing"
)

func TestAnonReadWrite(t *testing.T) {
	size := 4 * os.Getpagesize()
	data, release, err := Anon(size)
	if err != nil {
		t.Fatalf("Anon: %v", err)
	}
	if len(data) != size {
		t.Fatalf("len mismatch: got %d want %d", len(data), size)
	}
	for i, b := range data {
		if b != 0 {
			t.Fatalf("byte %d not zeroed: 0x%x", i, b)
		}
	}
	data[0], data[size-1] = 0xde, 0xad
	if data[0] != 0xde || data[size-1] != 0xad {
		t.Fatalf("mapping is not writable")
	}
	if err := release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := release(); err != nil {
		t.Fatalf("second release should be a no-op: %v", err)
	}
}

func TestAnonZeroLength(t *testing.T) {
	data, release, err := Anon(0)
	if err != nil {
		t.Fatalf("Anon: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected zero-length mapping, got %d", len(data))
	}
	if err := release(); err != nil {
		t.Fatalf("release: %v", err)
	}
}

func TestAnonNegative(t *testing.T) {
	if _, _, err := Anon(-1); err == nil {
		t.Fatalf("expected error for negative size")
	}
}

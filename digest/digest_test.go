package digest

import (
	"encoding/hex"
	"errors"
	"testing"
)

// Empty-message vectors published for each algorithm
func TestKnownVectors(t *testing.T) {
	vectors := map[string]string{
		SHA3Name:   "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a",
		KeccakName: "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		SHA256Name: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		BLAKE3Name: "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262",
	}
	for name, want := range vectors {
		h, err := New(name)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		got := h.Sum256(nil)
		if hex.EncodeToString(got[:]) != want {
			t.Fatalf("%s(\"\") = %x, want %s", name, got, want)
		}
	}
}

func TestAllBackendsDeterministic(t *testing.T) {
	msg16 := make([]byte, 16)
	msg32 := make([]byte, 32)
	for i := range msg32 {
		msg32[i] = byte(i)
	}
	copy(msg16, msg32)

	for _, name := range Names() {
		h, err := New(name)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		if h.Name() != name {
			t.Fatalf("hash registered as %q reports name %q", name, h.Name())
		}
		for _, msg := range [][]byte{msg16, msg32} {
			a, err := Digest(h, msg, uint(8*len(msg)))
			if err != nil {
				t.Fatalf("%s: Digest(%d bytes): %v", name, len(msg), err)
			}
			b := h.Sum256(msg)
			if a != b {
				t.Fatalf("%s: Digest and Sum256 disagree", name)
			}
		}
		if h.Sum256(msg16) == h.Sum256(msg32) {
			t.Fatalf("%s: 16- and 32-byte inputs collide", name)
		}
	}
}

func TestDigestRejectsBitLength(t *testing.T) {
	h := SHA3{}
	data := make([]byte, 16)
	for _, bits := range []uint{0, 127, 129, 256} {
		if _, err := Digest(h, data, bits); !errors.Is(err, ErrBitLength) {
			t.Fatalf("bitLen %d: expected ErrBitLength, got %v", bits, err)
		}
	}
	if _, err := Digest(h, data, 128); err != nil {
		t.Fatalf("bitLen 128: %v", err)
	}
}

func TestNewUnknown(t *testing.T) {
	if _, err := New("lsh-256"); !errors.Is(err, ErrUnknownHash) {
		t.Fatalf("expected ErrUnknownHash, got %v", err)
	}
}

func TestDefaultRegistered(t *testing.T) {
	if _, err := New(Default); err != nil {
		t.Fatalf("default hash %q not registered: %v", Default, err)
	}
}

func BenchmarkSum16(b *testing.B) {
	msg := make([]byte, 16)
	for _, name := range Names() {
		h, _ := New(name)
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(msg)))
			for i := 0; i < b.N; i++ {
				h.Sum256(msg)
			}
		})
	}
}

package digest

import (
	sha256 "github.com/minio/sha256-simd"
	"github.com/zeebo/blake3"
)

const (
	SHA256Name = "sha256"
	BLAKE3Name = "blake3"
)

// SHA256 is SHA-256 with SIMD acceleration where the CPU supports it
type SHA256 struct{}

func (SHA256) Name() string { return SHA256Name }

func (SHA256) Sum256(data []byte) [Size]byte {
	return sha256.Sum256(data)
}

// BLAKE3 is BLAKE3 with a 256-bit output
type BLAKE3 struct{}

func (BLAKE3) Name() string { return BLAKE3Name }

func (BLAKE3) Sum256(data []byte) [Size]byte {
	return blake3.Sum256(data)
}

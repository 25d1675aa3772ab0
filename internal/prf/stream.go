package prf

import (
	"fmt"
	"io"

	"github.com/aead/chacha20/chacha"
)

// Stream is a deterministic io.Reader producing the ChaCha20 keystream of a
// key. A Stream is not safe for concurrent use; give each worker its own.
type Stream struct {
	cipher *chacha.Cipher
}

// NewStream creates the keystream reader for key with a zero nonce
func NewStream(key [KeyLen]byte) *Stream {
	var nonce [chacha.NonceSize]byte
	c, err := chacha.NewCipher(nonce[:], key[:], 20)
	if err != nil {
		// Only reachable with a bad key or nonce length, both fixed above.
		panic("chacha20: " + err.Error())
	}
	return &Stream{cipher: c}
}

// Fork draws a key from rng and returns the stream it selects
func Fork(rng io.Reader) (*Stream, error) {
	key, err := KeyGen(rng)
	if err != nil {
		return nil, fmt.Errorf("failed to fork random stream: %w", err)
	}
	return NewStream(key), nil
}

// Read fills p with keystream bytes. It never fails.
func (s *Stream) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	s.cipher.XORKeyStream(p, p)
	return len(p), nil
}

// Package digest provides one-way hashing of strings, byte sequences, and
// streaming byte sources into fixed-length hex digests.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// Size is the length in characters of a hex-encoded digest.
const Size = sha256.Size * 2

// Hasher hashes data with SHA-256. The zero value is ready to use; hashing is
// a pure function with no shared state, so a Hasher is safe for concurrent use.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// SumBytes hashes the given bytes and returns the lower-hex digest.
func (h *Hasher) SumBytes(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// SumString hashes the given string, encoded as UTF-8 bytes.
func (h *Hasher) SumString(content string) string {
	return h.SumBytes([]byte(content))
}

// SumReader hashes the given stream incrementally, so the whole input never
// needs to reside in memory at once. When the source is seekable, the read
// position is restored afterwards.
func (h *Hasher) SumReader(content io.Reader) (string, error) {
	if seeker, ok := content.(io.Seeker); ok {
		pos, err := seeker.Seek(0, io.SeekCurrent)
		if err == nil {
			defer func() {
				_, _ = seeker.Seek(pos, io.SeekStart)
			}()
		}
	}

	hash := sha256.New()
	if _, err := io.Copy(hash, content); err != nil {
		return "", fmt.Errorf("failed to hash stream: %w", err)
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

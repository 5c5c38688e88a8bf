package digest

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helloWorldDigest is the SHA-256 digest of "hello world".
const helloWorldDigest = "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"

func TestHasher_SumString(t *testing.T) {
	hasher := NewHasher()

	t.Run("known vector", func(t *testing.T) {
		assert.Equal(t, helloWorldDigest, hasher.SumString("hello world"))
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, hasher.SumString("payload"), hasher.SumString("payload"))
	})

	t.Run("fixed output length", func(t *testing.T) {
		assert.Len(t, hasher.SumString(""), Size)
		assert.Len(t, hasher.SumString(strings.Repeat("x", 10000)), Size)
	})
}

func TestHasher_SumBytes(t *testing.T) {
	hasher := NewHasher()

	assert.Equal(t, helloWorldDigest, hasher.SumBytes([]byte("hello world")))
	assert.NotEqual(t, hasher.SumBytes([]byte("a")), hasher.SumBytes([]byte("b")))
}

func TestHasher_SumReader(t *testing.T) {
	hasher := NewHasher()

	t.Run("matches byte hashing", func(t *testing.T) {
		sum, err := hasher.SumReader(strings.NewReader("hello world"))
		require.NoError(t, err)
		assert.Equal(t, helloWorldDigest, sum)
	})

	t.Run("restores seekable reader position", func(t *testing.T) {
		reader := bytes.NewReader([]byte("hello world"))

		// Advance the reader, hash, then confirm the position is unchanged.
		buf := make([]byte, 6)
		_, err := reader.Read(buf)
		require.NoError(t, err)

		sum, err := hasher.SumReader(reader)
		require.NoError(t, err)
		assert.Len(t, sum, Size)

		rest, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, "world", string(rest))
	})

	t.Run("propagates read errors", func(t *testing.T) {
		_, err := hasher.SumReader(&failingReader{})
		assert.Error(t, err)
	})
}

type failingReader struct{}

func (*failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

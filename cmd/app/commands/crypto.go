package commands

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"

	cryptoService "github.com/allisson/cryptokit/internal/crypto/service"
	"github.com/allisson/cryptokit/internal/digest"
)

// RunEncrypt encrypts the plaintext and writes the envelope string to the writer.
func RunEncrypt(
	ctx context.Context,
	codec cryptoService.SymmetricCodec,
	logger *slog.Logger,
	writer io.Writer,
	plaintext string,
) error {
	envelope, err := codec.Encrypt(ctx, []byte(plaintext))
	if err != nil {
		return fmt.Errorf("failed to encrypt: %w", err)
	}

	logger.Info("payload encrypted", slog.Int("plaintext_bytes", len(plaintext)))
	fmt.Fprintln(writer, envelope)
	return nil
}

// RunDecrypt decrypts the envelope string and writes the plaintext to the writer.
func RunDecrypt(
	ctx context.Context,
	codec cryptoService.SymmetricCodec,
	logger *slog.Logger,
	writer io.Writer,
	envelope string,
	asHex bool,
) error {
	plaintext, err := codec.Decrypt(ctx, envelope)
	if err != nil {
		return fmt.Errorf("failed to decrypt: %w", err)
	}

	logger.Info("payload decrypted", slog.Int("plaintext_bytes", len(plaintext)))
	if asHex {
		fmt.Fprintln(writer, hex.EncodeToString(plaintext))
		return nil
	}
	fmt.Fprintln(writer, string(plaintext))
	return nil
}

// RunDigest writes the hex digest of the value or file contents to the writer.
// When filePath is non-empty the file is hashed as a stream; otherwise the
// value string is hashed.
func RunDigest(
	hasher *digest.Hasher,
	writer io.Writer,
	value string,
	filePath string,
) error {
	if filePath != "" {
		file, err := os.Open(filePath)
		if err != nil {
			return fmt.Errorf("failed to open file: %w", err)
		}
		defer func() { _ = file.Close() }()

		sum, err := hasher.SumReader(file)
		if err != nil {
			return fmt.Errorf("failed to hash file: %w", err)
		}
		fmt.Fprintln(writer, sum)
		return nil
	}

	fmt.Fprintln(writer, hasher.SumString(value))
	return nil
}

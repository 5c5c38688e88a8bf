package commands

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"

	keysDomain "github.com/allisson/cryptokit/internal/keys/domain"
)

// RunCreateKey provisions a named key in the key store and writes its hex
// value to the writer. The operation is idempotent: an existing key is
// returned unchanged.
//
// Requirements: database must be migrated.
func RunCreateKey(
	ctx context.Context,
	store keysDomain.KeyStore,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	length int,
) error {
	if name == "" {
		return fmt.Errorf("--name is required (e.g., %s)", keysDomain.KeyNameAES)
	}

	value, err := store.GetOrCreate(ctx, name, length)
	if err != nil {
		return fmt.Errorf("failed to create key: %w", err)
	}

	logger.Info("key provisioned",
		slog.String("name", name),
		slog.Int("length", len(value)),
	)

	fmt.Fprintf(writer, "%s=%s\n", name, hex.EncodeToString(value))
	return nil
}

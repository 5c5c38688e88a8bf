package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	passwordService "github.com/allisson/cryptokit/internal/password/service"
)

// RunPasswordHash derives a password record and writes it to the writer.
func RunPasswordHash(
	ctx context.Context,
	hasher passwordService.Hasher,
	logger *slog.Logger,
	writer io.Writer,
	password, bias string,
) error {
	record, err := hasher.Hash(ctx, password, bias)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	logger.Info("password record derived")
	fmt.Fprintln(writer, record)
	return nil
}

// RunPasswordVerify checks a password against its record and writes the
// result to the writer. When the record was derived with outdated cost
// parameters the refreshed record is printed for storage.
func RunPasswordVerify(
	ctx context.Context,
	hasher passwordService.Hasher,
	logger *slog.Logger,
	writer io.Writer,
	password, record, bias string,
) error {
	current, err := hasher.Verify(ctx, password, record, bias)
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}

	fmt.Fprintln(writer, "password verified")
	if current != record {
		logger.Info("password record refreshed with current cost parameters")
		fmt.Fprintln(writer, current)
	}
	return nil
}

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	cryptoService "github.com/allisson/cryptokit/internal/crypto/service"
	tokenDomain "github.com/allisson/cryptokit/internal/token/domain"
	tokenService "github.com/allisson/cryptokit/internal/token/service"
)

// RunTokenGenerate issues a token from a JSON claim object and writes it to
// the writer. A nil codec produces a plain signed token; a non-nil codec
// wraps it in an encrypted envelope.
func RunTokenGenerate(
	ctx context.Context,
	issuer tokenService.Issuer,
	codec cryptoService.SymmetricCodec,
	logger *slog.Logger,
	writer io.Writer,
	claimsJSON string,
	expiry time.Duration,
) error {
	claims := tokenDomain.ClaimSet{}
	if claimsJSON != "" {
		if err := json.Unmarshal([]byte(claimsJSON), &claims); err != nil {
			return fmt.Errorf("failed to parse claims JSON: %w", err)
		}
	}

	token, err := issuer.Generate(ctx, claims, expiry, codec)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info("token generated", slog.Int("claims", len(claims)))
	fmt.Fprintln(writer, token)
	return nil
}

// RunTokenDecode verifies a token and writes its claims as JSON to the writer.
func RunTokenDecode(
	ctx context.Context,
	issuer tokenService.Issuer,
	codec cryptoService.SymmetricCodec,
	logger *slog.Logger,
	writer io.Writer,
	token string,
) error {
	claims, err := issuer.Decode(ctx, token, codec)
	if err != nil {
		return fmt.Errorf("failed to decode token: %w", err)
	}

	encoded, err := json.MarshalIndent(claims, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode claims: %w", err)
	}

	logger.Info("token decoded", slog.Int("claims", len(claims)))
	fmt.Fprintln(writer, string(encoded))
	return nil
}

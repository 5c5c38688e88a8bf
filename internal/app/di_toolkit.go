package app

import (
	"context"
	"fmt"

	cryptoDomain "github.com/allisson/cryptokit/internal/crypto/domain"
	cryptoService "github.com/allisson/cryptokit/internal/crypto/service"
	"github.com/allisson/cryptokit/internal/database"
	keysDomain "github.com/allisson/cryptokit/internal/keys/domain"
	"github.com/allisson/cryptokit/internal/keys/repository"
	keysService "github.com/allisson/cryptokit/internal/keys/service"
	passwordDomain "github.com/allisson/cryptokit/internal/password/domain"
	passwordService "github.com/allisson/cryptokit/internal/password/service"
	tokenService "github.com/allisson/cryptokit/internal/token/service"
)

// KMSService returns the KMS service.
func (c *Container) KMSService() keysService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = keysService.NewKMSService()
	})
	return c.kmsService
}

// KMSKeeper returns the keeper that wraps stored key values at rest.
// Returns nil without error when no KMS provider is configured.
func (c *Container) KMSKeeper() (keysDomain.KMSKeeper, error) {
	var err error
	c.kmsKeeperInit.Do(func() {
		c.kmsKeeper, err = c.initKMSKeeper()
		if err != nil {
			c.initErrors["kmsKeeper"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["kmsKeeper"]; exists {
		return nil, storedErr
	}
	return c.kmsKeeper, nil
}

// KeyStore returns the key store backed by the configured database driver.
func (c *Container) KeyStore() (keysDomain.KeyStore, error) {
	var err error
	c.keyStoreInit.Do(func() {
		c.keyStore, err = c.initKeyStore()
		if err != nil {
			c.initErrors["keyStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyStore"]; exists {
		return nil, storedErr
	}
	return c.keyStore, nil
}

// AEADManager returns the AEAD manager service.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = cryptoService.NewAEADManager()
	})
	return c.aeadManager
}

// Codec returns the symmetric codec for envelope encryption.
func (c *Container) Codec() (cryptoService.SymmetricCodec, error) {
	var err error
	c.codecInit.Do(func() {
		c.codec, err = c.initCodec()
		if err != nil {
			c.initErrors["codec"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["codec"]; exists {
		return nil, storedErr
	}
	return c.codec, nil
}

// PasswordHasher returns the password hasher.
func (c *Container) PasswordHasher() (passwordService.Hasher, error) {
	var err error
	c.passwordHasherInit.Do(func() {
		c.passwordHasher, err = c.initPasswordHasher()
		if err != nil {
			c.initErrors["passwordHasher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["passwordHasher"]; exists {
		return nil, storedErr
	}
	return c.passwordHasher, nil
}

// TokenIssuer returns the token issuer.
func (c *Container) TokenIssuer() (tokenService.Issuer, error) {
	var err error
	c.tokenIssuerInit.Do(func() {
		c.tokenIssuer, err = c.initTokenIssuer()
		if err != nil {
			c.initErrors["tokenIssuer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenIssuer"]; exists {
		return nil, storedErr
	}
	return c.tokenIssuer, nil
}

// initKMSKeeper opens a KMS keeper when a provider is configured.
func (c *Container) initKMSKeeper() (keysDomain.KMSKeeper, error) {
	if c.config.KMSProvider == "" || c.config.KMSKeyURI == "" {
		return nil, nil
	}

	keeper, err := c.KMSService().OpenKeeper(context.Background(), c.config.KMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open kms keeper: %w", err)
	}
	return keeper, nil
}

// initKeyStore creates the key store based on the database driver.
func (c *Container) initKeyStore() (keysDomain.KeyStore, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for key store: %w", err)
	}

	keeper, err := c.KMSKeeper()
	if err != nil {
		return nil, fmt.Errorf("failed to get kms keeper for key store: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		return repository.NewMySQLKeyStore(db, keeper), nil
	case database.DriverPostgres:
		return repository.NewPostgreSQLKeyStore(db, keeper), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// keyProvider builds a key provider from literal material when given,
// otherwise from the key store under the given logical name.
func (c *Container) keyProvider(material, name string, length int) (*keysService.Provider, error) {
	if material != "" {
		return keysService.FromString(material, length)
	}

	store, err := c.KeyStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get key store: %w", err)
	}
	return keysService.FromStore(store, name, length)
}

// initCodec creates the symmetric codec with all its dependencies.
func (c *Container) initCodec() (cryptoService.SymmetricCodec, error) {
	provider, err := c.keyProvider(c.config.EncryptionKey, keysDomain.KeyNameAES, cryptoDomain.KeySize)
	if err != nil {
		return nil, fmt.Errorf("failed to create encryption key provider: %w", err)
	}

	codec, err := cryptoService.NewCodec(
		provider,
		c.AEADManager(),
		cryptoDomain.Algorithm(c.config.EncryptionAlgorithm),
		c.config.EnvelopePrefix,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create codec: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics: %w", err)
	}

	return cryptoService.NewCodecWithMetrics(codec, businessMetrics), nil
}

// initPasswordHasher creates the password hasher with all its dependencies.
func (c *Container) initPasswordHasher() (passwordService.Hasher, error) {
	pepper, err := c.keyProvider(c.config.PasswordPepper, keysDomain.KeyNamePepper, cryptoDomain.KeySize)
	if err != nil {
		return nil, fmt.Errorf("failed to create pepper provider: %w", err)
	}

	params := passwordDomain.Params{
		Memory:      uint32(c.config.Argon2Memory),
		Time:        uint32(c.config.Argon2Time),
		Parallelism: uint8(c.config.Argon2Parallelism),
		SaltLength:  uint32(c.config.Argon2SaltLength),
		KeyLength:   uint32(c.config.Argon2KeyLength),
	}

	hasher, err := passwordService.NewPasswordHasher(pepper, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create password hasher: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics: %w", err)
	}

	return passwordService.NewHasherWithMetrics(hasher, businessMetrics), nil
}

// initTokenIssuer creates the token issuer with all its dependencies.
func (c *Container) initTokenIssuer() (tokenService.Issuer, error) {
	key, err := c.keyProvider(c.config.TokenKey, keysDomain.KeyNameToken, cryptoDomain.KeySize)
	if err != nil {
		return nil, fmt.Errorf("failed to create token key provider: %w", err)
	}

	var sign *keysService.Provider
	if c.config.TokenSignEnabled {
		sign, err = c.keyProvider(c.config.TokenSignSecret, keysDomain.KeyNameTokenSign, cryptoDomain.KeySize)
		if err != nil {
			return nil, fmt.Errorf("failed to create token sign provider: %w", err)
		}
	}

	issuer, err := tokenService.NewTokenIssuer(key, sign, c.config.TokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("failed to create token issuer: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics: %w", err)
	}

	return tokenService.NewIssuerWithMetrics(issuer, businessMetrics), nil
}

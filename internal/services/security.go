package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/dmitrijs2005/savelinks/internal/common"
	"github.com/dmitrijs2005/savelinks/internal/config"
	"github.com/dmitrijs2005/savelinks/internal/logging"
	"github.com/dmitrijs2005/savelinks/internal/repositories/metadata"
)

// SecurityCore is the part of the cryptox engine the services use.
type SecurityCore interface {
	GenerateSalt() ([]byte, error)
	DeriveKey(password, salt []byte) ([]byte, error)
	Encrypt(plaintext, key []byte) ([]byte, error)
	Decrypt(token, key []byte) ([]byte, error)
}

const (
	metaKDF        = "kdf"
	metaIterations = "iterations"
)

// ResolveSecurity pins the key derivation parameters to the vault. On first
// use the configured KDF and iteration count are stored; afterwards the stored
// values win over the configuration, since no account could log in otherwise.
// The cipher is not pinned: tokens carry their own version byte.
func ResolveSecurity(ctx context.Context, repo metadata.Repository, cfg config.SecurityConfig, log logging.Logger) (config.SecurityConfig, error) {
	storedKDF, err := repo.Get(ctx, metaKDF)
	if errors.Is(err, common.ErrorNotFound) {
		err = repo.SetAll(ctx, map[string][]byte{
			metaKDF:        []byte(cfg.KDF),
			metaIterations: []byte(strconv.Itoa(cfg.Iterations)),
		})
		if err != nil {
			log.Error(ctx, "failed to store vault parameters", "error", err)
			return cfg, common.NewDomainError("could not initialise vault")
		}
		log.Info(ctx, "vault parameters stored", "kdf", cfg.KDF, "iterations", cfg.Iterations)
		return cfg, nil
	}
	if err != nil {
		log.Error(ctx, "failed to read vault parameters", "error", err)
		return cfg, common.NewDomainError("could not open vault")
	}

	storedIter, err := repo.Get(ctx, metaIterations)
	if err != nil {
		log.Error(ctx, "failed to read vault parameters", "key", metaIterations, "error", err)
		return cfg, common.NewDomainError("could not open vault")
	}
	iterations, err := strconv.Atoi(string(storedIter))
	if err != nil {
		log.Error(ctx, "corrupt vault parameter", "key", metaIterations, "error", err)
		return cfg, common.NewDomainError("could not open vault")
	}

	resolved := cfg
	resolved.KDF = string(storedKDF)
	resolved.Iterations = iterations

	if resolved.KDF != cfg.KDF || resolved.Iterations != cfg.Iterations {
		log.Warn(ctx, "configured key derivation differs from vault, using vault values",
			"configured_kdf", cfg.KDF, "configured_iterations", cfg.Iterations,
			"vault_kdf", resolved.KDF, "vault_iterations", resolved.Iterations)
	}
	return resolved, nil
}

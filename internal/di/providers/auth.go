package providers

import (
	"github.com/samber/do/v2"

	"github.com/qlpapp/qlp-server/internal/auth"
	"github.com/qlpapp/qlp-server/internal/config"
	"github.com/qlpapp/qlp-server/internal/logger"
)

// AuthKey wraps the authentication key bytes.
type AuthKey []byte

// ProvideAuthKey uses the configured token key or loads/generates one in the data directory.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	key := cfg.Auth.TokenKey
	source := "config"
	if len(key) == 0 {
		var err error
		key, err = auth.LoadOrGenerateKey(cfg.App.DataDir)
		if err != nil {
			return nil, err
		}
		cfg.Auth.TokenKey = key
		source = "data_dir"
	}

	log.Info("Authentication key loaded",
		"source", source,
		"access_token_duration", cfg.Auth.AccessTokenDuration,
	)

	return AuthKey(key), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	authKey := do.MustInvoke[AuthKey](i)

	return auth.NewTokenService([]byte(authKey), cfg.Auth.AccessTokenDuration)
}

// ProvidePasswordHasher provides the argon2id hasher with configured cost.
func ProvidePasswordHasher(i do.Injector) (*auth.Hasher, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return auth.NewHasher(auth.HashParams{
		MemoryKiB:   uint32(cfg.Auth.HashMemoryKiB),  //nolint:gosec // validated positive
		Iterations:  uint32(cfg.Auth.HashIterations), //nolint:gosec // validated positive
		Parallelism: uint8(cfg.Auth.HashParallelism), //nolint:gosec // validated 1-255
	})
}

// ProvideCredentialTable provides the fixed administrator and test accounts.
func ProvideCredentialTable(i do.Injector) (*auth.CredentialTable, error) {
	hasher := do.MustInvoke[*auth.Hasher](i)

	return auth.NewCredentialTable(hasher, auth.DefaultFixedCredentials)
}

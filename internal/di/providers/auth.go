package providers

import (
	"github.com/samber/do/v2"

	"github.com/animexapp/animex-server/internal/auth"
	"github.com/animexapp/animex-server/internal/config"
	"github.com/animexapp/animex-server/internal/logger"
)

// AuthKey is the hex-encoded PASETO symmetric key.
type AuthKey string

// ProvideAuthKey loads or generates the token signing key. An explicitly
// configured key wins over the on-disk one.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	keyHex := cfg.Auth.AccessTokenKey
	if keyHex == "" {
		var err error
		keyHex, err = auth.LoadOrGenerateKey(cfg.Data.BasePath)
		if err != nil {
			return "", err
		}
		cfg.Auth.AccessTokenKey = keyHex
	}

	log.Info("Authentication key loaded",
		"access_token_duration", cfg.Auth.AccessTokenDuration,
		"refresh_token_duration", cfg.Auth.RefreshTokenDuration,
	)

	return AuthKey(keyHex), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	authKey := do.MustInvoke[AuthKey](i)

	return auth.NewTokenService(string(authKey), cfg.Auth.AccessTokenDuration, cfg.Auth.RefreshTokenDuration)
}

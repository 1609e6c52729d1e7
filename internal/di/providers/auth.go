package providers

import (
	"github.com/samber/do/v2"

	"github.com/campusconnect/campusconnect-server/internal/auth"
	"github.com/campusconnect/campusconnect-server/internal/config"
	"github.com/campusconnect/campusconnect-server/internal/logger"
)

// AuthKey is the hex-encoded token signing key.
type AuthKey string

// ProvideAuthKey loads or generates the authentication key.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	key := cfg.Auth.AccessTokenKey
	if key == "" {
		loaded, err := auth.LoadOrGenerateKey(cfg.Data.BasePath)
		if err != nil {
			return "", err
		}
		key = loaded
		cfg.Auth.AccessTokenKey = loaded
	}

	log.Info("Authentication key loaded",
		"access_token_duration", cfg.Auth.AccessTokenDuration,
		"refresh_token_duration", cfg.Auth.RefreshTokenDuration,
	)

	return AuthKey(key), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	authKey := do.MustInvoke[AuthKey](i)

	return auth.NewTokenService(string(authKey), cfg.Auth.AccessTokenDuration, cfg.Auth.RefreshTokenDuration)
}

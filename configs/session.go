package configs

import (
	"time"

	"luax.health/configs/configslog"
	"luax.health/pkg/redisstore"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

const (
	SessionCookieName = "luax_session"
	CSRFCookieName    = "csrf_"
	CSRFFormField     = "csrf_token"
	CSRFContextKey    = "csrf"
)

// SetupSession builds the session store. Redis is used when REDIS_ADDR is
// set and reachable; otherwise sessions live in process memory.
func SetupSession(cfg *Config) *session.Store {
	sessionCfg := session.Config{
		Expiration:     cfg.SessionExpiration,
		KeyLookup:      "cookie:" + SessionCookieName,
		CookieHTTPOnly: true,
		CookieSecure:   cfg.IsProduction(),
		CookieSameSite: "Lax",
	}

	if cfg.RedisAddr != "" {
		storage, err := redisstore.New(redisstore.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   "luax:session:",
		})
		if err != nil {
			configslog.Log.Warn("Redis session storage unavailable, using in-memory sessions", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		} else {
			configslog.SLog.Infof("Session storage: redis (%s)", cfg.RedisAddr)
			sessionCfg.Storage = storage
		}
	}

	return session.New(sessionCfg)
}

// SetupCSRF returns the CSRF middleware; tokens are read from the
// csrf_token form field and exposed to views under the "csrf" local.
func SetupCSRF(cfg *Config) fiber.Handler {
	return csrf.New(csrf.Config{
		KeyLookup:      "form:" + CSRFFormField,
		CookieName:     CSRFCookieName,
		CookieSameSite: "Lax",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.IsProduction(),
		Expiration:     1 * time.Hour,
		ContextKey:     CSRFContextKey,
	})
}

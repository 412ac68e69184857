package di

import (
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	aliasadapters "ticker_backend/internal/feature/alias/adapters"
	"ticker_backend/internal/feature/alias/usecase"
	"ticker_backend/internal/platform/session"
	"ticker_backend/internal/platform/token"
)

const (
	// aliasTTL は学習エイリアスの保持期間です。書き込みのたびに延長されます。
	aliasTTL = 24 * time.Hour
	// sessionTokenTTL はセッショントークンの有効期間です。
	sessionTokenTTL = 24 * time.Hour
)

// NewAliasRepository creates an AliasRepository implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to an in-memory store (aliases are lost on restart).
func NewAliasRepository(rdb *redis.Client) usecase.AliasRepository {
	if rdb != nil {
		return session.NewAliasRedis(rdb, "aliases", aliasTTL)
	}
	slog.Warn("redis unavailable, using in-memory alias store")
	return aliasadapters.NewAliasMemory()
}

// NewTokenGenerator はセッショントークンの発行器を生成します。
func NewTokenGenerator() token.Generator {
	secret := os.Getenv(token.EnvKeySecret)
	if secret == "" {
		slog.Warn("SESSION_JWT_SECRET not set, session endpoints will fail")
	}
	return token.NewGenerator(secret, sessionTokenTTL)
}

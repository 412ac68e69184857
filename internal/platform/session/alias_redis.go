// Package session はセッション単位の学習エイリアスをRedisに保持します。
package session

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"ticker_backend/internal/feature/alias/domain/entity"
	"ticker_backend/internal/feature/alias/usecase"
)

// defaultTTL はセッションのエイリアスハッシュの生存期間です。
// 書き込みのたびに延長されます。
const defaultTTL = 24 * time.Hour

// AliasRedis implements usecase.AliasRepository using a Redis hash per session.
type AliasRedis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ usecase.AliasRepository = (*AliasRedis)(nil)

// NewAliasRedis creates a new AliasRedis instance.
// If prefix is empty it uses "aliases"; if ttl is 0 it uses 24 hours.
func NewAliasRedis(client *redis.Client, prefix string, ttl time.Duration) *AliasRedis {
	if prefix == "" {
		prefix = "aliases"
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &AliasRedis{client: client, prefix: prefix, ttl: ttl}
}

// sessionKey returns the Redis key for a session's alias hash.
func (r *AliasRedis) sessionKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", r.prefix, sessionID)
}

// Get は学習済みシンボルを返します。未学習なら usecase.ErrAliasNotFound です。
func (r *AliasRedis) Get(ctx context.Context, sessionID, name string) (string, error) {
	symbol, err := r.client.HGet(ctx, r.sessionKey(sessionID), name).Result()
	if err != nil {
		if err == redis.Nil {
			return "", usecase.ErrAliasNotFound
		}
		return "", err
	}
	return symbol, nil
}

// Put はマッピングを保存し、セッションのTTLを延長します。
func (r *AliasRedis) Put(ctx context.Context, sessionID, name, symbol string) error {
	key := r.sessionKey(sessionID)
	if err := r.client.HSet(ctx, key, name, symbol).Err(); err != nil {
		return err
	}
	return r.client.Expire(ctx, key, r.ttl).Err()
}

// Delete は1件のマッピングを削除します。存在しない場合も成功扱いです。
func (r *AliasRedis) Delete(ctx context.Context, sessionID, name string) error {
	return r.client.HDel(ctx, r.sessionKey(sessionID), name).Err()
}

// List はセッションの全マッピングを名前昇順で返します。
func (r *AliasRedis) List(ctx context.Context, sessionID string) ([]entity.Alias, error) {
	m, err := r.client.HGetAll(ctx, r.sessionKey(sessionID)).Result()
	if err != nil {
		return nil, err
	}

	out := make([]entity.Alias, 0, len(m))
	for name, symbol := range m {
		out = append(out, entity.Alias{Name: name, Symbol: symbol})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

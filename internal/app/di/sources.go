// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"ticker_backend/internal/feature/resolution/adapters/finnhub"
	"ticker_backend/internal/feature/resolution/domain/entity"
	"ticker_backend/internal/feature/resolution/adapters/localmap"
	"ticker_backend/internal/feature/resolution/adapters/polygon"
	"ticker_backend/internal/feature/resolution/usecase"
	"ticker_backend/internal/platform/cache"
	platformhttp "ticker_backend/internal/platform/http"
	"ticker_backend/internal/shared/ratelimiter"
)

const (
	// finnhubPerMinute はFinnhub無料プランの呼び出し上限から余裕を持たせた値です。
	finnhubPerMinute = 48
	// polygonPerMinute はPolygon無料プランの呼び出し上限です。
	polygonPerMinute = 5
	// lookupCacheTTL は外部照会結果のキャッシュ保持期間です。
	lookupCacheTTL = 15 * time.Minute
)

// NewExternalSources は設定済みの外部照会元アダプタ一式を生成します。
// APIキー未設定の照会元は起動時に除外します（起動失敗にはしない）。
// rdb が非nilの場合は各アダプタをRedisキャッシュでデコレートします。
func NewExternalSources(rdb *redis.Client) []usecase.SourceAdapter {
	var sources []usecase.SourceAdapter

	fhCfg := finnhub.LoadConfig()
	if fhCfg.FinnhubAPIKey != "" {
		client := finnhub.NewClient(fhCfg, platformhttp.NewHTTPClient(fhCfg.Timeout),
			ratelimiter.NewPerMinute(finnhubPerMinute))
		sources = append(sources, withCache(rdb, client))
	} else {
		slog.Warn("FINNHUB_API_KEY not set, finnhub source disabled")
	}

	pgCfg := polygon.LoadConfig()
	if pgCfg.PolygonAPIKey != "" {
		client := polygon.NewClient(pgCfg, platformhttp.NewHTTPClient(pgCfg.Timeout),
			ratelimiter.NewPerMinute(polygonPerMinute))
		sources = append(sources, withCache(rdb, client))
	} else {
		slog.Warn("POLYGON_API_KEY not set, polygon source disabled")
	}

	return sources
}

// LocalSource はローカル銘柄マスタが提供する機能の集合です。
// 解決パスの照会元としても、UI向けの候補検索としても使えます。
type LocalSource interface {
	usecase.SourceAdapter
	Search(ctx context.Context, query string, limit int) ([]entity.Candidate, error)
}

// NewLocalSource はローカル銘柄マスタの照会元を生成します。DB未接続ならnilです。
// ローカルマスタはレート制限もキャッシュも不要なので素のまま返します。
func NewLocalSource(db *gorm.DB) LocalSource {
	if db == nil {
		return nil
	}
	return localmap.NewSymbolSource(db)
}

// withCache はRedisが利用可能な場合のみ照会元をキャッシュでデコレートします。
func withCache(rdb *redis.Client, inner usecase.SourceAdapter) usecase.SourceAdapter {
	if rdb == nil {
		return inner
	}
	return cache.NewCachingLookup(rdb, lookupCacheTTL, inner, "")
}

// LoadResolverConfig は環境変数から行解決の設定を読み込みます。
// 未設定の項目はリファレンス挙動のデフォルトのままです。
func LoadResolverConfig() usecase.Config {
	cfg := usecase.DefaultConfig()

	if v := os.Getenv("RESOLVER_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
		}
	}
	if os.Getenv("SINGLE_MATCH_POLICY") == "true" {
		cfg.SingleMatch.Enabled = true
	}
	return cfg
}

package main

import (
	"log"
	"os"

	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"ticker_backend/internal/app/di"
	"ticker_backend/internal/app/router"
	aliashandler "ticker_backend/internal/feature/alias/transport/handler"
	aliasusecase "ticker_backend/internal/feature/alias/usecase"
	resolutionhandler "ticker_backend/internal/feature/resolution/transport/handler"
	"ticker_backend/internal/feature/resolution/usecase"
	platformdb "ticker_backend/internal/platform/db"
	"ticker_backend/internal/platform/http/handler"
	platformredis "ticker_backend/internal/platform/redis"
	"ticker_backend/internal/platform/token"
)

func main() {
	// db（任意。未設定ならローカル銘柄マスタなしで動く）
	var db *gorm.DB
	if os.Getenv("DB_HOST") != "" {
		db = platformdb.OpenDB()
	} else {
		log.Println("[WARN] DB_HOST is not set. Running without the local symbol master.")
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// 照会元アダプタ（外部API + 任意のローカルマスタ）
	external := di.NewExternalSources(rdb)
	localSrc := di.NewLocalSource(db)
	withLocal := external
	if localSrc != nil {
		// ローカルマスタを先頭に（同点時は先に見つかった照会元が勝つ）
		withLocal = append([]usecase.SourceAdapter{localSrc}, external...)
	}

	// Repository
	aliasRepo := di.NewAliasRepository(rdb)

	// Usecase
	learner := aliasusecase.NewLearner(aliasRepo)
	resolver := usecase.NewResolver(usecase.NewAggregator(), learner, di.LoadResolverConfig())
	planner := usecase.NewCommitPlanner(learner)

	// Handler
	sessionH := handler.NewSessionHandler(di.NewTokenGenerator())
	resolutionH := resolutionhandler.NewResolutionHandler(resolver, planner, localSrc, external, withLocal)
	aliasH := aliashandler.NewAliasHandler(learner)

	// ルータ生成
	router := router.NewRouter(sessionH, resolutionH, aliasH)

	// SESSION_JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(token.EnvKeySecret) == "" {
		log.Println("[WARN] SESSION_JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}

package router

import (
	"github.com/gin-gonic/gin"

	aliashandler "ticker_backend/internal/feature/alias/transport/handler"
	resolutionhandler "ticker_backend/internal/feature/resolution/transport/handler"
	"ticker_backend/internal/platform/http/handler"
	"ticker_backend/internal/platform/token"
)

func NewRouter(sessionHandler *handler.SessionHandler, resolution *resolutionhandler.ResolutionHandler,
	alias *aliashandler.AliasHandler) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 匿名セッションの発行（トークン取得）
	r.POST("/session", sessionHandler.Create)

	// セッショントークン必須のルート
	auth := r.Group("/")
	// token.SessionRequired() ミドルウェアを適用
	// → リクエストヘッダーにBearerトークンが必要になる
	auth.Use(token.SessionRequired())
	{
		// アップロードの解決プレビューと確定CSVのダウンロード
		auth.POST("/files/preview", resolution.Preview)
		auth.POST("/files/commit", resolution.Commit)
		// コミット確認の変更セットと閾値一括適用
		auth.POST("/enrich/plan", resolution.Plan)
		auth.POST("/enrich/bulk-apply", resolution.BulkApply)
		// ローカル銘柄マスタの候補検索
		auth.GET("/symbols/search", resolution.Search)
		// 学習エイリアスの登録・削除・一覧
		auth.PUT("/aliases", alias.Record)
		auth.DELETE("/aliases/:name", alias.Clear)
		auth.GET("/aliases", alias.List)
	}

	return r
}

// Package polygon はPolygonティッカー照会APIのクライアントを提供します。
package polygon

import (
	"os"
	"time"
)

// Config はPolygon APIクライアントの設定を保持します。
type Config struct {
	PolygonAPIKey string        // 認証用APIキー
	BaseURL       string        // APIのベースURL（例: "https://api.polygon.io"）
	Timeout       time.Duration // HTTPリクエストタイムアウト
}

// LoadConfig は環境変数からPolygonの設定を読み込みます。
func LoadConfig() Config {
	return Config{
		PolygonAPIKey: os.Getenv("POLYGON_API_KEY"),
		BaseURL:       os.Getenv("POLYGON_BASE_URL"),
		Timeout:       4 * time.Second,
	}
}

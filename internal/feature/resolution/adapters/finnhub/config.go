// Package finnhub はFinnhubシンボル検索APIのクライアントを提供します。
package finnhub

import (
	"os"
	"time"
)

// Config はFinnhub APIクライアントの設定を保持します。
type Config struct {
	FinnhubAPIKey string        // 認証用APIキー
	BaseURL       string        // APIのベースURL（例: "https://finnhub.io/api/v1"）
	Timeout       time.Duration // HTTPリクエストタイムアウト
}

// LoadConfig は環境変数からFinnhubの設定を読み込みます。
func LoadConfig() Config {
	return Config{
		FinnhubAPIKey: os.Getenv("FINNHUB_API_KEY"),
		BaseURL:       os.Getenv("FINNHUB_BASE_URL"),
		Timeout:       4 * time.Second,
	}
}

package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"

	"ticker_backend/internal/feature/resolution/adapters/finnhub/dto"
	"ticker_backend/internal/feature/resolution/domain/entity"
	"ticker_backend/internal/feature/resolution/usecase"
	"ticker_backend/internal/shared/normalize"
	"ticker_backend/internal/shared/ratelimiter"
)

// maxCandidates は1回の照会で返す候補数の上限です。
const maxCandidates = 5

// Client はFinnhub searchエンドポイントから候補を取得するSourceAdapter実装です。
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

// ClientがSourceAdapterを実装していることをコンパイル時に検証します。
var _ usecase.SourceAdapter = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client, limiter ratelimiter.RateLimiterInterface) *Client {
	if limiter == nil {
		limiter = ratelimiter.NoLimit{}
	}
	return &Client{cfg: cfg, client: client, limiter: limiter}
}

// Source は照会元の識別子を返します。
func (c *Client) Source() entity.Source { return entity.SourceFinnhub }

// Lookup は企業名でFinnhubを検索し、類似度スコア付きの候補を返します。
// 呼び出し前にレート制限を待機し、リクエストは設定のタイムアウトで打ち切ります。
func (c *Client) Lookup(ctx context.Context, name string) ([]entity.Candidate, error) {
	c.limiter.WaitIfNeeded()

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	q := url.Values{}
	q.Set("q", normalize.SanitizeQuery(name))
	q.Set("token", c.cfg.FinnhubAPIKey)

	u := fmt.Sprintf("%s/search?%s", c.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("finnhub http %d", res.StatusCode)
	}

	var body dto.SearchResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}

	cands := make([]entity.Candidate, 0, len(body.Result))
	for _, r := range body.Result {
		symbol := normalize.Symbol(r.Symbol)
		if symbol == "" {
			continue
		}
		cands = append(cands, entity.Candidate{
			Symbol: symbol,
			Name:   r.Description,
			Type:   r.Type,
			Score:  normalize.FuzzyScore(name, r.Description),
			Source: entity.SourceFinnhub,
		})
	}

	// 照会元内ではスコア降順で上位のみ残す（最終整列はAggregatorが行う）
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].Score > cands[j].Score })
	if len(cands) > maxCandidates {
		cands = cands[:maxCandidates]
	}
	return cands, nil
}

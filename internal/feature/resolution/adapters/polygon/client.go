package polygon

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"

	"ticker_backend/internal/feature/resolution/adapters/polygon/dto"
	"ticker_backend/internal/feature/resolution/domain/entity"
	"ticker_backend/internal/feature/resolution/usecase"
	"ticker_backend/internal/shared/normalize"
	"ticker_backend/internal/shared/ratelimiter"
)

// maxCandidates は1回の照会で返す候補数の上限です。
const maxCandidates = 5

// Client はPolygon reference/tickersエンドポイントから候補を取得するSourceAdapter実装です。
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
func (c *Client) Source() entity.Source { return entity.SourcePolygon }

// Lookup は企業名でPolygonのティッカー参照を検索し、類似度スコア付きの候補を返します。
// 上場廃止銘柄を拾わないようactive=trueのみを対象にします。
func (c *Client) Lookup(ctx context.Context, name string) ([]entity.Candidate, error) {
	c.limiter.WaitIfNeeded()

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	q := url.Values{}
	q.Set("search", normalize.SanitizeQuery(name))
	q.Set("market", "stocks")
	q.Set("active", "true")
	q.Set("limit", "10")
	q.Set("apiKey", c.cfg.PolygonAPIKey)

	u := fmt.Sprintf("%s/v3/reference/tickers?%s", c.cfg.BaseURL, q.Encode())

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
		return nil, fmt.Errorf("polygon http %d", res.StatusCode)
	}

	var body dto.TickersResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Status == "ERROR" {
		return nil, fmt.Errorf("polygon: %s", body.Error)
	}

	cands := make([]entity.Candidate, 0, len(body.Results))
	for _, r := range body.Results {
		symbol := normalize.Symbol(r.Ticker)
		if symbol == "" {
			continue
		}
		cands = append(cands, entity.Candidate{
			Symbol: symbol,
			Name:   r.Name,
			Type:   r.Type,
			Score:  normalize.FuzzyScore(name, r.Name),
			Source: entity.SourcePolygon,
		})
	}

	// 照会元内ではスコア降順で上位のみ残す（最終整列はAggregatorが行う）
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].Score > cands[j].Score })
	if len(cands) > maxCandidates {
		cands = cands[:maxCandidates]
	}
	return cands, nil
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"ticker_backend/internal/feature/resolution/domain/entity"
)

// mockSource はテスト用のSourceAdapterモック実装です。
type mockSource struct {
	src      entity.Source
	lookupFn func(ctx context.Context, name string) ([]entity.Candidate, error)
	calls    int
}

func (m *mockSource) Source() entity.Source { return m.src }

func (m *mockSource) Lookup(ctx context.Context, name string) ([]entity.Candidate, error) {
	m.calls++
	if m.lookupFn != nil {
		return m.lookupFn(ctx, name)
	}
	return nil, nil
}

// TestNewCachingLookup_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingLookup_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{"default values when zero/empty", 0, "", 15 * time.Minute, "lookup"},
		{"negative ttl uses default", -time.Minute, "", 15 * time.Minute, "lookup"},
		{"custom values preserved", 10 * time.Minute, "custom", 10 * time.Minute, "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewCachingLookup(nil, tt.ttl, &mockSource{src: entity.SourceFinnhub}, tt.namespace)

			if c.ttl != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, c.ttl)
			}
			if c.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, c.namespace)
			}
		})
	}
}

// TestCachingLookup_NilRedis はRedisがnilの場合にキャッシュをバイパスして
// 内側のアダプタを直接呼び出すことを検証します。
func TestCachingLookup_NilRedis(t *testing.T) {
	t.Parallel()

	expected := []entity.Candidate{{Symbol: "AAPL", Score: 0.9, Source: entity.SourceFinnhub}}
	inner := &mockSource{
		src: entity.SourceFinnhub,
		lookupFn: func(ctx context.Context, name string) ([]entity.Candidate, error) {
			return expected, nil
		},
	}

	c := NewCachingLookup(nil, time.Minute, inner, "")
	got, err := c.Lookup(context.Background(), "Apple Inc.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Symbol != "AAPL" {
		t.Errorf("unexpected result: %+v", got)
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 inner call, got %d", inner.calls)
	}
}

// TestCachingLookup_CacheHit はキャッシュヒット時に内側のアダプタを呼ばないことを検証します。
func TestCachingLookup_CacheHit(t *testing.T) {
	t.Parallel()

	cached := []entity.Candidate{{Symbol: "AAPL", Score: 0.9, Source: entity.SourceFinnhub}}
	b, _ := json.Marshal(cached)

	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet("lookup:FINNHUB:apple_inc.").SetVal(string(b))

	inner := &mockSource{src: entity.SourceFinnhub}
	c := NewCachingLookup(rdb, time.Minute, inner, "")

	got, err := c.Lookup(context.Background(), "Apple Inc.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Symbol != "AAPL" {
		t.Errorf("unexpected result: %+v", got)
	}
	if inner.calls != 0 {
		t.Errorf("expected no inner calls on cache hit, got %d", inner.calls)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// TestCachingLookup_CacheMissStores はキャッシュミス時に内側の結果を取得し、
// TTL付きで保存することを検証します。
func TestCachingLookup_CacheMissStores(t *testing.T) {
	t.Parallel()

	fresh := []entity.Candidate{{Symbol: "SONY", Score: 0.8, Source: entity.SourceFinnhub}}
	b, _ := json.Marshal(fresh)

	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet("lookup:FINNHUB:sony").RedisNil()
	mock.ExpectSet("lookup:FINNHUB:sony", b, time.Minute).SetVal("OK")

	inner := &mockSource{
		src: entity.SourceFinnhub,
		lookupFn: func(ctx context.Context, name string) ([]entity.Candidate, error) {
			return fresh, nil
		},
	}
	c := NewCachingLookup(rdb, time.Minute, inner, "")

	got, err := c.Lookup(context.Background(), "Sony")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// TestCachingLookup_ErrorNotCached は内側の失敗がそのまま返り、キャッシュされないことを検証します。
func TestCachingLookup_ErrorNotCached(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet("lookup:FINNHUB:sony").RedisNil()

	inner := &mockSource{
		src: entity.SourceFinnhub,
		lookupFn: func(ctx context.Context, name string) ([]entity.Candidate, error) {
			return nil, errors.New("upstream down")
		},
	}
	c := NewCachingLookup(rdb, time.Minute, inner, "")

	_, err := c.Lookup(context.Background(), "Sony")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// TestCachingLookup_CorruptedEntry は壊れたキャッシュを破棄してフォールバックすることを検証します。
func TestCachingLookup_CorruptedEntry(t *testing.T) {
	t.Parallel()

	fresh := []entity.Candidate{{Symbol: "SONY", Score: 0.8, Source: entity.SourceFinnhub}}
	b, _ := json.Marshal(fresh)

	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet("lookup:FINNHUB:sony").SetVal("{not json")
	mock.ExpectDel("lookup:FINNHUB:sony").SetVal(1)
	mock.ExpectSet("lookup:FINNHUB:sony", b, time.Minute).SetVal("OK")

	inner := &mockSource{
		src: entity.SourceFinnhub,
		lookupFn: func(ctx context.Context, name string) ([]entity.Candidate, error) {
			return fresh, nil
		},
	}
	c := NewCachingLookup(rdb, time.Minute, inner, "")

	got, err := c.Lookup(context.Background(), "Sony")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected fallback result, got %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

package usecase

import (
	"context"
	"log/slog"
	"sort"

	"ticker_backend/internal/feature/resolution/domain/entity"
	"ticker_backend/internal/shared/normalize"
)

const (
	// trustBonus は信頼済み照会元の候補に加算するスコアボーナスです。
	trustBonus = 0.05
	// scoreCeiling はブースト後スコアの上限です（1.0=確実 を避ける）。
	scoreCeiling = 0.999
)

// trustedSources はスコアブーストの対象となる照会元の集合です。
// 有償・検証済みプロバイダとローカルマスタが含まれます。
var trustedSources = map[entity.Source]struct{}{
	entity.SourceFinnhub: {},
	entity.SourceLocal:   {},
}

// IsTrusted は照会元が信頼済み集合に含まれるかを返します。
func IsTrusted(s entity.Source) bool {
	_, ok := trustedSources[s]
	return ok
}

// SourceAdapter は外部シンボル照会元への統一インターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type SourceAdapter interface {
	// Source はこのアダプタの照会元識別子を返します。
	Source() entity.Source
	// Lookup は企業名に対する生の候補列を返します。
	// 一致なしは空スライスで表現され、エラーではありません。
	Lookup(ctx context.Context, name string) ([]entity.Candidate, error)
}

// Aggregator は有効な全照会元の候補をマージし、重複排除とスコア調整を行います。
type Aggregator struct{}

// NewAggregator はAggregatorの新しいインスタンスを生成します。
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate は1つの名前について有効な全アダプタへ照会し、
// 重複排除・信頼ブースト・決定的な整列を施した候補列を返します。
// 個々のアダプタ障害はソフト失敗（ログのみ、候補0件扱い）です。
// 空の結果は「一致なし」を意味する正常値です。
func (a *Aggregator) Aggregate(ctx context.Context, name string, adapters []SourceAdapter) []entity.Candidate {
	best := map[string]entity.Candidate{}

	for _, ad := range adapters {
		raw, err := ad.Lookup(ctx, name)
		if err != nil {
			// 1つの照会元の障害で行全体を失敗させない
			slog.Warn("source lookup failed", "source", ad.Source(), "name", name, "error", err)
			continue
		}
		for _, c := range raw {
			sym := normalize.Symbol(c.Symbol)
			if sym == "" {
				continue
			}
			c.Symbol = sym
			// 重複はベーススコアが高い方を残す（同点は先着の照会元を維持）
			if prev, ok := best[sym]; ok && c.Score <= prev.Score {
				continue
			}
			best[sym] = c
		}
	}

	out := make([]entity.Candidate, 0, len(best))
	for _, c := range best {
		if IsTrusted(c.Source) {
			c.Score = min(c.Score+trustBonus, scoreCeiling)
		}
		out = append(out, c)
	}

	sortCandidates(out)
	return out
}

// sortCandidates は候補列を決定的に整列します。
// スコア降順、同点は信頼済み照会元を先に、さらに同条件ならシンボル昇順です。
func sortCandidates(cands []entity.Candidate) {
	sort.Slice(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		at, bt := IsTrusted(a.Source), IsTrusted(b.Source)
		if at != bt {
			return at
		}
		return a.Symbol < b.Symbol
	})
}

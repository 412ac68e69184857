package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"ticker_backend/internal/feature/resolution/domain/entity"
	"ticker_backend/internal/shared/normalize"
)

// 行の解決理由。書き戻しファイルのResolveReason列にもそのまま出ます。
const (
	noteSymbolPresent = "symbol_present"
	noteMissingName   = "missing_name"
	noteNoCandidates  = "no_candidates"
	noteAmbiguous     = "ambiguous"
	noteSingleMatch   = "single_match"
)

// AliasApplier は解決パス中にエイリアスを候補列へ適用するインターフェースです。
// ボーナスの重複加算を避けるため、Resolverは行ごと・パスごとに1回だけ呼び出します。
type AliasApplier interface {
	Apply(ctx context.Context, sessionID, name string, cands []entity.Candidate) []entity.Candidate
}

// Resolver は行ごとの解決を編成するユースケースです。
// 照会が必要かを判定し、Aggregatorとエイリアス適用を呼び出し、状態を割り当てます。
type Resolver struct {
	agg     *Aggregator
	learner AliasApplier
	cfg     Config
}

// NewResolver はResolverの新しいインスタンスを生成します。
func NewResolver(agg *Aggregator, learner AliasApplier, cfg Config) *Resolver {
	return &Resolver{agg: agg, learner: learner, cfg: cfg.normalized()}
}

// ResolveRow は1行を解決し、状態と候補を付与した新しい行を返します。
// 入力行は変更しません。1回の解決パスで割り当てる状態は必ず1つです。
//
// 遷移規則:
//   - 元のSymbolあり            → FILLED（候補は参考情報、ChosenSymbol=元のSymbol）
//   - Nameが空白                → UNCHANGED（解決対象なし）
//   - 候補0件                   → NOT_FOUND（全照会元の失敗も同じ扱い）
//   - 候補1件以上               → AMBIGUOUS。ただしSingleMatchPolicyが有効で
//     最上位が採用条件を満たす場合のみFILLED（ChosenSymbol=最上位候補）
func (r *Resolver) ResolveRow(ctx context.Context, sessionID string, row entity.HoldingRow, adapters []SourceAdapter) entity.HoldingRow {
	out := row

	if row.HasSymbol() {
		out.Status = entity.StatusFilled
		out.ChosenSymbol = normalize.Symbol(row.Symbol)
		out.Notes = noteSymbolPresent
		return out
	}

	if !row.HasName() {
		out.Status = entity.StatusUnchanged
		out.Notes = noteMissingName
		return out
	}

	cands := r.agg.Aggregate(ctx, row.Name, adapters)
	if r.learner != nil {
		cands = r.learner.Apply(ctx, sessionID, row.Name, cands)
	}
	out.Candidates = cands

	if len(cands) == 0 {
		// データが無いことは正常な結果であり、エラーではない
		out.Status = entity.StatusNotFound
		out.Notes = noteNoCandidates
		return out
	}

	if r.isSingleMatch(cands) {
		out.Status = entity.StatusFilled
		out.ChosenSymbol = cands[0].Symbol
		out.Notes = noteSingleMatch
		return out
	}

	out.Status = entity.StatusAmbiguous
	out.Notes = noteAmbiguous
	return out
}

// isSingleMatch はSingleMatchPolicyによる「単独の強い一致」判定です。
func (r *Resolver) isSingleMatch(cands []entity.Candidate) bool {
	p := r.cfg.SingleMatch
	if !p.Enabled || len(cands) == 0 {
		return false
	}
	if cands[0].Score < p.AcceptScore {
		return false
	}
	if len(cands) > 1 && cands[1].Score >= p.RunnerUpCeiling {
		return false
	}
	return true
}

// ResolveRows は全行を境界付きワーカープールで並列に解決します。
// 行間に共有可変状態はなく（エイリアスは読み取り専用）、結果の順序は入力と同じです。
// コンテキストのキャンセルで実行中の照会は中断されます。
func (r *Resolver) ResolveRows(ctx context.Context, sessionID string, rows []entity.HoldingRow, adapters []SourceAdapter) []entity.HoldingRow {
	out := make([]entity.HoldingRow, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)

	for i, row := range rows {
		g.Go(func() error {
			out[i] = r.ResolveRow(gctx, sessionID, row, adapters)
			return nil
		})
	}

	// ワーカーはエラーを返さない（アダプタ障害は行内でソフト失敗）
	_ = g.Wait()
	return out
}

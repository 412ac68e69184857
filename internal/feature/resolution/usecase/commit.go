package usecase

import (
	"context"
	"sort"
	"strings"

	"ticker_backend/internal/feature/resolution/domain/entity"
	"ticker_backend/internal/shared/normalize"
)

// OverrideRecorder は一括適用時に学習エイリアスを記録するインターフェースです。
type OverrideRecorder interface {
	RecordOverride(ctx context.Context, sessionID, name, symbol string) error
}

// Plan はコミット確認ステップの結果です。
// Committed は行インデックス→確定シンボル、Changes は監査用に整列した変更案です。
type Plan struct {
	Committed map[int]string         `json:"committed"`
	Changes   []entity.PendingChange `json:"changes"`
}

// CommitPlanner は解決済み行とユーザー上書きから最終シンボルを決定し、
// 確認用の変更セットを生成します。
// 呼び出し元は行と上書きのスナップショットを渡すこと（計算中の変更は不可）。
type CommitPlanner struct {
	recorder OverrideRecorder
}

// NewCommitPlanner はCommitPlannerの新しいインスタンスを生成します。
func NewCommitPlanner(recorder OverrideRecorder) *CommitPlanner {
	return &CommitPlanner{recorder: recorder}
}

// BuildPlan は行ごとに確定シンボルを決定し、リスク降順の変更セットを返します。
//
// 優先順位:
//  1. その行への明示的なユーザー上書き（スコアに関係なく常に尊重）
//  2. 状態がFILLEDの行の最上位候補（ChosenSymbol）
//
// AMBIGUOUS / NOT_FOUND / UNCHANGED で上書きのない行は何も確定しません。
// 同一入力に対して常に同一の変更セットと順序を返します。
func (p *CommitPlanner) BuildPlan(rows []entity.HoldingRow, overrides map[int]string) Plan {
	plan := Plan{Committed: map[int]string{}}

	for _, row := range rows {
		var (
			symbol string
			ok     bool
		)
		if ov, has := overrides[row.Index]; has && strings.TrimSpace(ov) != "" {
			symbol, ok = normalize.Symbol(ov), true
		} else if row.Status == entity.StatusFilled && row.ChosenSymbol != "" {
			symbol, ok = row.ChosenSymbol, true
		}
		if !ok {
			continue
		}

		plan.Committed[row.Index] = symbol

		from := normalize.Symbol(row.Symbol)
		if from == symbol {
			// 既存シンボルの素通しは変更ではないので確認リストに出さない
			continue
		}

		score, source := candidateMeta(row.Candidates, symbol)
		plan.Changes = append(plan.Changes, entity.PendingChange{
			Index:      row.Index,
			Name:       row.Name,
			FromSymbol: from,
			ToSymbol:   symbol,
			Score:      score,
			Source:     source,
			Risk:       ClassifyRisk(score, source),
		})
	}

	// リスクの高い変更から監査できるよう降順に整列。
	// 同リスク内はスコア降順、最後に行インデックス昇順で全順序にする。
	sort.Slice(plan.Changes, func(i, j int) bool {
		a, b := plan.Changes[i], plan.Changes[j]
		if a.Risk != b.Risk {
			return a.Risk.Severity() > b.Risk.Severity()
		}
		as, bs := scoreOrZero(a.Score), scoreOrZero(b.Score)
		if as != bs {
			return as > bs
		}
		return a.Index < b.Index
	})

	return plan
}

// BulkApply はアクティブなフィルタで見えている行のうち、状態がFILLEDまたは
// AMBIGUOUSで最上位候補のスコアが閾値以上の行に上書きを設定し、
// 学習エイリアスを記録します。閾値未満や候補のない行はスキップです（エラーではない）。
// visibleStatuses が空の場合は全状態が対象です。
func (p *CommitPlanner) BulkApply(ctx context.Context, sessionID string, rows []entity.HoldingRow, threshold float64, visibleStatuses []entity.Status) map[int]string {
	visible := map[entity.Status]struct{}{}
	for _, s := range visibleStatuses {
		visible[s] = struct{}{}
	}

	overrides := map[int]string{}
	for _, row := range rows {
		if len(visible) > 0 {
			if _, ok := visible[row.Status]; !ok {
				continue
			}
		}
		if row.Status != entity.StatusFilled && row.Status != entity.StatusAmbiguous {
			continue
		}
		top, ok := row.TopCandidate()
		if !ok || top.Score < threshold {
			continue
		}

		overrides[row.Index] = top.Symbol
		if p.recorder != nil && row.HasName() {
			// エイリアス記録の失敗は上書き自体を妨げない
			_ = p.recorder.RecordOverride(ctx, sessionID, row.Name, top.Symbol)
		}
	}
	return overrides
}

// candidateMeta は確定シンボルに対応する候補のスコアと照会元を返します。
// 候補内に見つからない場合（上書きが候補外のシンボルを指す場合）はnilスコアです。
func candidateMeta(cands []entity.Candidate, symbol string) (*float64, entity.Source) {
	for _, c := range cands {
		if strings.EqualFold(c.Symbol, symbol) {
			s := c.Score
			return &s, c.Source
		}
	}
	return nil, ""
}

func scoreOrZero(s *float64) float64 {
	if s == nil {
		return 0
	}
	return *s
}

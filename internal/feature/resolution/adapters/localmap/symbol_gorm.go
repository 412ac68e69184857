// Package localmap はローカルの銘柄マスタテーブルを照会元として提供します。
package localmap

import (
	"context"
	"sort"
	"strings"

	"gorm.io/gorm"

	"ticker_backend/internal/feature/resolution/domain/entity"
	"ticker_backend/internal/feature/resolution/usecase"
	"ticker_backend/internal/shared/normalize"
)

const (
	// minScore はローカルマスタで候補として採用する類似度の下限です。
	minScore = 0.55
	// maxCandidates は1回の照会で返す候補数の上限です。
	maxCandidates = 5
	// fetchLimit は絞り込み前にDBから引く行数の上限です。
	fetchLimit = 200
)

// symbolGorm は銘柄マスタを引くSourceAdapter実装です。
// 外部APIと違いネットワークを跨がないため、レート制限は不要です。
type symbolGorm struct {
	db *gorm.DB
}

var _ usecase.SourceAdapter = (*symbolGorm)(nil)

// NewSymbolSource は指定されたDB接続でローカルマスタ照会元の新しいインスタンスを生成します。
func NewSymbolSource(db *gorm.DB) *symbolGorm {
	return &symbolGorm{db: db}
}

// Source は照会元の識別子を返します。
func (r *symbolGorm) Source() entity.Source { return entity.SourceLocal }

// Lookup は企業名でアクティブな銘柄マスタを検索し、類似度スコア付きの候補を返します。
// 名前の先頭トークンで粗く絞ってからGo側で類似度を計算します。
func (r *symbolGorm) Lookup(ctx context.Context, name string) ([]entity.Candidate, error) {
	rows, err := r.fetch(ctx, name)
	if err != nil {
		return nil, err
	}

	cands := make([]entity.Candidate, 0, len(rows))
	for _, row := range rows {
		score := normalize.FuzzyScore(name, row.Name)
		if score < minScore {
			continue
		}
		cands = append(cands, entity.Candidate{
			Symbol: normalize.Symbol(row.Symbol),
			Name:   row.Name,
			Type:   row.Type,
			Score:  score,
			Source: entity.SourceLocal,
		})
	}

	sort.SliceStable(cands, func(i, j int) bool { return cands[i].Score > cands[j].Score })
	if len(cands) > maxCandidates {
		cands = cands[:maxCandidates]
	}
	return cands, nil
}

// Search は銘柄マスタの部分一致検索です。検索エンドポイントが使います。
// シンボル前方一致と名前部分一致の両方を対象に、類似度降順で返します。
func (r *symbolGorm) Search(ctx context.Context, query string, limit int) ([]entity.Candidate, error) {
	if limit <= 0 || limit > fetchLimit {
		limit = maxCandidates
	}

	rows, err := r.fetch(ctx, query)
	if err != nil {
		return nil, err
	}

	cands := make([]entity.Candidate, 0, len(rows))
	for _, row := range rows {
		cands = append(cands, entity.Candidate{
			Symbol: normalize.Symbol(row.Symbol),
			Name:   row.Name,
			Type:   row.Type,
			Score:  normalize.FuzzyScore(query, row.Name),
			Source: entity.SourceLocal,
		})
	}

	sort.SliceStable(cands, func(i, j int) bool { return cands[i].Score > cands[j].Score })
	if len(cands) > limit {
		cands = cands[:limit]
	}
	return cands, nil
}

// fetch はシンボル完全一致または名前の部分一致でアクティブな行を引きます。
func (r *symbolGorm) fetch(ctx context.Context, query string) ([]entity.MasterSymbol, error) {
	symbol := normalize.Symbol(query)

	q := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Limit(fetchLimit)

	toks := normalize.Tokenize(normalize.Simplify(query))
	if len(toks) > 0 {
		q = q.Where("symbol = ? OR LOWER(name) LIKE ?", symbol, "%"+strings.ToLower(toks[0])+"%")
	} else if symbol != "" {
		q = q.Where("symbol = ?", symbol)
	}

	var rows []entity.MasterSymbol
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

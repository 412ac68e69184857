package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	aliasentity "ticker_backend/internal/feature/alias/domain/entity"
	"ticker_backend/internal/feature/resolution/domain/entity"
	"ticker_backend/internal/shared/normalize"
)

const (
	// aliasBonus は学習済みシンボルに加算するスコアボーナスです。
	aliasBonus = 0.05
	// scoreCeiling はブースト後スコアの上限です（1.0=確実 を避ける）。
	scoreCeiling = 0.999
)

// AliasRepository は学習済みエイリアスの保存層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type AliasRepository interface {
	// Get は正規化済みの名前に対する学習済みシンボルを返します。
	// 存在しない場合は ErrAliasNotFound を返します。
	Get(ctx context.Context, sessionID, name string) (string, error)
	// Put はマッピングを保存（上書き）します。
	Put(ctx context.Context, sessionID, name, symbol string) error
	// Delete は1件のマッピングを削除します。存在しない場合も成功扱いです。
	Delete(ctx context.Context, sessionID, name string) error
	// List はセッションの全マッピングを返します。
	List(ctx context.Context, sessionID string) ([]aliasentity.Alias, error)
}

// Learner はユーザーの上書き操作から名前→シンボルの対応を学習し、
// 以後の解決で候補の並び替えに反映します。
// ストアは明示的に注入され、解決中は読み取り専用で参照されます。
type Learner struct {
	repo AliasRepository
}

// NewLearner は指定されたリポジトリでLearnerの新しいインスタンスを生成します。
func NewLearner(repo AliasRepository) *Learner {
	return &Learner{repo: repo}
}

// RecordOverride は上書き操作を正規化して保存します。
func (l *Learner) RecordOverride(ctx context.Context, sessionID, name, symbol string) error {
	key := normalize.Name(name)
	if key == "" {
		return ErrEmptyName
	}
	sym := normalize.Symbol(symbol)
	if sym == "" {
		return ErrEmptySymbol
	}
	return l.repo.Put(ctx, sessionID, key, sym)
}

// Clear は1件のマッピングを削除します。存在しないエントリはno-opです。
func (l *Learner) Clear(ctx context.Context, sessionID, name string) error {
	key := normalize.Name(name)
	if key == "" {
		return ErrEmptyName
	}
	return l.repo.Delete(ctx, sessionID, key)
}

// List はセッションの全エイリアスを返します。
func (l *Learner) List(ctx context.Context, sessionID string) ([]aliasentity.Alias, error) {
	return l.repo.List(ctx, sessionID)
}

// Apply は学習済みシンボルが候補内に存在すれば、その候補を先頭へ並び替えます。
// ストア障害や候補とエイリアスの不整合は行単位でno-op（元の並びを返す）とし、
// 呼び出し元へは伝播しません。ボーナスは呼び出し1回ごとに加算されるため、
// オーケストレータは行ごと・パスごとに1回だけ呼び出すことになっています。
func (l *Learner) Apply(ctx context.Context, sessionID, name string, cands []entity.Candidate) []entity.Candidate {
	if len(cands) == 0 {
		return cands
	}
	learned, err := l.repo.Get(ctx, sessionID, normalize.Name(name))
	if err != nil {
		if !errors.Is(err, ErrAliasNotFound) {
			slog.Warn("alias lookup failed, keeping original order",
				"session", sessionID, "name", name, "error", err)
		}
		return cands
	}
	return Rerank(cands, learned)
}

// Rerank は指定シンボルの候補を除去・ブーストして先頭に挿入した新しい並びを返します。
// 入力は変更しません。シンボルが候補内に無い場合は入力のコピーをそのまま返します。
func Rerank(cands []entity.Candidate, symbol string) []entity.Candidate {
	target := normalize.Symbol(symbol)
	hit := -1
	for i, c := range cands {
		if strings.EqualFold(c.Symbol, target) {
			hit = i
			break
		}
	}

	out := make([]entity.Candidate, 0, len(cands))
	if hit < 0 {
		return append(out, cands...)
	}

	boosted := cands[hit]
	boosted.Score = min(boosted.Score+aliasBonus, scoreCeiling)

	out = append(out, boosted)
	for i, c := range cands {
		if i == hit {
			continue
		}
		out = append(out, c)
	}
	return out
}

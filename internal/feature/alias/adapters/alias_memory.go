// Package adapters はaliasフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"sort"
	"sync"

	"ticker_backend/internal/feature/alias/domain/entity"
	"ticker_backend/internal/feature/alias/usecase"
)

// aliasMemory はAliasRepositoryインターフェースのインメモリ実装です。
// Redisが利用できない環境でのフォールバックとして使われます。
type aliasMemory struct {
	mu       sync.RWMutex
	sessions map[string]map[string]string // sessionID -> name -> symbol
}

var _ usecase.AliasRepository = (*aliasMemory)(nil)

// NewAliasMemory はaliasMemoryリポジトリの新しいインスタンスを生成します。
func NewAliasMemory() *aliasMemory {
	return &aliasMemory{sessions: map[string]map[string]string{}}
}

// Get は正規化済みの名前に対する学習済みシンボルを返します。
func (r *aliasMemory) Get(ctx context.Context, sessionID, name string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if sym, ok := r.sessions[sessionID][name]; ok {
		return sym, nil
	}
	return "", usecase.ErrAliasNotFound
}

// Put はマッピングを保存（上書き）します。
func (r *aliasMemory) Put(ctx context.Context, sessionID, name, symbol string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.sessions[sessionID]
	if !ok {
		m = map[string]string{}
		r.sessions[sessionID] = m
	}
	m[name] = symbol
	return nil
}

// Delete は1件のマッピングを削除します。存在しない場合も成功扱いです。
func (r *aliasMemory) Delete(ctx context.Context, sessionID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions[sessionID], name)
	return nil
}

// List はセッションの全マッピングを名前順で返します。
func (r *aliasMemory) List(ctx context.Context, sessionID string) ([]entity.Alias, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m := r.sessions[sessionID]
	out := make([]entity.Alias, 0, len(m))
	for name, sym := range m {
		out = append(out, entity.Alias{Name: name, Symbol: sym})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticker_backend/internal/feature/alias/domain/entity"
	"ticker_backend/internal/feature/alias/usecase"
)

// TestAliasMemory_PutGet は保存と取得、セッション分離を検証します。
func TestAliasMemory_PutGet(t *testing.T) {
	t.Parallel()

	repo := NewAliasMemory()
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "s1", "apple inc.", "AAPL"))

	sym, err := repo.Get(ctx, "s1", "apple inc.")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", sym)

	// 別セッションからは見えない
	_, err = repo.Get(ctx, "s2", "apple inc.")
	assert.ErrorIs(t, err, usecase.ErrAliasNotFound)

	// 上書きは最後の値が勝つ
	require.NoError(t, repo.Put(ctx, "s1", "apple inc.", "APLE"))
	sym, err = repo.Get(ctx, "s1", "apple inc.")
	require.NoError(t, err)
	assert.Equal(t, "APLE", sym)
}

// TestAliasMemory_Delete は削除と存在しないエントリのno-opを検証します。
func TestAliasMemory_Delete(t *testing.T) {
	t.Parallel()

	repo := NewAliasMemory()
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "s1", "shell", "SHEL"))
	require.NoError(t, repo.Delete(ctx, "s1", "shell"))

	_, err := repo.Get(ctx, "s1", "shell")
	assert.ErrorIs(t, err, usecase.ErrAliasNotFound)

	// 存在しないエントリの削除はエラーにならない
	assert.NoError(t, repo.Delete(ctx, "s1", "shell"))
	assert.NoError(t, repo.Delete(ctx, "unknown", "shell"))
}

// TestAliasMemory_List は一覧が名前順で返ることを検証します。
func TestAliasMemory_List(t *testing.T) {
	t.Parallel()

	repo := NewAliasMemory()
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "s1", "shell", "SHEL"))
	require.NoError(t, repo.Put(ctx, "s1", "apple inc.", "AAPL"))

	got, err := repo.List(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []entity.Alias{
		{Name: "apple inc.", Symbol: "AAPL"},
		{Name: "shell", Symbol: "SHEL"},
	}, got)

	// 空セッションは空リスト
	empty, err := repo.List(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

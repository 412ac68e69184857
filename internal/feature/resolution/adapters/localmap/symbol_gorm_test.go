package localmap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"ticker_backend/internal/feature/resolution/domain/entity"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.MasterSymbol{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

// seedSymbol はテスト用の銘柄マスタ行をデータベースに作成します。
func seedSymbol(t *testing.T, db *gorm.DB, symbol, name, typ string, isActive bool) {
	t.Helper()

	row := &entity.MasterSymbol{
		Symbol:   symbol,
		Name:     name,
		Type:     typ,
		IsActive: isActive,
	}
	require.NoError(t, db.Create(row).Error, "failed to seed symbol")
	// SQLiteはINSERT時にbooleanの扱いが異なるため明示的に更新する
	require.NoError(t, db.Model(row).Update("is_active", isActive).Error)
}

func TestSymbolGorm_Lookup(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	seedSymbol(t, db, "AAPL", "Apple Inc.", "Common Stock", true)
	seedSymbol(t, db, "APLE", "Apple Hospitality REIT Inc", "REIT", true)
	seedSymbol(t, db, "SONY", "Sony Group Corporation", "ADR", true)
	seedSymbol(t, db, "OLDC", "Apple Oldco Inc", "Common Stock", false)

	src := NewSymbolSource(db)
	cands, err := src.Lookup(context.Background(), "Apple Inc.")
	require.NoError(t, err)

	require.NotEmpty(t, cands)
	assert.Equal(t, "AAPL", cands[0].Symbol, "best fuzzy match first")
	assert.GreaterOrEqual(t, cands[0].Score, minScore)
	for _, c := range cands {
		assert.Equal(t, entity.SourceLocal, c.Source)
		assert.NotEqual(t, "OLDC", c.Symbol, "inactive rows are excluded")
		assert.NotEqual(t, "SONY", c.Symbol, "unrelated names fall below the cutoff")
	}
}

func TestSymbolGorm_Lookup_NoMatch(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	seedSymbol(t, db, "SONY", "Sony Group Corporation", "ADR", true)

	src := NewSymbolSource(db)
	cands, err := src.Lookup(context.Background(), "Completely Unrelated Name")
	require.NoError(t, err)
	assert.Empty(t, cands)
}

func TestSymbolGorm_Lookup_CapsCandidates(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	names := []string{
		"Apple Inc.", "Apple Class A Inc.", "Apple Class B Inc.",
		"Apple Orchard Inc.", "Apple Holdings Inc.", "Apple Farms Inc.",
		"Apple Partners Inc.",
	}
	for i, n := range names {
		seedSymbol(t, db, "AP"+string(rune('A'+i)), n, "Common Stock", true)
	}

	src := NewSymbolSource(db)
	cands, err := src.Lookup(context.Background(), "Apple Inc.")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(cands), maxCandidates)
}

func TestSymbolGorm_Search(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	seedSymbol(t, db, "TM", "Toyota Motor Corporation", "ADR", true)
	seedSymbol(t, db, "TOYOF", "Toyota Motor Corp", "OTC", true)
	seedSymbol(t, db, "HMC", "Honda Motor Co Ltd", "ADR", true)

	src := NewSymbolSource(db)
	cands, err := src.Search(context.Background(), "Toyota", 10)
	require.NoError(t, err)

	// Searchは閾値なしで広く返す（検索UI用）
	require.Len(t, cands, 2)
	for _, c := range cands {
		assert.Contains(t, c.Name, "Toyota")
	}
}

func TestSymbolGorm_Search_BySymbol(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	seedSymbol(t, db, "SONY", "Sony Group Corporation", "ADR", true)

	src := NewSymbolSource(db)
	cands, err := src.Search(context.Background(), "sony", 5)
	require.NoError(t, err)

	require.NotEmpty(t, cands)
	assert.Equal(t, "SONY", cands[0].Symbol, "symbol exact match after normalization")
}

func TestSymbolGorm_Search_LimitClamped(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	seedSymbol(t, db, "SONY", "Sony Group Corporation", "ADR", true)

	src := NewSymbolSource(db)
	cands, err := src.Search(context.Background(), "sony", 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(cands), maxCandidates)
}

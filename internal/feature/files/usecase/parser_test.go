package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHoldings_HeaderAliases(t *testing.T) {
	t.Parallel()

	csvData := "Security Name,Ticker,Last Price,# of Shares,Market Value\n" +
		"Apple Inc.,AAPL,150.00,10,1500.00\n" +
		"Sony Group, ,95.5,\"1,000\",\n"

	rows, err := ParseHoldings(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 0, rows[0].Index)
	assert.Equal(t, "Apple Inc.", rows[0].Name)
	assert.Equal(t, "AAPL", rows[0].Symbol)
	require.NotNil(t, rows[0].Price)
	assert.InDelta(t, 150.0, *rows[0].Price, 0.0001)
	require.NotNil(t, rows[0].MarketValue)
	assert.InDelta(t, 1500.0, *rows[0].MarketValue, 0.0001)

	assert.Equal(t, "Sony Group", rows[1].Name)
	assert.Empty(t, rows[1].Symbol, "whitespace-only symbol is missing")
	require.NotNil(t, rows[1].Shares, "comma-grouped number is parsed")
	assert.InDelta(t, 1000.0, *rows[1].Shares, 0.0001)
	assert.Nil(t, rows[1].MarketValue)
}

func TestParseHoldings_TSV(t *testing.T) {
	t.Parallel()

	tsv := "Name\tSymbol\tPrice\nApple Inc.\tAAPL\t150.00\n"

	rows, err := ParseHoldings(strings.NewReader(tsv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "AAPL", rows[0].Symbol)
}

func TestParseHoldings_BOMAndMissingMarkers(t *testing.T) {
	t.Parallel()

	csvData := "\uFEFFName,Symbol\n" +
		"Apple Inc.,—\n" +
		"(blank),AAPL\n" +
		"None,None\n"

	rows, err := ParseHoldings(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Apple Inc.", rows[0].Name)
	assert.Empty(t, rows[0].Symbol)
	assert.Empty(t, rows[1].Name)
	assert.Equal(t, "AAPL", rows[1].Symbol)
	assert.Empty(t, rows[2].Name)
	assert.Empty(t, rows[2].Symbol)
}

func TestParseHoldings_DuplicateColumnsCoalesced(t *testing.T) {
	t.Parallel()

	// Nameが2列: 左が空のときだけ右から補完される
	csvData := "Name,Symbol,Company Name\n" +
		",AAPL,Apple Inc.\n" +
		"Shell plc,SHEL,Royal Dutch Shell\n"

	rows, err := ParseHoldings(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Apple Inc.", rows[0].Name)
	assert.Equal(t, "Shell plc", rows[1].Name, "leftmost copy wins when present")
}

func TestParseHoldings_SkipsNoise(t *testing.T) {
	t.Parallel()

	csvData := "Name,Symbol,Price\n" +
		"Apple Inc.,AAPL,150.00\n" +
		",,\n" + // 空行
		"Name,Symbol,Price\n" + // ヘッダー残骸
		"Apple Inc.,AAPL,150.00\n" // 完全重複

	rows, err := ParseHoldings(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].Index)
}

func TestParseHoldings_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		expectedErr error
	}{
		{"empty file", "", ErrEmptyFile},
		{"whitespace only", "   \n  ", ErrEmptyFile},
		{"header only", "Name,Symbol\n", ErrNoRows},
		{"no resolvable columns", "Foo,Bar\nx,y\n", ErrNoResolvableColumns},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseHoldings(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestParseHoldings_UnparsableNumbersAreMissing(t *testing.T) {
	t.Parallel()

	csvData := "Name,Symbol,Price\nApple Inc.,AAPL,n/a\n"

	rows, err := ParseHoldings(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].Price)
}

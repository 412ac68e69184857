// Package usecase は保有銘柄ファイルの読み込みと書き戻しを提供します。
package usecase

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"ticker_backend/internal/feature/resolution/domain/entity"
)

// 正規列名。入力ヘッダーはエイリアス表でここへ畳み込みます。
const (
	colName        = "name"
	colSymbol      = "symbol"
	colPrice       = "price"
	colShares      = "shares"
	colMarketValue = "marketvalue"
)

// headerAliases はヘッダー表記ゆれ→正規列名の対応表です。
// キーは記号と空白を落とした小文字（"# of Shares" → "ofshares"）。
var headerAliases = map[string]string{
	"name": colName, "security": colName, "securityname": colName,
	"company": colName, "companyname": colName, "description": colName,
	"holding": colName, "issuer": colName, "asset": colName,
	"instrument": colName, "equity": colName, "fundname": colName,
	"securitydescription": colName, "securitydesc": colName, "longname": colName,

	"symbol": colSymbol, "ticker": colSymbol, "tickersymbol": colSymbol,
	"code": colSymbol, "securityid": colSymbol, "secid": colSymbol,
	"ric": colSymbol, "tickercode": colSymbol,

	"price": colPrice, "last": colPrice, "lastprice": colPrice,
	"close": colPrice, "closeprice": colPrice, "unitprice": colPrice,
	"marketprice": colPrice, "cost": colPrice, "unitcost": colPrice,
	"avgprice": colPrice,

	"shares": colShares, "ofshares": colShares, "qty": colShares,
	"quantity": colShares, "units": colShares, "position": colShares,
	"positionsize": colShares, "amount": colShares, "shareqty": colShares,

	"marketvalue": colMarketValue, "marketval": colMarketValue,
	"value": colMarketValue, "mv": colMarketValue,
	"positionvalue": colMarketValue, "currentvalue": colMarketValue,
	"totalvalue": colMarketValue, "valuation": colMarketValue,
}

// missingMarkers は欠損値として扱う表記です。
var missingMarkers = map[string]struct{}{
	"": {}, "—": {}, "(blank)": {}, "None": {},
}

// ParseHoldings はCSV/TSVのアップロードを順序付きの保有銘柄行に変換します。
// ヘッダーのエイリアス解決、重複列の左優先マージ、ヘッダー残骸行の除去、
// 数値の強制変換、完全重複行の排除を行います。
func ParseHoldings(r io.Reader) ([]entity.HoldingRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = detectDelimiter(data)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse table: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	header := records[0]
	columns := mapColumns(header)
	if len(columns[colName]) == 0 && len(columns[colSymbol]) == 0 {
		return nil, ErrNoResolvableColumns
	}

	rows := make([]entity.HoldingRow, 0, len(records)-1)
	seen := map[string]struct{}{}
	for _, rec := range records[1:] {
		if isBlankRecord(rec) || isHeaderEcho(rec, header) {
			continue
		}

		name := cellString(rec, columns[colName])
		symbol := cellString(rec, columns[colSymbol])
		price := cellNumber(rec, columns[colPrice])
		shares := cellNumber(rec, columns[colShares])
		mv := cellNumber(rec, columns[colMarketValue])

		key := dedupeKey(name, symbol, price, shares, mv)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		rows = append(rows, entity.HoldingRow{
			Index:       len(rows),
			Name:        name,
			Symbol:      symbol,
			Price:       price,
			Shares:      shares,
			MarketValue: mv,
		})
	}

	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return rows, nil
}

// detectDelimiter は先頭行からタブ区切りかカンマ区切りかを判定します。
func detectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte{'\t'}) > bytes.Count(line, []byte{','}) {
		return '\t'
	}
	return ','
}

// normHeader はヘッダー比較用に記号と空白を落とした小文字を返します。
func normHeader(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// mapColumns は各正規列名に対応する列インデックス群を返します。
// 同名列が複数ある場合は左の列を優先し、右の列は欠損の補完にだけ使います。
func mapColumns(header []string) map[string][]int {
	out := map[string][]int{}
	for i, h := range header {
		if canon, ok := headerAliases[normHeader(h)]; ok {
			out[canon] = append(out[canon], i)
		}
	}
	return out
}

func isBlankRecord(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// isHeaderEcho はデータに紛れ込んだヘッダー行（3セル以上ヘッダー名と一致）を検出します。
func isHeaderEcho(rec, header []string) bool {
	matches := 0
	for i, c := range rec {
		if i >= len(header) {
			break
		}
		if normHeader(c) != "" && normHeader(c) == normHeader(header[i]) {
			matches++
		}
	}
	return matches >= 3
}

// cellString は列候補から最初の非欠損値を返します。
func cellString(rec []string, idxs []int) string {
	for _, i := range idxs {
		if i >= len(rec) {
			continue
		}
		v := strings.TrimSpace(rec[i])
		if _, missing := missingMarkers[v]; !missing {
			return v
		}
	}
	return ""
}

// cellNumber は列候補から最初にパースできた数値を返します。パース不能は欠損扱いです。
func cellNumber(rec []string, idxs []int) *float64 {
	for _, i := range idxs {
		if i >= len(rec) {
			continue
		}
		v := strings.TrimSpace(strings.ReplaceAll(rec[i], ",", ""))
		if _, missing := missingMarkers[v]; missing {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			continue
		}
		return &f
	}
	return nil
}

func dedupeKey(name, symbol string, price, shares, mv *float64) string {
	num := func(p *float64) string {
		if p == nil {
			return ""
		}
		return strconv.FormatFloat(*p, 'f', -1, 64)
	}
	return strings.Join([]string{name, symbol, num(price), num(shares), num(mv)}, "|")
}

// Package entity defines the domain models for the resolution feature.
package entity

// Source は候補を返した照会元の識別子です。
type Source string

const (
	// SourceFinnhub はFinnhubシンボル検索APIを示します。
	SourceFinnhub Source = "FINNHUB"
	// SourcePolygon はPolygonティッカー参照APIを示します。
	SourcePolygon Source = "POLYGON"
	// SourceLocal はローカルの銘柄マスタを示します。
	SourceLocal Source = "LOCAL"
)

// Candidate は1つの企業名に対するティッカーシンボルの候補です。
// スコアは同一の解決呼び出し内でのみ比較可能で、永続化されません。
type Candidate struct {
	Symbol string  `json:"symbol"` // 正規化済み（大文字）のティッカー
	Name   string  `json:"name"`   // 照会元が返した表示名
	Type   string  `json:"type"`   // "Common Stock" / "ETF" など（任意）
	Score  float64 `json:"score"`  // ブースト適用後の最終スコア
	Source Source  `json:"source"` // 候補を返した照会元
}

package entity

import "strings"

// Status は1回の解決パスで行が取りうる状態です。
// ENRICHED のみ書き戻し経路で到達し、プレビューでは割り当てられません。
type Status string

const (
	// StatusFilled は元のSymbolが存在していた（解決不要の）行です。
	StatusFilled Status = "FILLED"
	// StatusAmbiguous はSymbol欠落かつ複数の候補が拮抗している行です。
	StatusAmbiguous Status = "AMBIGUOUS"
	// StatusNotFound はSymbol欠落かつ採用基準を満たす候補がない行です。
	StatusNotFound Status = "NOT_FOUND"
	// StatusUnchanged は対応不要の行です（名前が空など）。
	StatusUnchanged Status = "UNCHANGED"
	// StatusEnriched は書き戻し完了後の終端状態です。
	StatusEnriched Status = "ENRICHED"
)

// HoldingRow はアップロードされた保有明細の1行です。
// Index はアップロード内で安定したゼロ始まりの位置です。
// Price / Shares / MarketValue は解釈せずそのまま引き回します。
type HoldingRow struct {
	Index       int      `json:"index"`
	Name        string   `json:"name"`
	Symbol      string   `json:"symbol"`
	Price       *float64 `json:"price,omitempty"`
	Shares      *float64 `json:"shares,omitempty"`
	MarketValue *float64 `json:"market_value,omitempty"`

	// 解決パスで付与される注釈
	Status       Status      `json:"status,omitempty"`
	Candidates   []Candidate `json:"candidates,omitempty"`
	ChosenSymbol string      `json:"chosen_symbol,omitempty"`
	Notes        string      `json:"notes,omitempty"`
}

// HasSymbol は元のSymbol欄が空白でないかを返します。
func (r HoldingRow) HasSymbol() bool {
	return strings.TrimSpace(r.Symbol) != ""
}

// HasName はName欄が空白でないかを返します。
func (r HoldingRow) HasName() bool {
	return strings.TrimSpace(r.Name) != ""
}

// TopCandidate は最上位の候補を返します。候補がない場合は false を返します。
func (r HoldingRow) TopCandidate() (Candidate, bool) {
	if len(r.Candidates) == 0 {
		return Candidate{}, false
	}
	return r.Candidates[0], true
}

package usecase

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"

	"ticker_backend/internal/feature/resolution/domain/entity"
)

// ResolverVersion は書き戻しファイルに刻む解決ロジックの版です。
const ResolverVersion = "2025.11.03"

// enrichedHeader は書き戻しCSVの列です。元の列＋監査列。
var enrichedHeader = []string{
	"Name", "Symbol", "Price", "Shares", "MarketValue",
	"ResolveStatus", "ResolvedSymbol", "ResolveSource", "ResolveScore", "ResolveReason",
	"TopCandidatesJSON", "WasOverridden", "OverrideSymbol",
	"RunId", "ResolverVersion",
}

// NewRunID はコミット1回を識別するIDを生成します。
func NewRunID() string {
	return uuid.NewString()
}

// topCandidate は監査列TopCandidatesJSONの1要素です。
type topCandidate struct {
	Symbol string        `json:"symbol"`
	Name   string        `json:"name"`
	Type   string        `json:"type"`
	Score  float64       `json:"score"`
	Source entity.Source `json:"source"`
}

// WriteEnriched は解決済み行と確定結果からCSVの書き戻しバイト列を生成します。
// 出力は全量をメモリ上で組み立てるため、途中失敗で半端なファイルが出ることはありません。
//
// Symbol列が確定値で埋まるのはcommittedに載った行だけです。MarketValueが欠損で
// PriceとSharesが揃っている行は積を補完します（小数2桁丸め）。
func WriteEnriched(rows []entity.HoldingRow, committed, overrides map[int]string, runID string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(enrichedHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for _, row := range rows {
		symbol := row.Symbol
		resolved := ""
		if s, ok := committed[row.Index]; ok {
			symbol = s
			resolved = s
		}

		overrideSymbol, wasOverridden := overrides[row.Index]

		reason := row.Notes
		if wasOverridden {
			reason = "override"
		}

		source, score := committedMeta(row.Candidates, resolved)

		mv := row.MarketValue
		if mv == nil && row.Price != nil && row.Shares != nil {
			v := round2(*row.Price * *row.Shares)
			mv = &v
		}

		record := []string{
			row.Name, symbol,
			numCell(row.Price), numCell(row.Shares), numCell(mv),
			string(row.Status), resolved, string(source), score, reason,
			topCandidatesJSON(row.Candidates), strconv.FormatBool(wasOverridden), overrideSymbol,
			runID, ResolverVersion,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row.Index, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// committedMeta は確定シンボルに対応する候補の照会元とスコア表記を返します。
func committedMeta(cands []entity.Candidate, symbol string) (entity.Source, string) {
	if symbol == "" {
		return "", ""
	}
	for _, c := range cands {
		if c.Symbol == symbol {
			return c.Source, strconv.FormatFloat(round2(c.Score), 'f', 2, 64)
		}
	}
	return "", ""
}

// topCandidatesJSON は上位3候補をJSON文字列にします。スコアは2桁丸め。
func topCandidatesJSON(cands []entity.Candidate) string {
	top := cands
	if len(top) > 3 {
		top = top[:3]
	}
	out := make([]topCandidate, 0, len(top))
	for _, c := range top {
		out = append(out, topCandidate{
			Symbol: c.Symbol,
			Name:   c.Name,
			Type:   c.Type,
			Score:  round2(c.Score),
			Source: c.Source,
		})
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func numCell(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

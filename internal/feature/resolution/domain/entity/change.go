package entity

// RiskTier は提案されたシンボル書き込みの危険度です。
// 保存されず、コミット計画のたびに再計算されます。
type RiskTier string

const (
	RiskLow    RiskTier = "LOW"
	RiskMedium RiskTier = "MEDIUM"
	RiskHigh   RiskTier = "HIGH"
)

// severity はリスク階層の重篤度順序です（大きいほど危険）。
var severity = map[RiskTier]int{
	RiskLow:    0,
	RiskMedium: 1,
	RiskHigh:   2,
}

// Severity はソート用の重篤度を返します。未知の値はHIGH相当として扱います。
func (t RiskTier) Severity() int {
	if s, ok := severity[t]; ok {
		return s
	}
	return severity[RiskHigh]
}

// PendingChange はコミット確認画面に出す1件の変更案です。
// コミットまたはキャンセル後に破棄されます。
type PendingChange struct {
	Index      int      `json:"index"`
	Name       string   `json:"name"`
	FromSymbol string   `json:"from_symbol"`
	ToSymbol   string   `json:"to_symbol"`
	Score      *float64 `json:"score,omitempty"`
	Source     Source   `json:"source,omitempty"`
	Risk       RiskTier `json:"risk"`
}

package usecase

import "ticker_backend/internal/feature/resolution/domain/entity"

const (
	// LowRiskScore 以上のスコアはLOW扱いです。
	LowRiskScore = 0.85
	// MediumRiskScore 以上 LowRiskScore 未満のスコアはMEDIUM扱いです。
	MediumRiskScore = 0.60
)

// ClassifyRisk は提案されたシンボル書き込みのリスク階層を返します。
// 照会元の影響は集約時の信頼ブーストで既にスコアへ織り込まれているため、
// ここではブースト後スコアのみを読みます。純関数であり、毎回再計算されます。
func ClassifyRisk(score *float64, _ entity.Source) entity.RiskTier {
	if score == nil {
		return entity.RiskHigh
	}
	switch {
	case *score >= LowRiskScore:
		return entity.RiskLow
	case *score >= MediumRiskScore:
		return entity.RiskMedium
	default:
		return entity.RiskHigh
	}
}

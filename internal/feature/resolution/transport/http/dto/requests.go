// Package dto defines data transfer objects for the resolution HTTP API.
package dto

import (
	"fmt"
	"strconv"

	"ticker_backend/internal/feature/resolution/domain/entity"
)

// PlanRequest はコミット確認ステップの計算要求です。
// Rows はプレビューで返された解決済み行をそのまま送り返します。
// Overrides のキーは行インデックスの10進表記です（JSONのキーは文字列のため）。
type PlanRequest struct {
	Rows      []entity.HoldingRow `json:"rows" binding:"required"`
	Overrides map[string]string   `json:"overrides"`
}

// BulkApplyRequest は閾値による一括上書きの要求です。
// Statuses が空なら全状態が対象です（フィルタなし）。
type BulkApplyRequest struct {
	Rows      []entity.HoldingRow `json:"rows" binding:"required"`
	Threshold float64             `json:"threshold"`
	Statuses  []entity.Status     `json:"statuses"`
}

// BulkApplyResponse は一括適用で設定された上書きの集合です。
type BulkApplyResponse struct {
	Overrides map[int]string `json:"overrides"`
}

// ParseOverrides は文字列キーの上書きマップを行インデックスに変換します。
func ParseOverrides(in map[string]string) (map[int]string, error) {
	out := make(map[int]string, len(in))
	for k, v := range in {
		idx, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("invalid override key %q: %w", k, err)
		}
		out[idx] = v
	}
	return out, nil
}

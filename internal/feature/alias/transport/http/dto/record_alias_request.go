// Package dto defines data transfer objects for the alias HTTP API.
package dto

// RecordAliasRequest は手動上書きの学習要求です。
type RecordAliasRequest struct {
	Name   string `json:"name" binding:"required"`
	Symbol string `json:"symbol" binding:"required"`
}

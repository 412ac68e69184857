// Package dto はFinnhub APIレスポンスのデータ転送オブジェクトを定義します。
package dto

// SearchResponse はFinnhub searchエンドポイントからのJSONレスポンスを表します。
type SearchResponse struct {
	Count  int `json:"count"`
	Result []struct {
		Description   string `json:"description"`
		DisplaySymbol string `json:"displaySymbol"`
		Symbol        string `json:"symbol"`
		Type          string `json:"type"`
	} `json:"result"`
}

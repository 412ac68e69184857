// Package dto はPolygon APIレスポンスのデータ転送オブジェクトを定義します。
package dto

// TickersResponse はPolygon reference/tickersエンドポイントからのJSONレスポンスを表します。
type TickersResponse struct {
	Status  string `json:"status"`
	Count   int    `json:"count"`
	Error   string `json:"error,omitempty"`
	Results []struct {
		Ticker          string `json:"ticker"`
		Name            string `json:"name"`
		Market          string `json:"market"`
		Type            string `json:"type"`
		PrimaryExchange string `json:"primary_exchange"`
		Active          bool   `json:"active"`
	} `json:"results"`
}

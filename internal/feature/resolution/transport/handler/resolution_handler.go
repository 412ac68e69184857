// Package handler はresolutionフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	filesusecase "ticker_backend/internal/feature/files/usecase"
	"ticker_backend/internal/feature/resolution/domain/entity"
	"ticker_backend/internal/feature/resolution/transport/http/dto"
	"ticker_backend/internal/feature/resolution/usecase"
	"ticker_backend/internal/platform/token"
)

// RowResolver は行解決のユースケースインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type RowResolver interface {
	ResolveRows(ctx context.Context, sessionID string, rows []entity.HoldingRow, adapters []usecase.SourceAdapter) []entity.HoldingRow
}

// CommitPlanner はコミット計画と一括適用のユースケースインターフェースです。
type CommitPlanner interface {
	BuildPlan(rows []entity.HoldingRow, overrides map[int]string) usecase.Plan
	BulkApply(ctx context.Context, sessionID string, rows []entity.HoldingRow, threshold float64, visibleStatuses []entity.Status) map[int]string
}

// SymbolSearcher はローカル銘柄マスタの検索インターフェースです。
type SymbolSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]entity.Candidate, error)
}

// ResolutionHandler はファイルの解決・コミットと候補検索のHTTPリクエストを処理します。
// external は常時使う照会元、withLocal はローカルマスタを含めた照会元です。
type ResolutionHandler struct {
	resolver  RowResolver
	planner   CommitPlanner
	searcher  SymbolSearcher // ローカルマスタ未設定ならnil
	external  []usecase.SourceAdapter
	withLocal []usecase.SourceAdapter
}

// NewResolutionHandler は指定された依存でResolutionHandlerの新しいインスタンスを生成します。
func NewResolutionHandler(resolver RowResolver, planner CommitPlanner, searcher SymbolSearcher,
	external, withLocal []usecase.SourceAdapter) *ResolutionHandler {
	return &ResolutionHandler{
		resolver:  resolver,
		planner:   planner,
		searcher:  searcher,
		external:  external,
		withLocal: withLocal,
	}
}

// adaptersFor はuse_local_mapsフラグに応じた照会元の組を返します。
func (h *ResolutionHandler) adaptersFor(useLocal bool) []usecase.SourceAdapter {
	if useLocal && len(h.withLocal) > 0 {
		return h.withLocal
	}
	return h.external
}

// parseUpload はmultipartのファイルを保有銘柄行に変換します。失敗は呼び出し側で400にします。
func (h *ResolutionHandler) parseUpload(c *gin.Context) ([]entity.HoldingRow, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return filesusecase.ParseHoldings(f)
}

// Preview はアップロードを解決し、状態と候補を付与した行を返すAPIです。
//
// エンドポイント例:
// POST /files/preview (multipart: file, use_local_maps)
func (h *ResolutionHandler) Preview(c *gin.Context) {
	rows, err := h.parseUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	useLocal := c.PostForm("use_local_maps") == "true"
	resolved := h.resolver.ResolveRows(c.Request.Context(), token.SessionID(c), rows, h.adaptersFor(useLocal))

	c.JSON(http.StatusOK, resolved)
}

// Commit はアップロードを解決・確定し、監査列付きCSVを添付ファイルとして返すAPIです。
// 出力は全量生成してから返すため、途中失敗で半端なダウンロードにはなりません。
//
// エンドポイント例:
// POST /files/commit (multipart: file, overrides, use_local_maps)
func (h *ResolutionHandler) Commit(c *gin.Context) {
	rows, err := h.parseUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	overrides, err := parseOverridesForm(c.PostForm("overrides"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	useLocal := c.PostForm("use_local_maps") == "true"
	resolved := h.resolver.ResolveRows(c.Request.Context(), token.SessionID(c), rows, h.adaptersFor(useLocal))

	plan := h.planner.BuildPlan(resolved, overrides)

	data, err := filesusecase.WriteEnriched(resolved, plan.Committed, overrides, filesusecase.NewRunID())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="enriched_holdings.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// Plan は解決済み行と上書きからコミット確認用の変更セットを返すAPIです。
//
// エンドポイント例:
// POST /enrich/plan
func (h *ResolutionHandler) Plan(c *gin.Context) {
	var req dto.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	overrides, err := dto.ParseOverrides(req.Overrides)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.planner.BuildPlan(req.Rows, overrides))
}

// BulkApply は閾値以上の行へ一括で上書きを設定し、設定された上書きを返すAPIです。
//
// エンドポイント例:
// POST /enrich/bulk-apply
func (h *ResolutionHandler) BulkApply(c *gin.Context) {
	var req dto.BulkApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	overrides := h.planner.BulkApply(c.Request.Context(), token.SessionID(c),
		req.Rows, req.Threshold, req.Statuses)

	c.JSON(http.StatusOK, dto.BulkApplyResponse{Overrides: overrides})
}

// Search はローカル銘柄マスタの候補検索APIです。
//
// エンドポイント例:
// GET /symbols/search?query=apple&limit=10
func (h *ResolutionHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}
	if h.searcher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "symbol master not configured"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	cands, err := h.searcher.Search(c.Request.Context(), query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cands)
}

// parseOverridesForm はフォーム値のJSON文字列を上書きマップに変換します。
func parseOverridesForm(raw string) (map[int]string, error) {
	if strings.TrimSpace(raw) == "" {
		return map[int]string{}, nil
	}
	var in map[string]string
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return nil, err
	}
	return dto.ParseOverrides(in)
}

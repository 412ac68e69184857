// Package handler はaliasフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ticker_backend/internal/feature/alias/domain/entity"
	"ticker_backend/internal/feature/alias/transport/http/dto"
	"ticker_backend/internal/feature/alias/usecase"
	"ticker_backend/internal/platform/token"
)

// AliasUsecase はエイリアス学習に関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AliasUsecase interface {
	RecordOverride(ctx context.Context, sessionID, name, symbol string) error
	Clear(ctx context.Context, sessionID, name string) error
	List(ctx context.Context, sessionID string) ([]entity.Alias, error)
}

// AliasHandler はエイリアスの登録・削除・一覧のHTTPリクエストを処理します。
type AliasHandler struct {
	uc AliasUsecase
}

// NewAliasHandler は新しい AliasHandler を作成します。
func NewAliasHandler(uc AliasUsecase) *AliasHandler {
	return &AliasHandler{uc: uc}
}

// Record は名前→シンボルのマッピングを学習するAPIです。
// 名前またはシンボルが空の場合は400 Bad Requestを返します。
//
// エンドポイント例:
// PUT /aliases
func (h *AliasHandler) Record(c *gin.Context) {
	var req dto.RecordAliasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.uc.RecordOverride(c.Request.Context(), token.SessionID(c), req.Name, req.Symbol)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyName) || errors.Is(err, usecase.ErrEmptySymbol) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Clear は1件のマッピングを削除するAPIです。存在しないエントリでも204を返します。
//
// エンドポイント例:
// DELETE /aliases/:name
func (h *AliasHandler) Clear(c *gin.Context) {
	err := h.uc.Clear(c.Request.Context(), token.SessionID(c), c.Param("name"))
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// List はセッションの学習済みエイリアス一覧を返すAPIです。
//
// エンドポイント例:
// GET /aliases
func (h *AliasHandler) List(c *gin.Context) {
	aliases, err := h.uc.List(c.Request.Context(), token.SessionID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if aliases == nil {
		aliases = []entity.Alias{}
	}
	c.JSON(http.StatusOK, aliases)
}

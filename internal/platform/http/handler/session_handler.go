package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ticker_backend/internal/platform/token"
)

// SessionHandler は匿名セッションの発行を処理します。
// アカウントは存在せず、セッションIDはエイリアス学習の名前空間にだけ使われます。
type SessionHandler struct {
	gen token.Generator
}

// NewSessionHandler は新しい SessionHandler を作成します。
func NewSessionHandler(gen token.Generator) *SessionHandler {
	return &SessionHandler{gen: gen}
}

// Create は新しいセッションIDとその署名付きトークンを発行するAPIです。
//
// エンドポイント例:
// POST /session
func (h *SessionHandler) Create(c *gin.Context) {
	sessionID := uuid.NewString()

	signed, err := h.gen.GenerateToken(sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"token":      signed,
	})
}

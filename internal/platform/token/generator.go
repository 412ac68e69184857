// Package token はセッショントークンの発行と検証を提供します。
// トークンはエイリアス学習の名前空間となるセッションIDだけを運びます。
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// EnvKeySecret はHMAC署名鍵を格納する環境変数名です。
const EnvKeySecret = "SESSION_JWT_SECRET"

// Generator defines the interface for session token generation.
type Generator interface {
	// GenerateToken creates a signed token carrying the given session ID.
	GenerateToken(sessionID string) (string, error)
}

// generator implements the Generator interface.
type generator struct {
	secret     []byte
	expiration time.Duration
}

// NewGenerator creates a new token generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) Generator {
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// GenerateToken creates a signed JWT with the session ID as subject.
func (g *generator) GenerateToken(sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": sessionID,
		"exp": time.Now().Add(g.expiration).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

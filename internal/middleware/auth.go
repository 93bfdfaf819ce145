package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/playmatatu/billiards/internal/config"
)

var ErrInvalidTableToken = errors.New("invalid table token")

// tableClaims binds a token to one table.
type tableClaims struct {
	TableID string `json:"table_id"`
	jwt.RegisteredClaims
}

// IssueTableToken signs a token that lets its holder control a table.
func IssueTableToken(secret, tableID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tableClaims{
		TableID: tableID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseTableToken validates a table token and returns the table it grants.
func ParseTableToken(secret, token string) (string, error) {
	var claims tableClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid || claims.TableID == "" {
		return "", ErrInvalidTableToken
	}
	return claims.TableID, nil
}

// TableAuth requires a bearer table token matching the :id route parameter.
func TableAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		tableID, err := ParseTableToken(cfg.JWTSecret, strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if tableID != c.Param("id") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "token does not match table"})
			return
		}

		c.Set("table_id", tableID)
		c.Next()
	}
}

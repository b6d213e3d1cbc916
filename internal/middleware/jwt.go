package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"calldeskrest/internal/models/dto"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

const agentIDKey = "agent_id"

// VerifyToken checks the signature and expiry of token
func VerifyToken(token, secret string) (jwt.MapClaims, error) {
	tokenVerify, err := jwt.Parse(token, func(newToken *jwt.Token) (any, error) {
		if _, isValid := newToken.Method.(*jwt.SigningMethodHMAC); !isValid {
			return nil, fmt.Errorf("unexpected signing method: %v", newToken.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}

	claims, isOk := tokenVerify.Claims.(jwt.MapClaims)
	if !isOk || !tokenVerify.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Auth requires a bearer token signed with secret and stores its agent id
// in the context
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewAuthErrorResponse(c, "JWT token not provided"))
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewAuthErrorResponse(c, "Invalid Authorization header format"))
			return
		}

		claims, err := VerifyToken(parts[1], secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewAuthErrorResponse(c, "Invalid token"))
			return
		}

		if agentID, ok := claims["agent_id"].(string); ok {
			c.Set(agentIDKey, agentID)
		}
		c.Next()
	}
}

// AgentID returns the agent named by the verified token, if any
func AgentID(c *gin.Context) string {
	if v, ok := c.Get(agentIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	apperrors "comptable/internal/errors"
	"comptable/internal/models"
	"comptable/internal/session"
)

const (
	userIDKey = "userID"
	issuer    = "comptable"
)

// JWTClaims represents the claims in the JWT. SessionID binds the token to
// one login of the session; logging out rotates the id and invalidates it.
type JWTClaims struct {
	UserID    uint   `json:"user_id"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies bearer tokens.
type TokenIssuer struct {
	key    []byte
	expiry time.Duration
}

// NewTokenIssuer creates a TokenIssuer using HS256 with secret.
func NewTokenIssuer(secret string, expiry time.Duration) *TokenIssuer {
	return &TokenIssuer{key: []byte(secret), expiry: expiry}
}

// GenerateToken issues a token for user within the given session.
func (i *TokenIssuer) GenerateToken(user *models.User, sessionID string) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		UserID:    user.ID,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.key)
}

// ParseToken verifies the signature and expiry of tokenString.
func (i *TokenIssuer) ParseToken(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.key, nil
	}, jwt.WithIssuer(issuer))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// AuthMiddleware verifies the bearer token against the current session and
// sets the user id in the context.
func AuthMiddleware(tokens *TokenIssuer, sess *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := tokens.ParseToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		state := sess.Snapshot()
		if claims.SessionID != state.ID || state.UserID == nil || *state.UserID != claims.UserID {
			abortUnauthorized(c, "Session has ended")
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	_ = c.Error(apperrors.WithMessage(apperrors.ErrUnauthorized, message))
	c.Abort()
}

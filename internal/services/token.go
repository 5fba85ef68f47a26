package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification failures are distinguished internally (for logging and
// tests) but handlers must collapse all three into one generic rejection so
// the response does not reveal which check failed.
var (
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token is expired")
	ErrTokenSignature = errors.New("token signature is invalid")
)

// TokenClaims is the payload carried by an issued auth token.
type TokenClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

var (
	signingSecret []byte
	tokenTTL      = 24 * time.Hour
)

// ConfigureTokens sets the process-wide signing secret and token lifetime.
// Must be called once at startup before any token is issued or verified.
func ConfigureTokens(secret string, ttl time.Duration) error {
	if secret == "" {
		return errors.New("JWT_SECRET is required but was empty")
	}
	signingSecret = []byte(secret)
	if ttl > 0 {
		tokenTTL = ttl
	}
	return nil
}

// IssueToken creates a signed HS256 token bound to a user identity.
func IssueToken(userID, username string) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingSecret)
}

// VerifyToken validates signature and expiry and returns the claims.
// Failures are classified as ErrTokenMalformed, ErrTokenExpired or
// ErrTokenSignature, matchable with errors.Is.
func VerifyToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		// Reject unexpected signing algorithms (algorithm confusion attacks)
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignature
		}
		return signingSecret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignature
		default:
			return nil, ErrTokenMalformed
		}
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}
	if claims.UserID == "" || claims.Username == "" {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

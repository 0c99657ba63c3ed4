package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// GenerateSessionID creates a new UUID for session identification
func GenerateSessionID() string {
	return uuid.New().String()
}

// GenerateResetToken creates a new UUID token for password resets
func GenerateResetToken() string {
	return uuid.New().String()
}

// TokenIssuer signs and verifies JWT access tokens for the JSON API.
type TokenIssuer struct {
	secret   []byte
	lifetime time.Duration
}

// NewTokenIssuer creates a token issuer with the given signing secret
func NewTokenIssuer(secret string, lifetime time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), lifetime: lifetime}
}

// Issue creates a signed access token for a user
func (i *TokenIssuer) Issue(uid, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   uid,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(i.lifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses a signed token and returns the user UID and email it carries
func (i *TokenIssuer) Verify(tokenString string) (uid, email string, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return "", "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", fmt.Errorf("invalid token claims")
	}

	uid, _ = claims["sub"].(string)
	email, _ = claims["email"].(string)
	if uid == "" {
		return "", "", fmt.Errorf("token missing subject")
	}
	return uid, email, nil
}

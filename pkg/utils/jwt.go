package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"foodtook_backoffice/pkg/config"
	"foodtook_backoffice/pkg/models"
)

// TokenClaims is the back-office session token issued after a resolution
type TokenClaims struct {
	UID       string            `json:"uid"`
	Email     string            `json:"email"`
	Role      models.Role       `json:"role"`
	StaffRole *models.StaffRole `json:"staffRole,omitempty"`
	Ghost     bool              `json:"ghost,omitempty"`
	// Mode is the resolved auth mode; resume modes carry no role
	Mode string `json:"mode,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken signs claims with JWT_SECRET, expiring after JWT_EXPIRES_IN
func GenerateToken(claims TokenClaims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.UID,
		ExpiresAt: jwt.NewNumericDate(now.Add(config.JWTDuration())),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// VerifyToken verifies and parses a JWT token
func VerifyToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*TokenClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

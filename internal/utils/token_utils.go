package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateOperatorJWT signs an HS256 token accepted by the operator API.
// Production tokens come from the admin backend; this is for local use and tests.
func GenerateOperatorJWT(operatorID, role, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  operatorID,
		"role": role,
		"exp":  jwt.NewNumericDate(now.Add(expiryDuration)),
		"iat":  jwt.NewNumericDate(now),
		"nbf":  jwt.NewNumericDate(now),
	}
	if issuer != "" {
		claims["iss"] = issuer
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

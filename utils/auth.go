package utils

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

// JwtKey signs session and verification tokens. Loaded from the
// JWT_SECRET environment variable at startup.
var JwtKey []byte

// tokenTTL bounds how long a session token stays valid.
const tokenTTL = 24 * time.Hour

// Claims represents the JWT claims carried by a session token.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.StandardClaims
}

// GenerateJWT issues a signed token for the given account.
func GenerateJWT(email, role string) (string, error) {
	claims := &Claims{
		Email: email,
		Role:  role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(tokenTTL).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JwtKey)
}

// ParseJWT validates a token string and returns its claims.
func ParseJWT(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return JwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

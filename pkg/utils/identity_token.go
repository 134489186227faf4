package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IdentityClaims is the session token shape issued by the identity provider.
// The provider signs with a shared HS256 secret; the API only ever verifies.
type IdentityClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("invalid or expired token")

// ValidateIdentityToken parses and verifies a session token. The subject
// claim carries the identity-provider user id.
func ValidateIdentityToken(tokenString string, secret []byte) (*IdentityClaims, error) {
	claims := &IdentityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// SignIdentityToken mints a session token. Only used by local development
// tooling and tests; production tokens come from the identity provider.
func SignIdentityToken(userID, email, name, role string, secret []byte, ttl time.Duration) (string, error) {
	claims := &IdentityClaims{
		Email: email,
		Name:  name,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

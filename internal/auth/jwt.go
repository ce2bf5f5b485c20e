package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleRestaurant = "RESTAURANT"
	RoleAdmin      = "ADMIN"
)

var (
	ErrMissingSecret = errors.New("JWT secret not set")
	ErrInvalidToken  = errors.New("invalid token")
)

// Claims are the identity provider's token claims. The subject is the user id.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() string { return c.Subject }

// GenerateToken signs an HS256 token. Production tokens come from the identity
// provider; this is for tests and local tooling.
func GenerateToken(secret, userID, email, role string, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", errors.New("empty userID passed to GenerateToken")
	}
	if secret == "" {
		return "", ErrMissingSecret
	}

	now := time.Now()
	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateToken(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

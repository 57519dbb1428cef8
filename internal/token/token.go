package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "staffhub-auth"

var (
	// ErrExpired means the token was well-formed and correctly signed
	// but its expiry has elapsed.
	ErrExpired = errors.New("token expired")
	// ErrInvalid covers bad signatures, malformed tokens and foreign claims.
	ErrInvalid = errors.New("token invalid")
)

// Claims is the identity payload carried by both token kinds.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Issue mints an HS256-signed token for username, valid for ttl.
// Access and refresh tokens differ only in the secret and ttl passed in.
func Issue(username string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Verify checks signature and expiry against the given secret. A token
// signed with the other kind's secret fails with ErrInvalid.
func Verify(tokenString string, secret []byte) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || claims.Username == "" {
		return nil, ErrInvalid
	}
	return claims, nil
}

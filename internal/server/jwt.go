package server

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims adalah isi JWT akses yang diterbitkan stub.
type TokenClaims struct {
	Nama string `json:"nama"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer mengenkapsulasi penerbitan dan validasi token.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer membuat penerbit dengan rahasia dan TTL terkonfigurasi.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue membuat JWT HS256 dengan klaim sub, nama, role.
func (i *TokenIssuer) Issue(user User) (string, error) {
	now := time.Now().UTC()
	claims := TokenClaims{
		Nama: user.Nama,
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// ParseAndValidate memverifikasi tanda tangan dan masa berlaku.
func (i *TokenIssuer) ParseAndValidate(tokenString string) (*TokenClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, errors.New("token tidak valid")
	}
	return claims, nil
}

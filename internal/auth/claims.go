package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims memuat identitas yang tertanam pada payload token.
type Claims struct {
	UserID string
	Nama   string
	Role   string
}

// DecodeClaims membaca payload token tanpa verifikasi tanda tangan.
// Hanya untuk fallback tampilan saat server tidak terjangkau; nil pada
// input cacat apa pun dan tidak boleh dijadikan batas otorisasi.
func DecodeClaims(tok string) *Claims {
	parser := jwt.NewParser()

	mapClaims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tok, mapClaims); err != nil {
		return nil
	}

	sub, ok := mapClaims["sub"].(string)
	if !ok || sub == "" {
		return nil
	}
	nama, ok := mapClaims["nama"].(string)
	if !ok || nama == "" {
		return nil
	}
	role, ok := mapClaims["role"].(string)
	if !ok || role == "" {
		return nil
	}

	return &Claims{UserID: sub, Nama: nama, Role: role}
}

// AsUser memetakan klaim menjadi identitas tampilan.
func (c *Claims) AsUser() *User {
	return &User{UserID: c.UserID, Nama: c.Nama, Role: c.Role}
}

package auth

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte("rahasia-uji"))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	return signed
}

func TestDecodeClaimsValid(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{
		"sub":  "kadep1",
		"nama": "Dr. X",
		"role": "kadep",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	claims := DecodeClaims(tok)
	if claims == nil {
		t.Fatal("DecodeClaims mengembalikan nil untuk token valid")
	}
	if claims.UserID != "kadep1" || claims.Nama != "Dr. X" || claims.Role != "kadep" {
		t.Fatalf("klaim = %+v", claims)
	}
}

func TestDecodeClaimsMalformed(t *testing.T) {
	junk := base64.RawURLEncoding.EncodeToString([]byte("bukan json"))

	cases := []struct {
		name string
		tok  string
	}{
		{"kosong", ""},
		{"satu segmen", "abc"},
		{"dua segmen", "abc.def"},
		{"empat segmen", "a.b.c.d"},
		{"base64 rusak", "aaa.!!!.ccc"},
		{"payload bukan json", "aaa." + junk + ".ccc"},
		{"tanpa sub", signedToken(t, jwt.MapClaims{"nama": "Dr. X", "role": "kadep"})},
		{"tanpa nama", signedToken(t, jwt.MapClaims{"sub": "kadep1", "role": "kadep"})},
		{"tanpa role", signedToken(t, jwt.MapClaims{"sub": "kadep1", "nama": "Dr. X"})},
		{"sub bukan string", signedToken(t, jwt.MapClaims{"sub": 12, "nama": "Dr. X", "role": "kadep"})},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DecodeClaims(tc.tok); got != nil {
				t.Fatalf("DecodeClaims(%q) = %+v, ingin nil", tc.tok, got)
			}
		})
	}
}

func TestClaimsAsUser(t *testing.T) {
	claims := &Claims{UserID: "dosen1", Nama: "Bu Y", Role: RoleDosen}
	user := claims.AsUser()
	if user.UserID != "dosen1" || user.Nama != "Bu Y" || user.Role != RoleDosen {
		t.Fatalf("AsUser = %+v", user)
	}
}

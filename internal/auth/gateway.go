package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/departemen-if/kurikulum/internal/api"
	"github.com/departemen-if/kurikulum/internal/token"
)

// ErrInvalidCredentials dikembalikan saat server menolak kombinasi
// user_id dan password.
var ErrInvalidCredentials = errors.New("user_id atau password salah")

// Gateway menangani siklus hidup kredensial terhadap backend.
type Gateway struct {
	api    *api.Client
	tokens *token.Store
}

// NewGateway membuat gateway autentikasi.
func NewGateway(client *api.Client, tokens *token.Store) *Gateway {
	return &Gateway{api: client, tokens: tokens}
}

type loginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login menukar kredensial dengan bearer token dan menyimpannya.
func (g *Gateway) Login(ctx context.Context, userID, password string) error {
	var resp loginResponse
	err := g.api.Post(ctx, "/auth/login", loginRequest{UserID: userID, Password: password}, &resp)
	if err != nil {
		if api.IsUnauthorized(err) {
			return fmt.Errorf("%w", ErrInvalidCredentials)
		}
		return err
	}
	if resp.AccessToken == "" {
		return errors.New("auth: server tidak mengirim access_token")
	}
	return g.tokens.Set(resp.AccessToken)
}

// Logout mengirim invalidasi ke server seadanya lalu menghapus token lokal.
// Dari sudut pandang pemanggil, logout selalu berhasil.
func (g *Gateway) Logout(ctx context.Context) {
	if tok, err := g.tokens.Get(); err == nil && tok != "" {
		if err := g.api.Post(ctx, "/auth/logout", nil, nil); err != nil {
			log.Warn().Err(err).Msg("invalidasi sesi di server gagal; token lokal tetap dihapus")
		}
	}

	if err := g.tokens.Clear(); err != nil {
		log.Error().Err(err).Msg("gagal menghapus token lokal")
	}
}

// Me menanyakan identitas saat ini ke server; server adalah sumber kebenaran.
func (g *Gateway) Me(ctx context.Context) (*User, error) {
	var user User
	if err := g.api.Get(ctx, "/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CurrentToken membaca token tersimpan apa adanya.
func (g *Gateway) CurrentToken() string {
	tok, err := g.tokens.Get()
	if err != nil {
		return ""
	}
	return tok
}

// IsAuthenticated melaporkan apakah ada token tersimpan.
func (g *Gateway) IsAuthenticated() bool {
	return g.CurrentToken() != ""
}

// LocalClaims mendekode klaim dari token tersimpan tanpa kontak server.
func (g *Gateway) LocalClaims() *Claims {
	tok := g.CurrentToken()
	if tok == "" {
		return nil
	}
	return DecodeClaims(tok)
}

// ClearToken menghapus token tersimpan tanpa kontak server.
func (g *Gateway) ClearToken() {
	if err := g.tokens.Clear(); err != nil {
		log.Error().Err(err).Msg("gagal menghapus token lokal")
	}
}

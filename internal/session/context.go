// Package session memegang keadaan sesi yang dibagikan seluruh aplikasi.
// Semua mutasi lewat operasi terdefinisi; tidak ada akses langsung ke field.
package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/departemen-if/kurikulum/internal/auth"
)

// Context adalah sumber kebenaran tunggal untuk identitas pengguna saat ini.
// Ia hidup sepanjang proses dan aman dipakai lintas goroutine.
type Context struct {
	mu      sync.RWMutex
	gateway *auth.Gateway
	user    *auth.User
	loading bool
}

// New membuat konteks sesi kosong (belum ter-bootstrap).
func New(gateway *auth.Gateway) *Context {
	return &Context{gateway: gateway}
}

// Bootstrap menyelesaikan keadaan awal sesi saat aplikasi mulai.
// Tidak pernah mengembalikan galat; kegagalan berakhir di keadaan anonim.
func (c *Context) Bootstrap(ctx context.Context) {
	c.setLoading(true)
	defer c.setLoading(false)

	if c.gateway.CurrentToken() == "" {
		c.setUser(nil)
		return
	}

	c.RefreshUser(ctx)

	// Token ada tetapi refresh server dan klaim lokal sama-sama gagal:
	// token tidak terpakai, buang sekalian.
	if c.User() == nil {
		c.gateway.ClearToken()
	}
}

// Login menukar kredensial dengan sesi terautentikasi.
// Pada kegagalan, keadaan tidak berubah dan galat diteruskan ke pemanggil.
func (c *Context) Login(ctx context.Context, userID, password string) error {
	c.setLoading(true)
	defer c.setLoading(false)

	if err := c.gateway.Login(ctx, userID, password); err != nil {
		return err
	}

	c.RefreshUser(ctx)
	return nil
}

// Logout selalu berakhir di keadaan anonim, apa pun hasil panggilan server.
func (c *Context) Logout(ctx context.Context) {
	c.gateway.Logout(ctx)
	c.setUser(nil)
}

// RefreshUser menyegarkan identitas dari server, dengan fallback klaim lokal.
// Tidak pernah mengembalikan galat; pemanggil mengandalkannya untuk
// menstabilkan keadaan.
func (c *Context) RefreshUser(ctx context.Context) {
	if c.gateway.CurrentToken() == "" {
		c.setUser(nil)
		return
	}

	user, err := c.gateway.Me(ctx)
	if err == nil {
		c.setUser(user)
		return
	}

	if claims := c.gateway.LocalClaims(); claims != nil {
		// Mode degradasi: identitas dari payload token, tanpa jaminan
		// token masih berlaku di server.
		log.Debug().Err(err).Msg("refresh identitas gagal; memakai klaim lokal")
		c.setUser(claims.AsUser())
		return
	}

	c.setUser(nil)
}

// User mengembalikan identitas saat ini, atau nil bila anonim.
func (c *Context) User() *auth.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

// IsAuthenticated diturunkan dari keberadaan user.
func (c *Context) IsAuthenticated() bool {
	return c.User() != nil
}

// IsLoading bernilai true hanya selama bootstrap awal atau login eksplisit.
func (c *Context) IsLoading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

func (c *Context) setUser(user *auth.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = user
}

func (c *Context) setLoading(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = v
}

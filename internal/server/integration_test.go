package server_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/departemen-if/kurikulum/internal/api"
	"github.com/departemen-if/kurikulum/internal/auth"
	"github.com/departemen-if/kurikulum/internal/config"
	"github.com/departemen-if/kurikulum/internal/cpl"
	"github.com/departemen-if/kurikulum/internal/indikator"
	"github.com/departemen-if/kurikulum/internal/kurikulum"
	"github.com/departemen-if/kurikulum/internal/server"
	"github.com/departemen-if/kurikulum/internal/session"
	"github.com/departemen-if/kurikulum/internal/token"
)

// testEnv merangkai stub server dengan SDK lengkap, persis seperti
// yang dilakukan CLI, sehingga alur diuji ujung ke ujung.
type testEnv struct {
	srv       *httptest.Server
	tokens    *token.Store
	gateway   *auth.Gateway
	session   *session.Context
	kurikulum *kurikulum.Service
	cpl       *cpl.Service
	indikator *indikator.Service
}

func testServerConfig() *config.Server {
	return &config.Server{
		JWTSecret: "rahasia-uji",
		TokenTTL:  time.Hour,
		RateLimit: config.RateLimitConfig{RequestsPerSecond: 100, Burst: 200},
	}
}

func newTestEnv(t *testing.T, cfg *config.Server) *testEnv {
	t.Helper()

	store := server.NewStore()
	if err := store.SeedDefault(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	srv := httptest.NewServer(server.NewRouter(cfg, store))
	t.Cleanup(srv.Close)

	tokens, err := token.NewStore(filepath.Join(t.TempDir(), "access_token"))
	if err != nil {
		t.Fatalf("token store: %v", err)
	}
	client, err := api.New(api.Config{BaseURL: srv.URL, Tokens: tokens, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("api client: %v", err)
	}

	gateway := auth.NewGateway(client, tokens)
	return &testEnv{
		srv:       srv,
		tokens:    tokens,
		gateway:   gateway,
		session:   session.New(gateway),
		kurikulum: kurikulum.NewService(client),
		cpl:       cpl.NewService(client),
		indikator: indikator.NewService(client),
	}
}

func (e *testEnv) loginAs(t *testing.T, userID string) {
	t.Helper()
	if err := e.session.Login(context.Background(), userID, "secret"); err != nil {
		t.Fatalf("login %s: %v", userID, err)
	}
}

func TestLoginEndToEnd(t *testing.T) {
	env := newTestEnv(t, testServerConfig())
	ctx := context.Background()

	if err := env.session.Login(ctx, "kadep1", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	tok, err := env.tokens.Get()
	if err != nil || tok == "" {
		t.Fatalf("token tidak tersimpan: %q, %v", tok, err)
	}

	user, err := env.gateway.Me(ctx)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if user.UserID != "kadep1" || user.Nama != "Dr. X" || user.Role != auth.RoleKadep {
		t.Errorf("identitas tidak sesuai: %+v", user)
	}
	if !env.session.IsAuthenticated() {
		t.Error("sesi seharusnya terautentikasi")
	}
}

func TestLoginSalahTidakMengubahSesi(t *testing.T) {
	env := newTestEnv(t, testServerConfig())

	err := env.session.Login(context.Background(), "kadep1", "salah")
	if !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("ingin ErrInvalidCredentials, dapat %v", err)
	}
	if env.session.IsAuthenticated() {
		t.Error("sesi tidak boleh terautentikasi setelah login gagal")
	}
	if tok, _ := env.tokens.Get(); tok != "" {
		t.Errorf("token tidak boleh tersimpan, dapat %q", tok)
	}
}

func TestDeleteIndikatorLaluRefetch(t *testing.T) {
	env := newTestEnv(t, testServerConfig())
	env.loginAs(t, "kadep1")
	ctx := context.Background()

	before, err := env.cpl.Get(ctx, "K-2024", "CPL-01")
	if err != nil {
		t.Fatalf("get cpl: %v", err)
	}
	if len(before.Indikator) != 1 || before.Indikator[0].IDIndikator != "IND-01-01" {
		t.Fatalf("fixture tidak sesuai: %+v", before.Indikator)
	}

	if err := env.indikator.Delete(ctx, "K-2024", "CPL-01", "IND-01-01"); err != nil {
		t.Fatalf("delete indikator: %v", err)
	}

	after, err := env.cpl.Get(ctx, "K-2024", "CPL-01")
	if err != nil {
		t.Fatalf("refetch cpl: %v", err)
	}
	for _, ind := range after.Indikator {
		if ind.IDIndikator == "IND-01-01" {
			t.Error("indikator terhapus masih muncul pada detail CPL")
		}
	}

	_, err = env.indikator.Get(ctx, "K-2024", "CPL-01", "IND-01-01")
	if !api.IsNotFound(err) {
		t.Errorf("ingin not_found setelah hapus, dapat %v", err)
	}
}

func TestDosenDitolakMutasi(t *testing.T) {
	env := newTestEnv(t, testServerConfig())
	env.loginAs(t, "dosen1")

	_, err := env.kurikulum.Create(context.Background(), kurikulum.CreateRequest{
		NamaKurikulum:   "Kurikulum 2026",
		Revisi:          "R1",
		StatusKurikulum: kurikulum.StatusAktif,
	})
	if err == nil {
		t.Fatal("dosen seharusnya ditolak membuat kurikulum")
	}
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusForbidden {
		t.Errorf("ingin status 403, dapat %v", err)
	}

	// Operasi baca tetap terbuka untuk dosen.
	if _, err := env.kurikulum.List(context.Background()); err != nil {
		t.Errorf("dosen seharusnya boleh membaca: %v", err)
	}
}

func TestTanpaTokenDitolak(t *testing.T) {
	env := newTestEnv(t, testServerConfig())

	_, err := env.kurikulum.List(context.Background())
	if !api.IsUnauthorized(err) {
		t.Fatalf("ingin unauthorized tanpa token, dapat %v", err)
	}
}

func TestLogoutKembaliAnonim(t *testing.T) {
	env := newTestEnv(t, testServerConfig())
	env.loginAs(t, "kadep1")

	env.session.Logout(context.Background())

	if env.session.IsAuthenticated() {
		t.Error("sesi masih terautentikasi setelah logout")
	}
	if tok, _ := env.tokens.Get(); tok != "" {
		t.Errorf("token masih tersimpan: %q", tok)
	}
	if _, err := env.kurikulum.List(context.Background()); !api.IsUnauthorized(err) {
		t.Errorf("permintaan pasca logout seharusnya unauthorized, dapat %v", err)
	}
}

func TestCreateMatkulDenganRelasiTakDikenal(t *testing.T) {
	env := newTestEnv(t, testServerConfig())
	env.loginAs(t, "kadep1")

	body := strings.NewReader(`{"id_matkul":"IF9999","mata_kuliah":"Uji","sks":2,"semester":3,"cpl_list":[{"id_kurikulum":"K-2024","id_cpl":"CPL-99"}]}`)
	req, err := http.NewRequest(http.MethodPost, env.srv.URL+"/matkul/", body)
	if err != nil {
		t.Fatal(err)
	}
	tok, _ := env.tokens.Get()
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("ingin 422 untuk relasi tak dikenal, dapat %d", resp.StatusCode)
	}
}

func TestRateLimiterMembatasi(t *testing.T) {
	cfg := testServerConfig()
	cfg.RateLimit = config.RateLimitConfig{RequestsPerSecond: 1, Burst: 2}
	env := newTestEnv(t, cfg)

	var last *http.Response
	for i := 0; i < 5; i++ {
		resp, err := http.Post(env.srv.URL+"/auth/login", "application/json", strings.NewReader(`{}`))
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		last = resp
		if resp.StatusCode == http.StatusTooManyRequests {
			break
		}
	}
	if last.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("limiter tidak pernah menolak; status terakhir %d", last.StatusCode)
	}
	if last.Header.Get("Retry-After") == "" {
		t.Error("respons 429 tanpa header Retry-After")
	}
}

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubTokens struct {
	token string
}

func (s *stubTokens) Get() (string, error) { return s.token, nil }

func TestClientAttachesBearer(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client, err := New(Config{BaseURL: srv.URL, Tokens: &stubTokens{token: "abc.def.ghi"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var out struct {
		OK bool `json:"ok"`
	}
	if err := client.Get(context.Background(), "/kurikulum/", &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotAuth != "Bearer abc.def.ghi" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if !out.OK {
		t.Fatal("body tidak terdekode")
	}
}

func TestClientOmitsHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hasAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := New(Config{BaseURL: srv.URL, Tokens: &stubTokens{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := client.Get(context.Background(), "/kurikulum/", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hasAuth {
		t.Fatalf("header Authorization ikut terkirim: %q", gotAuth)
	}
}

func TestErrorTaxonomy(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		kind   Kind
		detail string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"detail":"token kedaluwarsa"}`, KindUnauthorized, "token kedaluwarsa"},
		{"not found", http.StatusNotFound, `{"detail":"kurikulum tidak ditemukan"}`, KindNotFound, "kurikulum tidak ditemukan"},
		{"validation", http.StatusUnprocessableEntity, `{"detail":"id_cpl sudah dipakai"}`, KindValidation, "id_cpl sudah dipakai"},
		{"server fault", http.StatusInternalServerError, `oops`, KindServerFault, "oops"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client, err := New(Config{BaseURL: srv.URL, Tokens: &stubTokens{}})
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			err = client.Get(context.Background(), "/x", nil)
			apiErr, ok := err.(*Error)
			if !ok {
				t.Fatalf("galat bertipe %T, ingin *Error", err)
			}
			if apiErr.Kind != tc.kind {
				t.Fatalf("Kind = %s, ingin %s", apiErr.Kind, tc.kind)
			}
			if apiErr.Status != tc.status {
				t.Fatalf("Status = %d, ingin %d", apiErr.Status, tc.status)
			}
			if apiErr.Detail != tc.detail {
				t.Fatalf("Detail = %q, ingin %q", apiErr.Detail, tc.detail)
			}
		})
	}
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // koneksi pasti gagal

	client, err := New(Config{BaseURL: srv.URL, Tokens: &stubTokens{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = client.Get(context.Background(), "/x", nil)
	if !IsNetwork(err) {
		t.Fatalf("galat = %v, ingin KindNetwork", err)
	}
}

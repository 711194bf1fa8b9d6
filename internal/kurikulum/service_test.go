package kurikulum

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/departemen-if/kurikulum/internal/api"
)

type stubTokens struct{}

func (stubTokens) Get() (string, error) { return "abc.def.ghi", nil }

func newService(t *testing.T, handler http.Handler) (*Service, *atomic.Int64) {
	t.Helper()

	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := api.New(api.Config{BaseURL: srv.URL, Tokens: stubTokens{}})
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}
	return NewService(client), &hits
}

func TestCreateRejectsBadStatusLocally(t *testing.T) {
	svc, hits := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	bad := []CreateRequest{
		{NamaKurikulum: "", Revisi: "R1", StatusKurikulum: StatusAktif},
		{NamaKurikulum: "Kurikulum 2026", Revisi: "", StatusKurikulum: StatusAktif},
		{NamaKurikulum: "Kurikulum 2026", Revisi: "R1", StatusKurikulum: "aktif"},
		{NamaKurikulum: "Kurikulum 2026", Revisi: "R1", StatusKurikulum: "Arsip"},
	}
	for _, req := range bad {
		_, err := svc.Create(context.Background(), req)
		if !api.IsLocalValidation(err) {
			t.Errorf("Create(%+v): galat = %v, ingin KindLocalValidation", req, err)
		}
	}
	if n := hits.Load(); n != 0 {
		t.Fatalf("%d permintaan terkirim padahal validasi lokal gagal", n)
	}
}

func TestUpdateSendsOnlyChangedFields(t *testing.T) {
	svc, _ := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/kurikulum/K-2024" {
			t.Errorf("permintaan tak terduga: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if _, ada := body["nama_kurikulum"]; ada {
			t.Error("nama_kurikulum ikut terkirim padahal tidak diubah")
		}
		if body["status_kurikulum"] != StatusNonaktif {
			t.Errorf("status_kurikulum = %v", body["status_kurikulum"])
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"kurikulum berhasil diubah","kurikulum":{"id_kurikulum":"K-2024","nama_kurikulum":"Kurikulum 2024","revisi":"R1","status_kurikulum":"Nonaktif"}}`))
	}))

	status := StatusNonaktif
	resp, err := svc.Update(context.Background(), "K-2024", UpdateRequest{StatusKurikulum: &status})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if resp.Kurikulum.StatusKurikulum != StatusNonaktif {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestGetDetailDecodesNestedCPL(t *testing.T) {
	svc, _ := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/kurikulum/K-2024" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"kurikulum": {
				"id_kurikulum":"K-2024","nama_kurikulum":"Kurikulum 2024","revisi":"R1","status_kurikulum":"Aktif",
				"cpl":[{"id_cpl":"CPL-01","deskripsi":"Mampu merancang"},{"id_cpl":"CPL-02","deskripsi":"Mampu menganalisis"}]
			}
		}`))
	}))

	resp, err := svc.Get(context.Background(), "K-2024")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	k := resp.Kurikulum
	if k.IDKurikulum != "K-2024" || k.StatusKurikulum != StatusAktif {
		t.Fatalf("kurikulum = %+v", k.Kurikulum)
	}
	if len(k.CPL) != 2 || k.CPL[1].IDCPL != "CPL-02" {
		t.Fatalf("cpl = %+v", k.CPL)
	}
}

func TestGetRequiresID(t *testing.T) {
	svc, hits := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	_, err := svc.Get(context.Background(), "")
	if !api.IsLocalValidation(err) {
		t.Fatalf("galat = %v, ingin KindLocalValidation", err)
	}
	if hits.Load() != 0 {
		t.Fatal("permintaan terkirim padahal id kosong")
	}
}

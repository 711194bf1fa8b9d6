package cpl

import (
	"context"
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

func TestCreateRejectsBadCodeLocally(t *testing.T) {
	svc, hits := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	bad := []string{"", "CPL01", "cpl-01", "CPL-", "CPL-01-02"}
	for _, kode := range bad {
		_, err := svc.Create(context.Background(), "K-2024", CreateRequest{IDCPL: kode, Deskripsi: "x"})
		if !api.IsLocalValidation(err) {
			t.Errorf("Create(%q): galat = %v, ingin KindLocalValidation", kode, err)
		}
	}
	if n := hits.Load(); n != 0 {
		t.Fatalf("%d permintaan terkirim padahal validasi lokal gagal", n)
	}
}

func TestCreateSendsValidPayload(t *testing.T) {
	svc, hits := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/cpl/K-2024" {
			t.Errorf("permintaan tak terduga: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"CPL berhasil ditambahkan","cpl":{"id_cpl":"CPL-01","deskripsi":"Mampu merancang","id_kurikulum":"K-2024"}}`))
	}))

	resp, err := svc.Create(context.Background(), "K-2024", CreateRequest{IDCPL: "CPL-01", Deskripsi: "Mampu merancang"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resp.CPL.IDCPL != "CPL-01" || resp.CPL.IDKurikulum != "K-2024" {
		t.Fatalf("resp = %+v", resp)
	}
	if hits.Load() != 1 {
		t.Fatalf("jumlah permintaan = %d", hits.Load())
	}
}

func TestGetCompositeDetail(t *testing.T) {
	svc, _ := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cpl/K-2024/CPL-01" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"cpl": {"id_cpl":"CPL-01","deskripsi":"Mampu merancang"},
			"kurikulum": {"id_kurikulum":"K-2024","nama_kurikulum":"Kurikulum 2024","revisi":"R1"},
			"indikator": [{"id_indikator":"IND-01-01","deskripsi":"Menjelaskan"}],
			"mata_kuliah": [{"id_matkul":"IF1101","mata_kuliah":"Dasar Pemrograman","sks":3,"semester":1}]
		}`))
	}))

	detail, err := svc.Get(context.Background(), "K-2024", "CPL-01")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if detail.Kurikulum == nil || detail.Kurikulum.NamaKurikulum != "Kurikulum 2024" {
		t.Fatalf("kurikulum = %+v", detail.Kurikulum)
	}
	if len(detail.Indikator) != 1 || detail.Indikator[0].IDIndikator != "IND-01-01" {
		t.Fatalf("indikator = %+v", detail.Indikator)
	}
	if len(detail.MataKuliah) != 1 || detail.MataKuliah[0].SKS != 3 {
		t.Fatalf("mata_kuliah = %+v", detail.MataKuliah)
	}
}

func TestErrorBodyPropagatesUnmodified(t *testing.T) {
	svc, _ := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"detail":"id_cpl sudah dipakai pada kurikulum ini"}`))
	}))

	_, err := svc.Create(context.Background(), "K-2024", CreateRequest{IDCPL: "CPL-01", Deskripsi: "x"})
	apiErr, ok := err.(*api.Error)
	if !ok {
		t.Fatalf("galat bertipe %T", err)
	}
	if apiErr.Detail != "id_cpl sudah dipakai pada kurikulum ini" {
		t.Fatalf("Detail = %q, pesan server harus diteruskan apa adanya", apiErr.Detail)
	}
}

package matkul

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

func TestCreateRejectsInvalidFieldsLocally(t *testing.T) {
	svc, hits := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	cases := []struct {
		name string
		req  CreateRequest
	}{
		{"id kosong", CreateRequest{MataKuliah: "Basis Data", SKS: 3, Semester: 3}},
		{"judul kosong", CreateRequest{IDMatkul: "IF2201", SKS: 3, Semester: 3}},
		{"sks nol", CreateRequest{IDMatkul: "IF2201", MataKuliah: "Basis Data", SKS: 0, Semester: 3}},
		{"semester negatif", CreateRequest{IDMatkul: "IF2201", MataKuliah: "Basis Data", SKS: 3, Semester: -1}},
		{"kode cpl rusak", CreateRequest{
			IDMatkul: "IF2201", MataKuliah: "Basis Data", SKS: 3, Semester: 3,
			CPLList: []CPLInput{{IDKurikulum: "K-2024", IDCPL: "cpl01"}},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.req)
			if !api.IsLocalValidation(err) {
				t.Fatalf("galat = %v, ingin KindLocalValidation", err)
			}
		})
	}
	if n := hits.Load(); n != 0 {
		t.Fatalf("%d permintaan terkirim padahal validasi lokal gagal", n)
	}
}

func TestCreateSendsCPLList(t *testing.T) {
	var got CreateRequest
	svc, _ := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"ok","matkul":{"id_matkul":"IF2201","mata_kuliah":"Basis Data","sks":3,"semester":3},"relasi":[{"id_kurikulum":"K-2024","id_cpl":"CPL-01","id_matkul":"IF2201"}]}`))
	}))

	resp, err := svc.Create(context.Background(), CreateRequest{
		IDMatkul:   "IF2201",
		MataKuliah: "Basis Data",
		SKS:        3,
		Semester:   3,
		CPLList:    []CPLInput{{IDKurikulum: "K-2024", IDCPL: "CPL-01"}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(got.CPLList) != 1 || got.CPLList[0].IDCPL != "CPL-01" {
		t.Fatalf("cpl_list terkirim = %+v", got.CPLList)
	}
	if len(resp.Relasi) != 1 || resp.Relasi[0].IDMatkul != "IF2201" {
		t.Fatalf("relasi = %+v", resp.Relasi)
	}
}

func TestUpdatePartialValidation(t *testing.T) {
	svc, hits := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	sksNol := 0
	_, err := svc.Update(context.Background(), "IF2201", UpdateRequest{SKS: &sksNol})
	if !api.IsLocalValidation(err) {
		t.Fatalf("galat = %v, ingin KindLocalValidation", err)
	}
	if hits.Load() != 0 {
		t.Fatal("permintaan terkirim padahal sks tidak valid")
	}
}

func TestListAndDelete(t *testing.T) {
	svc, _ := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/matkul/":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"message":"ok","data":[{"id_matkul":"IF2201","mata_kuliah":"Basis Data","sks":3,"semester":3}]}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/matkul/IF2201":
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("permintaan tak terduga: %s %s", r.Method, r.URL.Path)
		}
	}))

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list.Data) != 1 || list.Data[0].IDMatkul != "IF2201" {
		t.Fatalf("list = %+v", list)
	}

	if err := svc.Delete(context.Background(), "IF2201"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

package matkul

import (
	"context"
	"net/url"

	"github.com/departemen-if/kurikulum/internal/api"
	"github.com/departemen-if/kurikulum/internal/util"
)

// Service adalah klien CRUD bertipe untuk mata kuliah.
type Service struct {
	api *api.Client
}

// NewService membuat layanan mata kuliah.
func NewService(client *api.Client) *Service {
	return &Service{api: client}
}

// List mengambil seluruh mata kuliah.
func (s *Service) List(ctx context.Context) (*ListResponse, error) {
	var resp ListResponse
	if err := s.api.Get(ctx, "/matkul/", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get mengambil detail satu mata kuliah beserta CPL dan indikatornya.
func (s *Service) Get(ctx context.Context, id string) (*DetailResponse, error) {
	if err := util.RequireString(id, "id_matkul"); err != nil {
		return nil, api.LocalValidation(err)
	}
	var resp DetailResponse
	if err := s.api.Get(ctx, "/matkul/"+url.PathEscape(id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Create menambahkan mata kuliah; field diperiksa lokal sebelum jaringan.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*MutationResponse, error) {
	if err := validateCreate(req); err != nil {
		return nil, api.LocalValidation(err)
	}
	var resp MutationResponse
	if err := s.api.Post(ctx, "/matkul/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Update mengubah sebagian field mata kuliah.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*MutationResponse, error) {
	if err := util.RequireString(id, "id_matkul"); err != nil {
		return nil, api.LocalValidation(err)
	}
	if req.SKS != nil {
		if err := util.RequirePositif(*req.SKS, "sks"); err != nil {
			return nil, api.LocalValidation(err)
		}
	}
	if req.Semester != nil {
		if err := util.RequirePositif(*req.Semester, "semester"); err != nil {
			return nil, api.LocalValidation(err)
		}
	}
	var resp MutationResponse
	if err := s.api.Patch(ctx, "/matkul/"+url.PathEscape(id), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete menghapus satu mata kuliah.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := util.RequireString(id, "id_matkul"); err != nil {
		return api.LocalValidation(err)
	}
	return s.api.Delete(ctx, "/matkul/"+url.PathEscape(id), nil)
}

func validateCreate(req CreateRequest) error {
	if err := util.RequireString(req.IDMatkul, "id_matkul"); err != nil {
		return err
	}
	if err := util.RequireString(req.MataKuliah, "mata_kuliah"); err != nil {
		return err
	}
	if err := util.RequirePositif(req.SKS, "sks"); err != nil {
		return err
	}
	if err := util.RequirePositif(req.Semester, "semester"); err != nil {
		return err
	}
	for _, ref := range req.CPLList {
		if err := util.RequireString(ref.IDKurikulum, "cpl_list.id_kurikulum"); err != nil {
			return err
		}
		if err := util.ValidateKodeCPL(ref.IDCPL); err != nil {
			return err
		}
	}
	return nil
}

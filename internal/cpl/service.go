package cpl

import (
	"context"
	"net/url"

	"github.com/departemen-if/kurikulum/internal/api"
	"github.com/departemen-if/kurikulum/internal/util"
)

// Service adalah klien CRUD bertipe untuk capaian pembelajaran lulusan.
type Service struct {
	api *api.Client
}

// NewService membuat layanan CPL.
func NewService(client *api.Client) *Service {
	return &Service{api: client}
}

// ListActive mengambil seluruh CPL milik kurikulum berstatus aktif.
func (s *Service) ListActive(ctx context.Context) (*ActiveResponse, error) {
	var resp ActiveResponse
	if err := s.api.Get(ctx, "/cpl/kurikulum-aktif", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get mengambil bacaan komposit satu CPL: rekamannya, kurikulum pemilik,
// daftar indikator penuh, dan mata kuliah terkait, dalam satu panggilan.
func (s *Service) Get(ctx context.Context, idKurikulum, idCPL string) (*DetailResponse, error) {
	if err := requireKeys(idKurikulum, idCPL); err != nil {
		return nil, err
	}
	var resp DetailResponse
	if err := s.api.Get(ctx, cplPath(idKurikulum, idCPL), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Create menambahkan CPL baru; kode diperiksa lokal sebelum jaringan.
func (s *Service) Create(ctx context.Context, idKurikulum string, req CreateRequest) (*MutationResponse, error) {
	if err := util.RequireString(idKurikulum, "id_kurikulum"); err != nil {
		return nil, api.LocalValidation(err)
	}
	if err := util.ValidateKodeCPL(req.IDCPL); err != nil {
		return nil, api.LocalValidation(err)
	}
	if err := util.RequireString(req.Deskripsi, "deskripsi"); err != nil {
		return nil, api.LocalValidation(err)
	}

	var resp MutationResponse
	if err := s.api.Post(ctx, "/cpl/"+url.PathEscape(idKurikulum), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Update mengubah deskripsi CPL.
func (s *Service) Update(ctx context.Context, idKurikulum, idCPL string, req UpdateRequest) (*MutationResponse, error) {
	if err := requireKeys(idKurikulum, idCPL); err != nil {
		return nil, err
	}
	var resp MutationResponse
	if err := s.api.Patch(ctx, cplPath(idKurikulum, idCPL), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete menghapus satu CPL beserta indikatornya.
func (s *Service) Delete(ctx context.Context, idKurikulum, idCPL string) error {
	if err := requireKeys(idKurikulum, idCPL); err != nil {
		return err
	}
	return s.api.Delete(ctx, cplPath(idKurikulum, idCPL), nil)
}

func cplPath(idKurikulum, idCPL string) string {
	return "/cpl/" + url.PathEscape(idKurikulum) + "/" + url.PathEscape(idCPL)
}

func requireKeys(idKurikulum, idCPL string) error {
	if err := util.RequireString(idKurikulum, "id_kurikulum"); err != nil {
		return api.LocalValidation(err)
	}
	if err := util.RequireString(idCPL, "id_cpl"); err != nil {
		return api.LocalValidation(err)
	}
	return nil
}

// Package indikator memanggil endpoint indikator yang bersarang di bawah CPL.
package indikator

import (
	"context"
	"net/url"

	"github.com/departemen-if/kurikulum/internal/api"
	"github.com/departemen-if/kurikulum/internal/util"
)

// Indikator adalah sub-pernyataan terukur milik satu CPL.
type Indikator struct {
	IDIndikator string `json:"id_indikator"`
	Deskripsi   string `json:"deskripsi"`
}

// CreateRequest adalah payload POST indikator baru.
type CreateRequest struct {
	IDIndikator string `json:"id_indikator"`
	Deskripsi   string `json:"deskripsi"`
}

// UpdateRequest adalah payload parsial PATCH.
type UpdateRequest struct {
	Deskripsi *string `json:"deskripsi,omitempty"`
}

// MutationResponse adalah balasan operasi tulis.
type MutationResponse struct {
	Message   string    `json:"message"`
	Indikator Indikator `json:"indikator"`
}

// Service adalah klien CRUD bertipe untuk indikator.
type Service struct {
	api *api.Client
}

// NewService membuat layanan indikator.
func NewService(client *api.Client) *Service {
	return &Service{api: client}
}

// Create menambahkan indikator; kode diperiksa lokal sebelum jaringan.
func (s *Service) Create(ctx context.Context, idKurikulum, idCPL string, req CreateRequest) (*MutationResponse, error) {
	if err := requireOwner(idKurikulum, idCPL); err != nil {
		return nil, err
	}
	if err := util.ValidateKodeIndikator(req.IDIndikator); err != nil {
		return nil, api.LocalValidation(err)
	}
	if err := util.RequireString(req.Deskripsi, "deskripsi"); err != nil {
		return nil, api.LocalValidation(err)
	}

	var resp MutationResponse
	if err := s.api.Post(ctx, basePath(idKurikulum, idCPL), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get mengambil satu indikator.
func (s *Service) Get(ctx context.Context, idKurikulum, idCPL, idIndikator string) (*Indikator, error) {
	if err := requireAll(idKurikulum, idCPL, idIndikator); err != nil {
		return nil, err
	}
	var resp Indikator
	if err := s.api.Get(ctx, itemPath(idKurikulum, idCPL, idIndikator), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Update mengubah deskripsi indikator.
func (s *Service) Update(ctx context.Context, idKurikulum, idCPL, idIndikator string, req UpdateRequest) (*MutationResponse, error) {
	if err := requireAll(idKurikulum, idCPL, idIndikator); err != nil {
		return nil, err
	}
	var resp MutationResponse
	if err := s.api.Patch(ctx, itemPath(idKurikulum, idCPL, idIndikator), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete menghapus satu indikator.
func (s *Service) Delete(ctx context.Context, idKurikulum, idCPL, idIndikator string) error {
	if err := requireAll(idKurikulum, idCPL, idIndikator); err != nil {
		return err
	}
	return s.api.Delete(ctx, itemPath(idKurikulum, idCPL, idIndikator), nil)
}

func basePath(idKurikulum, idCPL string) string {
	return "/cpl/" + url.PathEscape(idKurikulum) + "/" + url.PathEscape(idCPL) + "/indikator"
}

func itemPath(idKurikulum, idCPL, idIndikator string) string {
	return basePath(idKurikulum, idCPL) + "/" + url.PathEscape(idIndikator)
}

func requireOwner(idKurikulum, idCPL string) error {
	if err := util.RequireString(idKurikulum, "id_kurikulum"); err != nil {
		return api.LocalValidation(err)
	}
	if err := util.RequireString(idCPL, "id_cpl"); err != nil {
		return api.LocalValidation(err)
	}
	return nil
}

func requireAll(idKurikulum, idCPL, idIndikator string) error {
	if err := requireOwner(idKurikulum, idCPL); err != nil {
		return err
	}
	if err := util.RequireString(idIndikator, "id_indikator"); err != nil {
		return api.LocalValidation(err)
	}
	return nil
}

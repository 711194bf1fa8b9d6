package kurikulum

import (
	"context"
	"errors"
	"net/url"

	"github.com/departemen-if/kurikulum/internal/api"
	"github.com/departemen-if/kurikulum/internal/util"
)

// Service adalah klien CRUD bertipe untuk sumber daya kurikulum.
type Service struct {
	api *api.Client
}

// NewService membuat layanan kurikulum.
func NewService(client *api.Client) *Service {
	return &Service{api: client}
}

// List mengambil seluruh kurikulum.
func (s *Service) List(ctx context.Context) (*ListResponse, error) {
	var resp ListResponse
	if err := s.api.Get(ctx, "/kurikulum/", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get mengambil detail satu kurikulum beserta ringkasan CPL-nya.
func (s *Service) Get(ctx context.Context, id string) (*DetailResponse, error) {
	if err := util.RequireString(id, "id_kurikulum"); err != nil {
		return nil, api.LocalValidation(err)
	}
	var resp DetailResponse
	if err := s.api.Get(ctx, "/kurikulum/"+url.PathEscape(id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Create menambahkan kurikulum baru. Format diperiksa lokal sebelum jaringan.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*MutationResponse, error) {
	if err := validateCreate(req); err != nil {
		return nil, api.LocalValidation(err)
	}
	var resp MutationResponse
	if err := s.api.Post(ctx, "/kurikulum/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Update mengubah sebagian field kurikulum.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*MutationResponse, error) {
	if err := util.RequireString(id, "id_kurikulum"); err != nil {
		return nil, api.LocalValidation(err)
	}
	if req.StatusKurikulum != nil {
		if err := validateStatus(*req.StatusKurikulum); err != nil {
			return nil, api.LocalValidation(err)
		}
	}
	var resp MutationResponse
	if err := s.api.Patch(ctx, "/kurikulum/"+url.PathEscape(id), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func validateCreate(req CreateRequest) error {
	if err := util.RequireString(req.NamaKurikulum, "nama_kurikulum"); err != nil {
		return err
	}
	if err := util.RequireString(req.Revisi, "revisi"); err != nil {
		return err
	}
	return validateStatus(req.StatusKurikulum)
}

func validateStatus(status string) error {
	if status != StatusAktif && status != StatusNonaktif {
		return errors.New("status_kurikulum harus Aktif atau Nonaktif")
	}
	return nil
}

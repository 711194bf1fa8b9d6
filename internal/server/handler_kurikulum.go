package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/departemen-if/kurikulum/internal/kurikulum"
	"github.com/departemen-if/kurikulum/internal/util"
)

func asKurikulumDTO(k Kurikulum) kurikulum.Kurikulum {
	return kurikulum.Kurikulum{
		IDKurikulum:     k.ID,
		NamaKurikulum:   k.Nama,
		Revisi:          k.Revisi,
		StatusKurikulum: k.Status,
		CreatedAt:       k.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       k.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *Handler) handleListKurikulum(w http.ResponseWriter, r *http.Request) {
	records := h.store.ListKurikulum()
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })

	data := make([]kurikulum.Kurikulum, 0, len(records))
	for _, k := range records {
		data = append(data, asKurikulumDTO(k))
	}
	writeJSON(w, http.StatusOK, kurikulum.ListResponse{Total: len(data), Data: data})
}

func (h *Handler) handleGetKurikulum(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	record, owned, err := h.store.GetKurikulum(id)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "kurikulum tidak ditemukan")
		return
	}

	cplList := make([]kurikulum.CPLRingkas, 0, len(owned))
	for _, c := range owned {
		cplList = append(cplList, kurikulum.CPLRingkas{IDCPL: c.IDCPL, Deskripsi: c.Deskripsi})
	}

	writeJSON(w, http.StatusOK, kurikulum.DetailResponse{
		Kurikulum: kurikulum.Detail{Kurikulum: asKurikulumDTO(record), CPL: cplList},
	})
}

func (h *Handler) handleCreateKurikulum(w http.ResponseWriter, r *http.Request) {
	var req kurikulum.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "body tidak dapat dibaca")
		return
	}
	if err := util.RequireString(req.NamaKurikulum, "nama_kurikulum"); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := util.RequireString(req.Revisi, "revisi"); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if req.StatusKurikulum != kurikulum.StatusAktif && req.StatusKurikulum != kurikulum.StatusNonaktif {
		writeDetail(w, http.StatusUnprocessableEntity, "status_kurikulum harus Aktif atau Nonaktif")
		return
	}

	record := h.store.CreateKurikulum(req.NamaKurikulum, req.Revisi, req.StatusKurikulum)
	writeJSON(w, http.StatusCreated, kurikulum.MutationResponse{
		Message:   "kurikulum berhasil ditambahkan",
		Kurikulum: asKurikulumDTO(record),
	})
}

func (h *Handler) handleUpdateKurikulum(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req kurikulum.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "body tidak dapat dibaca")
		return
	}
	if req.StatusKurikulum != nil &&
		*req.StatusKurikulum != kurikulum.StatusAktif && *req.StatusKurikulum != kurikulum.StatusNonaktif {
		writeDetail(w, http.StatusUnprocessableEntity, "status_kurikulum harus Aktif atau Nonaktif")
		return
	}

	record, err := h.store.UpdateKurikulum(id, req.NamaKurikulum, req.Revisi, req.StatusKurikulum)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeDetail(w, http.StatusNotFound, "kurikulum tidak ditemukan")
			return
		}
		writeDetail(w, http.StatusInternalServerError, "pembaruan gagal")
		return
	}

	writeJSON(w, http.StatusOK, kurikulum.MutationResponse{
		Message:   "kurikulum berhasil diperbarui",
		Kurikulum: asKurikulumDTO(record),
	})
}

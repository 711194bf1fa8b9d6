package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/departemen-if/kurikulum/internal/cpl"
	"github.com/departemen-if/kurikulum/internal/indikator"
	"github.com/departemen-if/kurikulum/internal/util"
)

func (h *Handler) handleListCPLAktif(w http.ResponseWriter, r *http.Request) {
	rows := h.store.ListCPLAktif()

	data := make([]cpl.ActiveItem, 0, len(rows))
	for _, row := range rows {
		data = append(data, cpl.ActiveItem{
			IDCPL:     row.CPL.IDCPL,
			Deskripsi: row.CPL.Deskripsi,
			Kurikulum: &cpl.KurikulumRingkas{
				IDKurikulum:     row.Kurikulum.ID,
				NamaKurikulum:   row.Kurikulum.Nama,
				Revisi:          row.Kurikulum.Revisi,
				StatusKurikulum: row.Kurikulum.Status,
			},
		})
	}
	writeJSON(w, http.StatusOK, cpl.ActiveResponse{Total: len(data), Data: data})
}

func (h *Handler) handleGetCPL(w http.ResponseWriter, r *http.Request) {
	idKurikulum := chi.URLParam(r, "idKurikulum")
	idCPL := chi.URLParam(r, "idCPL")

	record, kur, inds, matkuls, err := h.store.GetCPL(idKurikulum, idCPL)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "CPL tidak ditemukan")
		return
	}

	resp := cpl.DetailResponse{
		CPL: cpl.CPL{IDCPL: record.IDCPL, Deskripsi: record.Deskripsi},
		Kurikulum: &cpl.KurikulumRingkas{
			IDKurikulum:   kur.ID,
			NamaKurikulum: kur.Nama,
			Revisi:        kur.Revisi,
		},
		Indikator:  make([]cpl.Indikator, 0, len(inds)),
		MataKuliah: make([]cpl.MataKuliahRingkas, 0, len(matkuls)),
	}
	for _, ind := range inds {
		resp.Indikator = append(resp.Indikator, cpl.Indikator{IDIndikator: ind.IDIndikator, Deskripsi: ind.Deskripsi})
	}
	for _, m := range matkuls {
		resp.MataKuliah = append(resp.MataKuliah, cpl.MataKuliahRingkas{
			IDMatkul: m.IDMatkul, MataKuliah: m.Nama, SKS: m.SKS, Semester: m.Semester,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleCreateCPL(w http.ResponseWriter, r *http.Request) {
	idKurikulum := chi.URLParam(r, "idKurikulum")

	var req cpl.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "body tidak dapat dibaca")
		return
	}
	if err := util.ValidateKodeCPL(req.IDCPL); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := util.RequireString(req.Deskripsi, "deskripsi"); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	record, err := h.store.CreateCPL(idKurikulum, req.IDCPL, req.Deskripsi)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			writeDetail(w, http.StatusNotFound, "kurikulum tidak ditemukan")
		case errors.Is(err, ErrDuplicate):
			writeDetail(w, http.StatusConflict, "id_cpl sudah dipakai pada kurikulum ini")
		default:
			writeDetail(w, http.StatusInternalServerError, "penambahan gagal")
		}
		return
	}

	writeJSON(w, http.StatusCreated, cpl.MutationResponse{
		Message: "CPL berhasil ditambahkan",
		CPL:     cpl.CPL{IDCPL: record.IDCPL, Deskripsi: record.Deskripsi, IDKurikulum: record.IDKurikulum},
	})
}

func (h *Handler) handleUpdateCPL(w http.ResponseWriter, r *http.Request) {
	idKurikulum := chi.URLParam(r, "idKurikulum")
	idCPL := chi.URLParam(r, "idCPL")

	var req cpl.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "body tidak dapat dibaca")
		return
	}

	record, err := h.store.UpdateCPL(idKurikulum, idCPL, req.Deskripsi)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "CPL tidak ditemukan")
		return
	}

	writeJSON(w, http.StatusOK, cpl.MutationResponse{
		Message: "CPL berhasil diperbarui",
		CPL:     cpl.CPL{IDCPL: record.IDCPL, Deskripsi: record.Deskripsi, IDKurikulum: record.IDKurikulum},
	})
}

func (h *Handler) handleDeleteCPL(w http.ResponseWriter, r *http.Request) {
	idKurikulum := chi.URLParam(r, "idKurikulum")
	idCPL := chi.URLParam(r, "idCPL")

	if err := h.store.DeleteCPL(idKurikulum, idCPL); err != nil {
		writeDetail(w, http.StatusNotFound, "CPL tidak ditemukan")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "CPL berhasil dihapus"})
}

func (h *Handler) handleCreateIndikator(w http.ResponseWriter, r *http.Request) {
	idKurikulum := chi.URLParam(r, "idKurikulum")
	idCPL := chi.URLParam(r, "idCPL")

	var req indikator.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "body tidak dapat dibaca")
		return
	}
	if err := util.ValidateKodeIndikator(req.IDIndikator); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := util.RequireString(req.Deskripsi, "deskripsi"); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	record, err := h.store.CreateIndikator(idKurikulum, idCPL, req.IDIndikator, req.Deskripsi)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			writeDetail(w, http.StatusNotFound, "CPL tidak ditemukan")
		case errors.Is(err, ErrDuplicate):
			writeDetail(w, http.StatusConflict, "id_indikator sudah dipakai pada CPL ini")
		default:
			writeDetail(w, http.StatusInternalServerError, "penambahan gagal")
		}
		return
	}

	writeJSON(w, http.StatusCreated, indikator.MutationResponse{
		Message:   "indikator berhasil ditambahkan",
		Indikator: indikator.Indikator{IDIndikator: record.IDIndikator, Deskripsi: record.Deskripsi},
	})
}

func (h *Handler) handleGetIndikator(w http.ResponseWriter, r *http.Request) {
	record, err := h.store.GetIndikator(
		chi.URLParam(r, "idKurikulum"), chi.URLParam(r, "idCPL"), chi.URLParam(r, "idIndikator"))
	if err != nil {
		writeDetail(w, http.StatusNotFound, "indikator tidak ditemukan")
		return
	}
	writeJSON(w, http.StatusOK, indikator.Indikator{IDIndikator: record.IDIndikator, Deskripsi: record.Deskripsi})
}

func (h *Handler) handleUpdateIndikator(w http.ResponseWriter, r *http.Request) {
	var req indikator.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "body tidak dapat dibaca")
		return
	}

	record, err := h.store.UpdateIndikator(
		chi.URLParam(r, "idKurikulum"), chi.URLParam(r, "idCPL"), chi.URLParam(r, "idIndikator"), req.Deskripsi)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "indikator tidak ditemukan")
		return
	}

	writeJSON(w, http.StatusOK, indikator.MutationResponse{
		Message:   "indikator berhasil diperbarui",
		Indikator: indikator.Indikator{IDIndikator: record.IDIndikator, Deskripsi: record.Deskripsi},
	})
}

func (h *Handler) handleDeleteIndikator(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteIndikator(
		chi.URLParam(r, "idKurikulum"), chi.URLParam(r, "idCPL"), chi.URLParam(r, "idIndikator"))
	if err != nil {
		writeDetail(w, http.StatusNotFound, "indikator tidak ditemukan")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "indikator berhasil dihapus"})
}

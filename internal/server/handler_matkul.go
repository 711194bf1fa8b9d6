package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/departemen-if/kurikulum/internal/matkul"
	"github.com/departemen-if/kurikulum/internal/util"
)

func asMatkulDTO(m Matkul, refs []CPL) matkul.MataKuliah {
	dto := matkul.MataKuliah{
		IDMatkul:   m.IDMatkul,
		MataKuliah: m.Nama,
		SKS:        m.SKS,
		Semester:   m.Semester,
		CreatedAt:  m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  m.UpdatedAt.Format(time.RFC3339),
	}
	for _, ref := range refs {
		dto.CPL = append(dto.CPL, matkul.CPLRef{
			IDKurikulum: ref.IDKurikulum, IDCPL: ref.IDCPL, Deskripsi: ref.Deskripsi,
		})
	}
	return dto
}

func asRelasiDTO(rels []Relasi) []matkul.Relasi {
	out := make([]matkul.Relasi, 0, len(rels))
	for _, rel := range rels {
		out = append(out, matkul.Relasi{IDKurikulum: rel.IDKurikulum, IDCPL: rel.IDCPL, IDMatkul: rel.IDMatkul})
	}
	return out
}

func (h *Handler) handleListMatkul(w http.ResponseWriter, r *http.Request) {
	rows := h.store.ListMatkul()
	sort.Slice(rows, func(i, j int) bool { return rows[i].Matkul.IDMatkul < rows[j].Matkul.IDMatkul })

	data := make([]matkul.MataKuliah, 0, len(rows))
	for _, row := range rows {
		data = append(data, asMatkulDTO(row.Matkul, row.CPL))
	}
	writeJSON(w, http.StatusOK, matkul.ListResponse{Message: "daftar mata kuliah", Data: data})
}

func (h *Handler) handleGetMatkul(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	record, refs, inds, err := h.store.GetMatkul(id)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "mata kuliah tidak ditemukan")
		return
	}

	resp := matkul.DetailResponse{
		MataKuliah: asMatkulDTO(record, nil),
		CPL:        make([]matkul.CPLWithIndikator, 0, len(refs)),
	}
	for _, ref := range refs {
		entry := matkul.CPLWithIndikator{
			CPLRef: matkul.CPLRef{IDKurikulum: ref.IDKurikulum, IDCPL: ref.IDCPL, Deskripsi: ref.Deskripsi},
		}
		for _, ind := range inds[ref.IDKurikulum+"/"+ref.IDCPL] {
			entry.Indikator = append(entry.Indikator, matkul.IndikatorRingkas{
				IDIndikator: ind.IDIndikator, Deskripsi: ind.Deskripsi,
			})
		}
		resp.CPL = append(resp.CPL, entry)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleCreateMatkul(w http.ResponseWriter, r *http.Request) {
	var req matkul.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "body tidak dapat dibaca")
		return
	}
	if err := validateMatkulCreate(req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	refs := make([]Relasi, 0, len(req.CPLList))
	for _, ref := range req.CPLList {
		refs = append(refs, Relasi{IDKurikulum: ref.IDKurikulum, IDCPL: ref.IDCPL})
	}

	record, rels, err := h.store.CreateMatkul(req.IDMatkul, req.MataKuliah, req.SKS, req.Semester, refs)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicate):
			writeDetail(w, http.StatusConflict, "id_matkul sudah dipakai")
		case errors.Is(err, ErrRelasiTarget):
			writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		default:
			writeDetail(w, http.StatusInternalServerError, "penambahan gagal")
		}
		return
	}

	writeJSON(w, http.StatusCreated, matkul.MutationResponse{
		Message: "mata kuliah berhasil ditambahkan",
		Matkul:  asMatkulDTO(record, nil),
		Relasi:  asRelasiDTO(rels),
	})
}

func (h *Handler) handleUpdateMatkul(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req matkul.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "body tidak dapat dibaca")
		return
	}
	if req.SKS != nil {
		if err := util.RequirePositif(*req.SKS, "sks"); err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}
	if req.Semester != nil {
		if err := util.RequirePositif(*req.Semester, "semester"); err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}

	var refs []Relasi
	if req.CPLList != nil {
		refs = make([]Relasi, 0, len(req.CPLList))
		for _, ref := range req.CPLList {
			refs = append(refs, Relasi{IDKurikulum: ref.IDKurikulum, IDCPL: ref.IDCPL})
		}
	}

	record, rels, err := h.store.UpdateMatkul(id, req.MataKuliah, req.SKS, req.Semester, refs)
	if err != nil {
		if errors.Is(err, ErrRelasiTarget) {
			writeDetail(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeDetail(w, http.StatusNotFound, "mata kuliah tidak ditemukan")
		return
	}

	writeJSON(w, http.StatusOK, matkul.MutationResponse{
		Message: "mata kuliah berhasil diperbarui",
		Matkul:  asMatkulDTO(record, nil),
		Relasi:  asRelasiDTO(rels),
	})
}

func (h *Handler) handleDeleteMatkul(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteMatkul(chi.URLParam(r, "id")); err != nil {
		writeDetail(w, http.StatusNotFound, "mata kuliah tidak ditemukan")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "mata kuliah berhasil dihapus"})
}

func validateMatkulCreate(req matkul.CreateRequest) error {
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

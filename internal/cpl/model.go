package cpl

// CPL adalah satu capaian pembelajaran lulusan milik sebuah kurikulum.
type CPL struct {
	IDCPL       string `json:"id_cpl"`
	Deskripsi   string `json:"deskripsi"`
	IDKurikulum string `json:"id_kurikulum,omitempty"`
}

// KurikulumRingkas menyertakan identitas kurikulum pemilik.
type KurikulumRingkas struct {
	IDKurikulum     string `json:"id_kurikulum"`
	NamaKurikulum   string `json:"nama_kurikulum"`
	Revisi          string `json:"revisi"`
	StatusKurikulum string `json:"status_kurikulum,omitempty"`
}

// Indikator adalah sub-pernyataan terukur milik satu CPL.
type Indikator struct {
	IDIndikator string `json:"id_indikator"`
	Deskripsi   string `json:"deskripsi"`
}

// MataKuliahRingkas adalah mata kuliah yang memenuhi CPL ini.
type MataKuliahRingkas struct {
	IDMatkul   string `json:"id_matkul"`
	MataKuliah string `json:"mata_kuliah"`
	SKS        int    `json:"sks"`
	Semester   int    `json:"semester"`
}

// ActiveItem adalah satu baris hasil GET /cpl/kurikulum-aktif.
type ActiveItem struct {
	IDCPL     string            `json:"id_cpl"`
	Deskripsi string            `json:"deskripsi"`
	Kurikulum *KurikulumRingkas `json:"kurikulum"`
}

// ActiveResponse membungkus daftar CPL kurikulum aktif.
type ActiveResponse struct {
	Total int          `json:"total"`
	Data  []ActiveItem `json:"data"`
}

// DetailResponse adalah bacaan komposit: CPL, kurikulum pemilik,
// seluruh indikator, dan mata kuliah terkait dalam satu respons.
type DetailResponse struct {
	CPL        CPL                 `json:"cpl"`
	Kurikulum  *KurikulumRingkas   `json:"kurikulum"`
	Indikator  []Indikator         `json:"indikator"`
	MataKuliah []MataKuliahRingkas `json:"mata_kuliah"`
}

// CreateRequest adalah payload POST /cpl/{id_kurikulum}.
type CreateRequest struct {
	IDCPL     string `json:"id_cpl"`
	Deskripsi string `json:"deskripsi"`
}

// UpdateRequest adalah payload parsial PATCH.
type UpdateRequest struct {
	Deskripsi *string `json:"deskripsi,omitempty"`
}

// MutationResponse adalah balasan operasi tulis.
type MutationResponse struct {
	Message string `json:"message"`
	CPL     CPL    `json:"cpl"`
}

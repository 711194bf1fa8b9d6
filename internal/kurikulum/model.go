package kurikulum

// Status kurikulum sesuai kontrak backend.
const (
	StatusAktif    = "Aktif"
	StatusNonaktif = "Nonaktif"
)

// Kurikulum adalah definisi program akademik berversi.
type Kurikulum struct {
	IDKurikulum     string `json:"id_kurikulum"`
	NamaKurikulum   string `json:"nama_kurikulum"`
	Revisi          string `json:"revisi"`
	StatusKurikulum string `json:"status_kurikulum"`
	CreatedAt       string `json:"created_at,omitempty"`
	UpdatedAt       string `json:"updated_at,omitempty"`
}

// CPLRingkas adalah ringkasan CPL yang tertanam pada respons detail.
type CPLRingkas struct {
	IDCPL     string `json:"id_cpl"`
	Deskripsi string `json:"deskripsi"`
}

// ListResponse membungkus hasil GET /kurikulum/.
type ListResponse struct {
	Total int         `json:"total"`
	Data  []Kurikulum `json:"data"`
}

// Detail menambahkan daftar ringkasan CPL milik kurikulum.
type Detail struct {
	Kurikulum
	CPL []CPLRingkas `json:"cpl"`
}

// DetailResponse membungkus hasil GET /kurikulum/{id}.
type DetailResponse struct {
	Kurikulum Detail `json:"kurikulum"`
}

// CreateRequest adalah payload POST /kurikulum/.
type CreateRequest struct {
	NamaKurikulum   string `json:"nama_kurikulum"`
	Revisi          string `json:"revisi"`
	StatusKurikulum string `json:"status_kurikulum"`
}

// UpdateRequest adalah payload parsial PATCH /kurikulum/{id}.
type UpdateRequest struct {
	NamaKurikulum   *string `json:"nama_kurikulum,omitempty"`
	Revisi          *string `json:"revisi,omitempty"`
	StatusKurikulum *string `json:"status_kurikulum,omitempty"`
}

// MutationResponse adalah balasan operasi tulis.
type MutationResponse struct {
	Message   string    `json:"message"`
	Kurikulum Kurikulum `json:"kurikulum"`
}

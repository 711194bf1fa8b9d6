package matkul

// CPLRef menunjuk satu CPL yang dipenuhi mata kuliah.
type CPLRef struct {
	IDKurikulum string `json:"id_kurikulum"`
	IDCPL       string `json:"id_cpl"`
	Deskripsi   string `json:"deskripsi,omitempty"`
}

// IndikatorRingkas menyertai CPL pada respons detail.
type IndikatorRingkas struct {
	IDIndikator string `json:"id_indikator"`
	Deskripsi   string `json:"deskripsi"`
}

// CPLWithIndikator adalah CPL beserta indikatornya pada detail mata kuliah.
type CPLWithIndikator struct {
	CPLRef
	Indikator []IndikatorRingkas `json:"indikator"`
}

// MataKuliah adalah unit ajar dengan sks dan semester, terhubung
// many-to-many ke CPL lintas kurikulum.
type MataKuliah struct {
	IDMatkul   string   `json:"id_matkul"`
	MataKuliah string   `json:"mata_kuliah"`
	SKS        int      `json:"sks"`
	Semester   int      `json:"semester"`
	CPL        []CPLRef `json:"cpl,omitempty"`
	CreatedAt  string   `json:"created_at,omitempty"`
	UpdatedAt  string   `json:"updated_at,omitempty"`
}

// ListResponse membungkus hasil GET /matkul/.
type ListResponse struct {
	Message string       `json:"message"`
	Data    []MataKuliah `json:"data"`
}

// DetailResponse membungkus hasil GET /matkul/{id}.
type DetailResponse struct {
	MataKuliah MataKuliah         `json:"mata_kuliah"`
	CPL        []CPLWithIndikator `json:"cpl"`
}

// CPLInput memilih CPL yang dipenuhi saat membuat/mengubah mata kuliah.
type CPLInput struct {
	IDKurikulum string `json:"id_kurikulum"`
	IDCPL       string `json:"id_cpl"`
}

// CreateRequest adalah payload POST /matkul/.
type CreateRequest struct {
	IDMatkul   string     `json:"id_matkul"`
	MataKuliah string     `json:"mata_kuliah"`
	SKS        int        `json:"sks"`
	Semester   int        `json:"semester"`
	CPLList    []CPLInput `json:"cpl_list"`
}

// UpdateRequest adalah payload parsial PATCH /matkul/{id}.
type UpdateRequest struct {
	MataKuliah *string    `json:"mata_kuliah,omitempty"`
	SKS        *int       `json:"sks,omitempty"`
	Semester   *int       `json:"semester,omitempty"`
	CPLList    []CPLInput `json:"cpl_list,omitempty"`
}

// Relasi mencatat keterhubungan matkul-CPL yang ditulis server.
type Relasi struct {
	IDKurikulum string `json:"id_kurikulum"`
	IDCPL       string `json:"id_cpl"`
	IDMatkul    string `json:"id_matkul"`
}

// MutationResponse adalah balasan operasi tulis.
type MutationResponse struct {
	Message string     `json:"message"`
	Matkul  MataKuliah `json:"matkul"`
	Relasi  []Relasi   `json:"relasi,omitempty"`
}

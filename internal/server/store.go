package server

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
)

var (
	// ErrNotFound dikembalikan saat rekaman tidak ada.
	ErrNotFound = errors.New("rekaman tidak ditemukan")
	// ErrDuplicate dikembalikan saat id sudah terpakai.
	ErrDuplicate = errors.New("id sudah terpakai")
	// ErrRelasiTarget dikembalikan saat cpl_list menunjuk CPL yang tidak ada.
	ErrRelasiTarget = errors.New("cpl_list menunjuk CPL yang tidak ada")
)

// User adalah akun yang dikenal server stub.
type User struct {
	UserID       string
	Nama         string
	Role         string
	PasswordHash string
}

// Kurikulum adalah rekaman sisi server.
type Kurikulum struct {
	ID        string
	Nama      string
	Revisi    string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CPL adalah capaian pembelajaran milik satu kurikulum.
type CPL struct {
	IDKurikulum string
	IDCPL       string
	Deskripsi   string
}

// Indikator milik satu CPL.
type Indikator struct {
	IDKurikulum string
	IDCPL       string
	IDIndikator string
	Deskripsi   string
}

// Matkul adalah mata kuliah sisi server.
type Matkul struct {
	IDMatkul  string
	Nama      string
	SKS       int
	Semester  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Relasi menghubungkan mata kuliah ke CPL (many-to-many).
type Relasi struct {
	IDKurikulum string
	IDCPL       string
	IDMatkul    string
}

// Store menyimpan seluruh data stub di memori, dijaga satu mutex.
// Sengaja tanpa basis data agar CLI dan uji berjalan tanpa infrastruktur.
type Store struct {
	mu        sync.RWMutex
	users     map[string]User
	kurikulum map[string]*Kurikulum
	cpl       []CPL
	indikator []Indikator
	matkul    map[string]*Matkul
	relasi    []Relasi
}

// NewStore membuat store kosong.
func NewStore() *Store {
	return &Store{
		users:     make(map[string]User),
		kurikulum: make(map[string]*Kurikulum),
		matkul:    make(map[string]*Matkul),
	}
}

// SeedDefault mengisi akun dan fixture kurikulum untuk pengembangan lokal.
func (s *Store) SeedDefault() error {
	if err := s.AddUser("kadep1", "Dr. X", "kadep", "secret"); err != nil {
		return err
	}
	if err := s.AddUser("dosen1", "Bu Y", "dosen", "secret"); err != nil {
		return err
	}

	now := time.Now().UTC()
	s.mu.Lock()
	s.kurikulum["K-2024"] = &Kurikulum{
		ID: "K-2024", Nama: "Kurikulum 2024", Revisi: "R1", Status: "Aktif",
		CreatedAt: now, UpdatedAt: now,
	}
	s.cpl = append(s.cpl,
		CPL{IDKurikulum: "K-2024", IDCPL: "CPL-01", Deskripsi: "Mampu merancang perangkat lunak"},
		CPL{IDKurikulum: "K-2024", IDCPL: "CPL-02", Deskripsi: "Mampu menganalisis kebutuhan sistem"},
	)
	s.indikator = append(s.indikator,
		Indikator{IDKurikulum: "K-2024", IDCPL: "CPL-01", IDIndikator: "IND-01-01", Deskripsi: "Menjelaskan prinsip desain"},
	)
	s.matkul["IF1101"] = &Matkul{
		IDMatkul: "IF1101", Nama: "Dasar Pemrograman", SKS: 3, Semester: 1,
		CreatedAt: now, UpdatedAt: now,
	}
	s.relasi = append(s.relasi, Relasi{IDKurikulum: "K-2024", IDCPL: "CPL-01", IDMatkul: "IF1101"})
	s.mu.Unlock()
	return nil
}

// AddUser mendaftarkan akun dengan password yang di-hash argon2id.
func (s *Store) AddUser(userID, nama, role, password string) error {
	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[userID] = User{UserID: userID, Nama: nama, Role: role, PasswordHash: hash}
	return nil
}

// Authenticate memverifikasi kredensial dan mengembalikan akunnya.
func (s *Store) Authenticate(userID, password string) (User, error) {
	s.mu.RLock()
	user, ok := s.users[userID]
	s.mu.RUnlock()
	if !ok {
		return User{}, ErrNotFound
	}
	match, err := argon2id.ComparePasswordAndHash(password, user.PasswordHash)
	if err != nil || !match {
		return User{}, ErrNotFound
	}
	return user, nil
}

// GetUser mengambil akun berdasarkan user_id.
func (s *Store) GetUser(userID string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

// ListKurikulum mengembalikan seluruh kurikulum.
func (s *Store) ListKurikulum() []Kurikulum {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Kurikulum, 0, len(s.kurikulum))
	for _, k := range s.kurikulum {
		out = append(out, *k)
	}
	return out
}

// GetKurikulum mengambil satu kurikulum beserta CPL-nya.
func (s *Store) GetKurikulum(id string) (Kurikulum, []CPL, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	k, ok := s.kurikulum[id]
	if !ok {
		return Kurikulum{}, nil, ErrNotFound
	}
	var owned []CPL
	for _, c := range s.cpl {
		if c.IDKurikulum == id {
			owned = append(owned, c)
		}
	}
	return *k, owned, nil
}

// CreateKurikulum menambahkan kurikulum dengan id yang dibangkitkan server.
func (s *Store) CreateKurikulum(nama, revisi, status string) Kurikulum {
	now := time.Now().UTC()
	k := &Kurikulum{
		ID:        "K-" + strings.ToUpper(uuid.NewString()[:8]),
		Nama:      nama,
		Revisi:    revisi,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kurikulum[k.ID] = k
	return *k
}

// UpdateKurikulum mengubah field yang dikirim saja.
func (s *Store) UpdateKurikulum(id string, nama, revisi, status *string) (Kurikulum, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k, ok := s.kurikulum[id]
	if !ok {
		return Kurikulum{}, ErrNotFound
	}
	if nama != nil {
		k.Nama = *nama
	}
	if revisi != nil {
		k.Revisi = *revisi
	}
	if status != nil {
		k.Status = *status
	}
	k.UpdatedAt = time.Now().UTC()
	return *k, nil
}

// ListCPLAktif mengembalikan CPL milik kurikulum berstatus Aktif.
func (s *Store) ListCPLAktif() []struct {
	CPL       CPL
	Kurikulum Kurikulum
} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []struct {
		CPL       CPL
		Kurikulum Kurikulum
	}
	for _, c := range s.cpl {
		k, ok := s.kurikulum[c.IDKurikulum]
		if !ok || k.Status != "Aktif" {
			continue
		}
		out = append(out, struct {
			CPL       CPL
			Kurikulum Kurikulum
		}{CPL: c, Kurikulum: *k})
	}
	return out
}

// GetCPL mengambil satu CPL beserta kurikulum, indikator, dan matkulnya.
func (s *Store) GetCPL(idKurikulum, idCPL string) (CPL, Kurikulum, []Indikator, []Matkul, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.findCPL(idKurikulum, idCPL)
	if idx < 0 {
		return CPL{}, Kurikulum{}, nil, nil, ErrNotFound
	}

	var kur Kurikulum
	if k, ok := s.kurikulum[idKurikulum]; ok {
		kur = *k
	}

	var inds []Indikator
	for _, ind := range s.indikator {
		if ind.IDKurikulum == idKurikulum && ind.IDCPL == idCPL {
			inds = append(inds, ind)
		}
	}

	var matkuls []Matkul
	for _, rel := range s.relasi {
		if rel.IDKurikulum != idKurikulum || rel.IDCPL != idCPL {
			continue
		}
		if m, ok := s.matkul[rel.IDMatkul]; ok {
			matkuls = append(matkuls, *m)
		}
	}

	return s.cpl[idx], kur, inds, matkuls, nil
}

// CreateCPL menambahkan CPL pada kurikulum yang ada.
func (s *Store) CreateCPL(idKurikulum, idCPL, deskripsi string) (CPL, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.kurikulum[idKurikulum]; !ok {
		return CPL{}, ErrNotFound
	}
	if s.findCPL(idKurikulum, idCPL) >= 0 {
		return CPL{}, ErrDuplicate
	}
	c := CPL{IDKurikulum: idKurikulum, IDCPL: idCPL, Deskripsi: deskripsi}
	s.cpl = append(s.cpl, c)
	return c, nil
}

// UpdateCPL mengubah deskripsi CPL.
func (s *Store) UpdateCPL(idKurikulum, idCPL string, deskripsi *string) (CPL, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.findCPL(idKurikulum, idCPL)
	if idx < 0 {
		return CPL{}, ErrNotFound
	}
	if deskripsi != nil {
		s.cpl[idx].Deskripsi = *deskripsi
	}
	return s.cpl[idx], nil
}

// DeleteCPL menghapus CPL beserta indikator dan relasi matkulnya.
func (s *Store) DeleteCPL(idKurikulum, idCPL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.findCPL(idKurikulum, idCPL)
	if idx < 0 {
		return ErrNotFound
	}
	s.cpl = append(s.cpl[:idx], s.cpl[idx+1:]...)

	kept := s.indikator[:0]
	for _, ind := range s.indikator {
		if !(ind.IDKurikulum == idKurikulum && ind.IDCPL == idCPL) {
			kept = append(kept, ind)
		}
	}
	s.indikator = kept

	keptRel := s.relasi[:0]
	for _, rel := range s.relasi {
		if !(rel.IDKurikulum == idKurikulum && rel.IDCPL == idCPL) {
			keptRel = append(keptRel, rel)
		}
	}
	s.relasi = keptRel
	return nil
}

// CreateIndikator menambahkan indikator pada CPL yang ada.
func (s *Store) CreateIndikator(idKurikulum, idCPL, idIndikator, deskripsi string) (Indikator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findCPL(idKurikulum, idCPL) < 0 {
		return Indikator{}, ErrNotFound
	}
	if s.findIndikator(idKurikulum, idCPL, idIndikator) >= 0 {
		return Indikator{}, ErrDuplicate
	}
	ind := Indikator{IDKurikulum: idKurikulum, IDCPL: idCPL, IDIndikator: idIndikator, Deskripsi: deskripsi}
	s.indikator = append(s.indikator, ind)
	return ind, nil
}

// GetIndikator mengambil satu indikator.
func (s *Store) GetIndikator(idKurikulum, idCPL, idIndikator string) (Indikator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.findIndikator(idKurikulum, idCPL, idIndikator)
	if idx < 0 {
		return Indikator{}, ErrNotFound
	}
	return s.indikator[idx], nil
}

// UpdateIndikator mengubah deskripsi indikator.
func (s *Store) UpdateIndikator(idKurikulum, idCPL, idIndikator string, deskripsi *string) (Indikator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.findIndikator(idKurikulum, idCPL, idIndikator)
	if idx < 0 {
		return Indikator{}, ErrNotFound
	}
	if deskripsi != nil {
		s.indikator[idx].Deskripsi = *deskripsi
	}
	return s.indikator[idx], nil
}

// DeleteIndikator menghapus satu indikator.
func (s *Store) DeleteIndikator(idKurikulum, idCPL, idIndikator string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.findIndikator(idKurikulum, idCPL, idIndikator)
	if idx < 0 {
		return ErrNotFound
	}
	s.indikator = append(s.indikator[:idx], s.indikator[idx+1:]...)
	return nil
}

// ListMatkul mengembalikan seluruh mata kuliah beserta referensi CPL-nya.
func (s *Store) ListMatkul() []struct {
	Matkul Matkul
	CPL    []CPL
} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []struct {
		Matkul Matkul
		CPL    []CPL
	}
	for _, m := range s.matkul {
		out = append(out, struct {
			Matkul Matkul
			CPL    []CPL
		}{Matkul: *m, CPL: s.cplOfMatkul(m.IDMatkul)})
	}
	return out
}

// GetMatkul mengambil satu mata kuliah beserta CPL dan indikatornya.
func (s *Store) GetMatkul(id string) (Matkul, []CPL, map[string][]Indikator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.matkul[id]
	if !ok {
		return Matkul{}, nil, nil, ErrNotFound
	}
	refs := s.cplOfMatkul(id)
	inds := make(map[string][]Indikator, len(refs))
	for _, ref := range refs {
		key := ref.IDKurikulum + "/" + ref.IDCPL
		for _, ind := range s.indikator {
			if ind.IDKurikulum == ref.IDKurikulum && ind.IDCPL == ref.IDCPL {
				inds[key] = append(inds[key], ind)
			}
		}
	}
	return *m, refs, inds, nil
}

// CreateMatkul menambahkan mata kuliah dan relasi CPL-nya sekaligus.
func (s *Store) CreateMatkul(id, nama string, sks, semester int, refs []Relasi) (Matkul, []Relasi, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.matkul[id]; ok {
		return Matkul{}, nil, ErrDuplicate
	}
	for _, ref := range refs {
		if s.findCPL(ref.IDKurikulum, ref.IDCPL) < 0 {
			return Matkul{}, nil, ErrRelasiTarget
		}
	}

	now := time.Now().UTC()
	m := &Matkul{IDMatkul: id, Nama: nama, SKS: sks, Semester: semester, CreatedAt: now, UpdatedAt: now}
	s.matkul[id] = m
	written := make([]Relasi, 0, len(refs))
	for _, ref := range refs {
		rel := Relasi{IDKurikulum: ref.IDKurikulum, IDCPL: ref.IDCPL, IDMatkul: id}
		s.relasi = append(s.relasi, rel)
		written = append(written, rel)
	}
	return *m, written, nil
}

// UpdateMatkul mengubah field yang dikirim; cpl_list non-nil mengganti relasi.
func (s *Store) UpdateMatkul(id string, nama *string, sks, semester *int, refs []Relasi) (Matkul, []Relasi, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.matkul[id]
	if !ok {
		return Matkul{}, nil, ErrNotFound
	}
	for _, ref := range refs {
		if s.findCPL(ref.IDKurikulum, ref.IDCPL) < 0 {
			return Matkul{}, nil, ErrRelasiTarget
		}
	}

	if nama != nil {
		m.Nama = *nama
	}
	if sks != nil {
		m.SKS = *sks
	}
	if semester != nil {
		m.Semester = *semester
	}
	m.UpdatedAt = time.Now().UTC()

	if refs != nil {
		kept := s.relasi[:0]
		for _, rel := range s.relasi {
			if rel.IDMatkul != id {
				kept = append(kept, rel)
			}
		}
		s.relasi = kept
		for _, ref := range refs {
			s.relasi = append(s.relasi, Relasi{IDKurikulum: ref.IDKurikulum, IDCPL: ref.IDCPL, IDMatkul: id})
		}
	}

	var written []Relasi
	for _, rel := range s.relasi {
		if rel.IDMatkul == id {
			written = append(written, rel)
		}
	}
	return *m, written, nil
}

// DeleteMatkul menghapus mata kuliah beserta relasinya.
func (s *Store) DeleteMatkul(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.matkul[id]; !ok {
		return ErrNotFound
	}
	delete(s.matkul, id)
	kept := s.relasi[:0]
	for _, rel := range s.relasi {
		if rel.IDMatkul != id {
			kept = append(kept, rel)
		}
	}
	s.relasi = kept
	return nil
}

func (s *Store) cplOfMatkul(id string) []CPL {
	var refs []CPL
	for _, rel := range s.relasi {
		if rel.IDMatkul != id {
			continue
		}
		if idx := s.findCPL(rel.IDKurikulum, rel.IDCPL); idx >= 0 {
			refs = append(refs, s.cpl[idx])
		}
	}
	return refs
}

func (s *Store) findCPL(idKurikulum, idCPL string) int {
	for i, c := range s.cpl {
		if c.IDKurikulum == idKurikulum && c.IDCPL == idCPL {
			return i
		}
	}
	return -1
}

func (s *Store) findIndikator(idKurikulum, idCPL, idIndikator string) int {
	for i, ind := range s.indikator {
		if ind.IDKurikulum == idKurikulum && ind.IDCPL == idCPL && ind.IDIndikator == idIndikator {
			return i
		}
	}
	return -1
}

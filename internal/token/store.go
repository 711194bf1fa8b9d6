package token

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Store adalah satu-satunya pemilik bearer token yang dipersistenkan.
// Isi token tidak divalidasi di sini; itu urusan pendekode klaim.
type Store struct {
	path string
}

// NewStore membuat store berbasis berkas pada path yang diberikan.
func NewStore(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("token: path penyimpanan wajib diisi")
	}
	return &Store{path: path}, nil
}

// Set menyimpan token secara durabel.
func (s *Store) Set(tok string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(tok), 0o600)
}

// Get mengembalikan token tersimpan, atau string kosong bila tidak ada.
func (s *Store) Get() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Clear menghapus token tersimpan. Tidak ada berkas bukan sebuah galat.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

package util

import (
	"errors"
	"regexp"
	"strings"
)

var (
	kodeCPLRe       = regexp.MustCompile(`^CPL-[A-Za-z0-9]+$`)
	kodeIndikatorRe = regexp.MustCompile(`^IND-[A-Za-z0-9]+-[A-Za-z0-9]+$`)
)

// ValidateKodeCPL memeriksa format kode CPL, contoh: CPL-01.
func ValidateKodeCPL(kode string) error {
	if !kodeCPLRe.MatchString(strings.TrimSpace(kode)) {
		return errors.New("format kode CPL tidak valid, contoh: CPL-01")
	}
	return nil
}

// ValidateKodeIndikator memeriksa format kode indikator, contoh: IND-01-01.
func ValidateKodeIndikator(kode string) error {
	if !kodeIndikatorRe.MatchString(strings.TrimSpace(kode)) {
		return errors.New("format kode indikator tidak valid, contoh: IND-01-01")
	}
	return nil
}

// RequireString memastikan string tidak kosong.
func RequireString(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New(field + " wajib diisi")
	}
	return nil
}

// RequirePositif memastikan bilangan minimal 1.
func RequirePositif(value int, field string) error {
	if value < 1 {
		return errors.New(field + " harus bilangan positif")
	}
	return nil
}

package api

import (
	"errors"
	"fmt"
)

// Kind menggolongkan kegagalan pemanggilan API.
type Kind string

const (
	// KindNetwork berarti tidak ada respons dari server sama sekali.
	KindNetwork Kind = "network"
	// KindUnauthorized berarti kredensial tidak valid atau kedaluwarsa (401).
	KindUnauthorized Kind = "unauthorized"
	// KindNotFound berarti rekaman yang diminta tidak ada (404).
	KindNotFound Kind = "not_found"
	// KindValidation berarti server menolak isi permintaan (4xx lain).
	KindValidation Kind = "validation"
	// KindServerFault berarti kegagalan di sisi server (5xx).
	KindServerFault Kind = "server_fault"
	// KindLocalValidation berarti pemeriksaan lokal gagal; tidak ada
	// permintaan jaringan yang dikirim.
	KindLocalValidation Kind = "local_validation"
)

// Error menormalkan bentuk galat backend pada batas layanan.
// Detail memuat pesan dari body respons server apa adanya.
type Error struct {
	Kind   Kind
	Status int
	Detail string
	err    error
}

func (e *Error) Error() string {
	switch {
	case e.Detail != "":
		return e.Detail
	case e.err != nil:
		return e.err.Error()
	case e.Status != 0:
		return fmt.Sprintf("api: status %d", e.Status)
	default:
		return "api: " + string(e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.err
}

// LocalValidation membungkus galat pemeriksaan lokal sebelum jaringan.
func LocalValidation(err error) *Error {
	return &Error{Kind: KindLocalValidation, Detail: err.Error(), err: err}
}

func kindOf(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// IsNetwork melaporkan apakah galat berasal dari transport.
func IsNetwork(err error) bool { return kindOf(err, KindNetwork) }

// IsUnauthorized melaporkan apakah server membalas 401.
func IsUnauthorized(err error) bool { return kindOf(err, KindUnauthorized) }

// IsNotFound melaporkan apakah server membalas 404.
func IsNotFound(err error) bool { return kindOf(err, KindNotFound) }

// IsLocalValidation melaporkan apakah permintaan ditolak sebelum jaringan.
func IsLocalValidation(err error) bool { return kindOf(err, KindLocalValidation) }

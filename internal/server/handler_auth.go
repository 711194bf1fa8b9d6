package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
)

type loginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "body tidak dapat dibaca")
		return
	}
	if req.UserID == "" || req.Password == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "user_id dan password wajib diisi")
		return
	}

	user, err := h.store.Authenticate(req.UserID, req.Password)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeDetail(w, http.StatusUnauthorized, "user_id atau password salah")
			return
		}
		writeDetail(w, http.StatusInternalServerError, "autentikasi gagal")
		return
	}

	tok, err := h.issuer.Issue(user)
	if err != nil {
		log.Error().Err(err).Msg("gagal menerbitkan token")
		writeDetail(w, http.StatusInternalServerError, "gagal menerbitkan token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": tok,
		"token_type":   "bearer",
	})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	user, err := h.store.GetUser(claims.Subject)
	if err != nil {
		writeDetail(w, http.StatusUnauthorized, "akun tidak dikenal")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"user_id": user.UserID,
		"nama":    user.Nama,
		"role":    user.Role,
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	// Token stateless: tidak ada yang perlu dibatalkan di sisi stub.
	writeJSON(w, http.StatusOK, map[string]string{"message": "logout berhasil"})
}

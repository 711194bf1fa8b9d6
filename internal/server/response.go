package server

import (
	"encoding/json"
	"net/http"
)

// writeJSON menulis body sukses apa adanya.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeDetail menulis galat dalam bentuk {"detail": "..."} yang
// dikonsumsi klien apa adanya.
func writeDetail(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": message})
}

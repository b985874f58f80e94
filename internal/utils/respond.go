package utils

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes payload with the given status code.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteDetail writes the {"detail": ...} error body every API failure uses.
func WriteDetail(w http.ResponseWriter, status int, detail string) {
	WriteJSON(w, status, map[string]string{"detail": detail})
}

// WriteError maps err through StatusOf.
func WriteError(w http.ResponseWriter, err error) {
	code, msg := StatusOf(err)
	WriteDetail(w, code, msg)
}

package transport

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Error("write response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

func respondFieldErrors(w http.ResponseWriter, errs []fieldError) {
	respondJSON(w, http.StatusBadRequest, map[string]interface{}{
		"success": false,
		"errors":  errs,
	})
}

// respondInternal logs the cause and returns a generic message so internal
// detail never reaches the client.
func respondInternal(w http.ResponseWriter, err error, message string) {
	log.WithError(err).Error(message)
	respondError(w, http.StatusInternalServerError, message)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

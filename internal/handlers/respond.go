package handlers

import (
	"Flashcards/internal/service"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON читает тело запроса с ограничением размера.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

// writeServiceError сопоставляет ошибки сервиса со статусами HTTP.
func writeServiceError(w http.ResponseWriter, logger *zap.SugaredLogger, op string, err error) {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated), errors.Is(err, service.ErrInvalidCredentials):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, service.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, service.ErrLoginTaken):
		http.Error(w, "login already taken", http.StatusConflict)
	default:
		logger.Errorw(op+": service error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

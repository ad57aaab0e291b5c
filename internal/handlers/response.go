package handlers

import (
	"encoding/json"
	"net/http"

	"dateTracker/internal/logger"
)

type Payload struct {
	Key     string
	Payload any
}

func toPayload(key string, pl any) Payload {
	return Payload{Key: key, Payload: pl}
}

func responseWithJSON(w http.ResponseWriter, code int, payload ...Payload) {
	storage := make(map[string]any, len(payload))
	for _, pl := range payload {
		storage[pl.Key] = pl.Payload
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(storage); err != nil {
		logger.Error("HTTP: failed to encode response", err)
	}
}

// respondSuccess writes the {success:true, ...} envelope.
func respondSuccess(w http.ResponseWriter, code int, payload ...Payload) {
	responseWithJSON(w, code, append([]Payload{toPayload("success", true)}, payload...)...)
}

// respondFailure writes the {success:false, error:message, ...} envelope.
func respondFailure(w http.ResponseWriter, code int, message string, payload ...Payload) {
	base := []Payload{toPayload("success", false), toPayload("error", message)}
	responseWithJSON(w, code, append(base, payload...)...)
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func respondValidation(w http.ResponseWriter, details ...FieldError) {
	respondFailure(w, http.StatusBadRequest, "Validation failed", toPayload("details", details))
}

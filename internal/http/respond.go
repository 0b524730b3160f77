package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/abheydecbs/webshop-eksamen/internal/cartstore"
	"github.com/abheydecbs/webshop-eksamen/internal/repository"
	"github.com/abheydecbs/webshop-eksamen/internal/service"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError maps service and repository sentinels to HTTP status
// codes; anything unrecognized is a generic server error.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		respondError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, repository.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "not_found", "Produkt ikke fundet")
	case errors.Is(err, cartstore.ErrLineNotFound):
		respondError(w, http.StatusNotFound, "not_found", "Linje ikke fundet")
	case errors.Is(err, cartstore.ErrCartNotFound):
		respondError(w, http.StatusNotFound, "not_found", "Kurv ikke fundet")
	case errors.Is(err, repository.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "not_found", "Ordre ikke fundet")
	case errors.Is(err, repository.ErrEmailTaken):
		respondError(w, http.StatusConflict, "conflict", "Email er allerede registreret")
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Server fejl")
	}
}

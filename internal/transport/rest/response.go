package rest

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"emi-collect/internal/domain"
)

func JSON(w http.ResponseWriter, httpStatus int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[HTTP] write response error: %v", err)
	}
}

// ErrorJSON writes the error body shape all endpoints share: {"message": "..."}.
func ErrorJSON(w http.ResponseWriter, httpStatus int, message string) {
	JSON(w, httpStatus, map[string]string{"message": message})
}

// RespondError maps the domain error taxonomy onto HTTP statuses.
// notFoundMsg customizes the 404 body per endpoint; internalMsg is the
// generic text for storage failures, whose detail goes to the log only.
func RespondError(w http.ResponseWriter, err error, notFoundMsg, internalMsg string) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		ErrorJSON(w, http.StatusBadRequest, vErr.Message)
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		ErrorJSON(w, http.StatusNotFound, notFoundMsg)
		return
	}

	log.Printf("[HTTP] %s: %v", internalMsg, err)
	ErrorJSON(w, http.StatusInternalServerError, internalMsg)
}

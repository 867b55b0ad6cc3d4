package rest

import (
	"encoding/json"
	"io"
	"net/http"

	"emi-collect/internal/service"

	"github.com/go-chi/chi/v5"
)

type statementRequest struct {
	Fields []string `json:"fields"`
}

func (h *Handler) startStatement(w http.ResponseWriter, r *http.Request) {
	accountNumber := chi.URLParam(r, "accountNumber")

	var req statementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		ErrorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	exportID, err := h.statements.Start(r.Context(), accountNumber, req.Fields)
	if err != nil {
		RespondError(w, err, "Account not found", "failed to start statement export")
		return
	}

	JSON(w, http.StatusAccepted, map[string]interface{}{
		"message":   "Statement export queued",
		"export_id": exportID,
	})
}

func (h *Handler) listStatements(w http.ResponseWriter, r *http.Request) {
	accountNumber := chi.URLParam(r, "accountNumber")

	statements, err := h.statements.List(r.Context(), accountNumber)
	if err != nil {
		RespondError(w, err, "Account not found", "failed to list statement exports")
		return
	}
	if statements == nil {
		statements = []service.StatementStatus{}
	}
	JSON(w, http.StatusOK, statements)
}

func (h *Handler) getStatement(w http.ResponseWriter, r *http.Request) {
	accountNumber := chi.URLParam(r, "accountNumber")
	exportID := chi.URLParam(r, "exportID")

	status, err := h.statements.Get(r.Context(), accountNumber, exportID)
	if err != nil {
		RespondError(w, err, "Statement not found", "failed to get statement export")
		return
	}
	JSON(w, http.StatusOK, status)
}

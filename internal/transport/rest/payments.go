package rest

import (
	"net/http"

	"emi-collect/internal/domain"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) makePayment(w http.ResponseWriter, r *http.Request) {
	in, err := ValidatePaymentRequest(r)
	if err != nil {
		if vErr, ok := err.(*domain.ValidationError); ok {
			ErrorJSON(w, http.StatusBadRequest, vErr.Message)
			return
		}
		ErrorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	payment, err := h.payments.Record(r.Context(), *in)
	if err != nil {
		RespondError(w, err, "Account not found", "Error processing payment")
		return
	}

	JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Payment successful",
		"payment": payment,
	})
}

func (h *Handler) getPaymentHistory(w http.ResponseWriter, r *http.Request) {
	accountNumber := chi.URLParam(r, "accountNumber")

	payments, err := h.customers.History(r.Context(), accountNumber)
	if err != nil {
		RespondError(w, err, "Account not found", "Error fetching payment history")
		return
	}
	JSON(w, http.StatusOK, payments)
}

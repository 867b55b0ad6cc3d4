package rest

import (
	"net/http"
	"strconv"

	"emi-collect/internal/service"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.List(r.Context())
	if err != nil {
		RespondError(w, err, "Customer not found", "Error fetching customer data")
		return
	}
	if customers == nil {
		customers = []service.CustomerBalance{}
	}
	JSON(w, http.StatusOK, customers)
}

func (h *Handler) getCustomerByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		ErrorJSON(w, http.StatusBadRequest, "customer id must be numeric")
		return
	}

	customer, err := h.customers.GetByID(r.Context(), id)
	if err != nil {
		RespondError(w, err, "Customer not found", "Error fetching customer data")
		return
	}
	JSON(w, http.StatusOK, customer)
}

func (h *Handler) getCustomerByAccountNumber(w http.ResponseWriter, r *http.Request) {
	accountNumber := chi.URLParam(r, "accountNumber")

	customer, err := h.customers.GetByAccountNumber(r.Context(), accountNumber)
	if err != nil {
		RespondError(w, err, "Account not found", "Error fetching customer data")
		return
	}
	JSON(w, http.StatusOK, customer)
}

package rest

import (
	"context"
	"time"

	"emi-collect/internal/domain"
	"emi-collect/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type CustomerReader interface {
	List(ctx context.Context) ([]service.CustomerBalance, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (*service.CustomerBalance, error)
	History(ctx context.Context, accountNumber string) ([]domain.Payment, error)
}

type PaymentRecorder interface {
	Record(ctx context.Context, in service.RecordPaymentInput) (*domain.Payment, error)
}

type StatementExporter interface {
	Start(ctx context.Context, accountNumber string, fields []string) (string, error)
	List(ctx context.Context, accountNumber string) ([]service.StatementStatus, error)
	Get(ctx context.Context, accountNumber, exportID string) (*service.StatementStatus, error)
}

type Handler struct {
	customers  CustomerReader
	payments   PaymentRecorder
	statements StatementExporter
}

func NewHandler(customers CustomerReader, payments PaymentRecorder, statements StatementExporter) *Handler {
	return &Handler{
		customers:  customers,
		payments:   payments,
		statements: statements,
	}
}

func (h *Handler) InitRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middleware.Timeout(60*time.Second),
	)

	r.Route("/customers", func(r chi.Router) {
		r.Get("/", h.listCustomers)
		r.Get("/{id}", h.getCustomerByID)
		r.Get("/account/{accountNumber}", h.getCustomerByAccountNumber)
	})

	r.Post("/payments", h.makePayment)
	r.Get("/payments/{accountNumber}", h.getPaymentHistory)

	r.Route("/statements", func(r chi.Router) {
		r.Post("/{accountNumber}", h.startStatement)
		r.Get("/{accountNumber}", h.listStatements)
		r.Get("/{accountNumber}/{exportID}", h.getStatement)
	})

	return r
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"emi-collect/internal/clients"
	"emi-collect/internal/domain"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// StatementColumn maps a selectable field name to its sheet header and value.
type StatementColumn struct {
	Header string
	Value  func(p domain.Payment) any
}

var statementColumns = map[string]StatementColumn{
	"id":             {Header: "Payment ID", Value: func(p domain.Payment) any { return p.ID }},
	"account_number": {Header: "Account", Value: func(p domain.Payment) any { return p.AccountNumber }},
	"payment_amount": {Header: "Amount", Value: func(p domain.Payment) any { return p.Amount.StringFixed(2) }},
	"payment_date":   {Header: "Payment Date", Value: func(p domain.Payment) any { return p.PaymentDate.Format("2006-01-02 15:04:05") }},
	"status":         {Header: "Status", Value: func(p domain.Payment) any { return p.Status }},
	"created_at":     {Header: "Recorded", Value: func(p domain.Payment) any { return p.CreatedAt.Format("2006-01-02 15:04:05") }},
}

var defaultStatementFields = []string{"payment_date", "payment_amount", "status", "id", "created_at"}

// StatementStatus tracks one export through generation and upload. It lives
// in redis under its Key and in a per-account index set.
type StatementStatus struct {
	Key           string    `json:"key"`
	AccountNumber string    `json:"account_number"`
	Fields        []string  `json:"fields"`
	Progress      float64   `json:"progress"`
	FileURL       *string   `json:"file_url"`
	Error         *string   `json:"error,omitempty"`
	Created       time.Time `json:"created_at"`
}

const statementTTL = 20 * time.Minute

// StatementService generates XLSX payment-history statements asynchronously.
type StatementService struct {
	customers CustomerRepository
	payments  PaymentRepository
	redis     *clients.RedisClient
	storage   clients.Storage
	ws        *clients.WebSocketClient
}

func NewStatementService(customers CustomerRepository, payments PaymentRepository, redis *clients.RedisClient, storage clients.Storage, ws *clients.WebSocketClient) *StatementService {
	return &StatementService{
		customers: customers,
		payments:  payments,
		redis:     redis,
		storage:   storage,
		ws:        ws,
	}
}

func statementSetKey(accountNumber string) string {
	return fmt.Sprintf("statement_ids:%s", accountNumber)
}

// Start verifies the account, registers a pending status and generates the
// workbook in the background. It returns the export id immediately.
func (s *StatementService) Start(ctx context.Context, accountNumber string, fields []string) (string, error) {
	if _, err := s.customers.GetByAccountNumber(ctx, accountNumber); err != nil {
		return "", err
	}

	if len(fields) == 0 {
		fields = defaultStatementFields
	}
	for _, f := range fields {
		if _, ok := statementColumns[f]; !ok {
			return "", &domain.ValidationError{Field: "fields", Message: fmt.Sprintf("unknown statement field %q", f)}
		}
	}

	exportID := fmt.Sprintf("statements:%s", uuid.NewString())

	status := &StatementStatus{
		Key:           exportID,
		AccountNumber: accountNumber,
		Fields:        fields,
		Progress:      0,
		Created:       time.Now(),
	}
	_ = s.saveStatus(ctx, status)

	// The export outlives the request, so it runs on a fresh context.
	go s.run(context.Background(), status)

	return exportID, nil
}

func (s *StatementService) run(ctx context.Context, status *StatementStatus) {
	payments, err := s.payments.ListByAccountNumber(ctx, status.AccountNumber)
	if err != nil {
		s.fail(ctx, status, fmt.Sprintf("load payments failed: %v", err))
		return
	}

	cols := make([]StatementColumn, 0, len(status.Fields))
	for _, key := range status.Fields {
		cols = append(cols, statementColumns[key])
	}

	f := excelize.NewFile()
	sheet := "Payments"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for i, col := range cols {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, col.Header)
	}

	total := len(payments)
	for i, p := range payments {
		for colIdx, col := range cols {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, i+2)
			_ = f.SetCellValue(sheet, cell, col.Value(p))
		}

		if (i+1)%100 == 0 || i == total-1 {
			progress := math.Round(float64(i+1) / float64(total) * 100.0)
			if progress >= 100 {
				progress = 95
			}
			status.Progress = progress
			_ = s.saveStatus(ctx, status)
			if s.ws != nil {
				_ = s.ws.NotifyStatementProgress(ctx, status.AccountNumber, status.Key, progress, "generating")
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.fail(ctx, status, fmt.Sprintf("build workbook failed: %v", err))
		return
	}

	fileName := fmt.Sprintf("statement_%s_%s.xlsx", status.AccountNumber, time.Now().Format("20060102_150405"))

	status.Progress = 95
	_ = s.saveStatus(ctx, status)
	if s.ws != nil {
		_ = s.ws.NotifyStatementProgress(ctx, status.AccountNumber, status.Key, 95, "uploading")
	}

	savedName, err := s.storage.Save(ctx, fileName, buf.Bytes())
	if err != nil {
		s.fail(ctx, status, fmt.Sprintf("save statement failed: %v", err))
		return
	}

	url, err := s.storage.URL(ctx, savedName)
	if err != nil {
		s.fail(ctx, status, fmt.Sprintf("resolve statement url failed: %v", err))
		return
	}

	status.FileURL = &url
	status.Progress = 100
	_ = s.saveStatus(ctx, status)
	if s.ws != nil {
		_ = s.ws.NotifyStatementProgress(ctx, status.AccountNumber, status.Key, 100, "ready")
		_ = s.ws.NotifyStatementComplete(ctx, status.AccountNumber, status.Key, url, fileName)
	}
}

func (s *StatementService) fail(ctx context.Context, status *StatementStatus, msg string) {
	log.Printf("statement %s: %s", status.Key, msg)
	status.Error = &msg
	status.Progress = 100
	_ = s.saveStatus(ctx, status)
	if s.ws != nil {
		_ = s.ws.NotifyStatementFailed(ctx, status.AccountNumber, status.Key, msg)
	}
}

func (s *StatementService) saveStatus(ctx context.Context, st *StatementStatus) error {
	if s.redis == nil {
		return nil
	}
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	if err := s.redis.Set(ctx, st.Key, string(data), statementTTL); err != nil {
		return err
	}
	return s.redis.SAdd(ctx, statementSetKey(st.AccountNumber), st.Key)
}

// List returns the account's known statement exports, newest first. Expired
// statuses silently drop out of the result.
func (s *StatementService) List(ctx context.Context, accountNumber string) ([]StatementStatus, error) {
	if s.redis == nil {
		return nil, errors.New("redis client not configured")
	}

	keys, err := s.redis.SMembers(ctx, statementSetKey(accountNumber))
	if err != nil {
		return nil, fmt.Errorf("failed to get statement keys: %w", err)
	}

	statuses := make([]StatementStatus, 0, len(keys))
	for _, key := range keys {
		data, err := s.redis.Get(ctx, key)
		if err != nil {
			continue
		}

		var status StatementStatus
		if err := json.Unmarshal([]byte(data), &status); err != nil {
			continue
		}
		statuses = append(statuses, status)
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Created.After(statuses[j].Created)
	})

	return statuses, nil
}

// Get returns a single export status scoped to the account that started it.
func (s *StatementService) Get(ctx context.Context, accountNumber, exportID string) (*StatementStatus, error) {
	if s.redis == nil {
		return nil, errors.New("redis client not configured")
	}

	data, err := s.redis.Get(ctx, exportID)
	if err != nil {
		return nil, fmt.Errorf("statement %q: %w", exportID, domain.ErrNotFound)
	}

	var status StatementStatus
	if err := json.Unmarshal([]byte(data), &status); err != nil {
		return nil, fmt.Errorf("failed to parse statement status: %w", err)
	}

	if status.AccountNumber != accountNumber {
		return nil, fmt.Errorf("statement %q: %w", exportID, domain.ErrNotFound)
	}

	return &status, nil
}

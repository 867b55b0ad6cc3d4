package clients

import (
	"context"
	"fmt"

	ws "emi-collect/internal/transport/websocket"
)

// WebSocketClient pushes payment and statement events to subscribers of an
// account's channel. All notifications are best-effort.
type WebSocketClient struct {
	hub *ws.Hub
}

func NewWebSocketClient(hub *ws.Hub) *WebSocketClient {
	return &WebSocketClient{hub: hub}
}

func (c *WebSocketClient) NotifyPaymentRecorded(ctx context.Context, accountNumber string, paymentID int64, amount string) error {
	if c.hub == nil {
		return nil
	}

	message := &ws.Message{
		Type:    "payment_recorded",
		Channel: fmt.Sprintf("account_payments#%s", accountNumber),
		Data: map[string]interface{}{
			"payment_id":     paymentID,
			"account_number": accountNumber,
			"payment_amount": amount,
		},
	}

	c.hub.Broadcast(accountNumber, message)
	return nil
}

func (c *WebSocketClient) NotifyStatementProgress(ctx context.Context, accountNumber, exportID string, progress float64, stage string) error {
	if c.hub == nil {
		return nil
	}

	data := map[string]interface{}{
		"id":       exportID,
		"progress": progress,
	}
	if stage != "" {
		data["stage"] = stage
	}

	message := &ws.Message{
		Type:    "statement_progress",
		Channel: fmt.Sprintf("account_statement_progress#%s", accountNumber),
		Data:    data,
	}

	c.hub.Broadcast(accountNumber, message)
	return nil
}

func (c *WebSocketClient) NotifyStatementComplete(ctx context.Context, accountNumber, exportID, url, filename string) error {
	if c.hub == nil {
		return nil
	}

	message := &ws.Message{
		Type:    "statement_complete",
		Channel: fmt.Sprintf("account_statement_complete#%s", accountNumber),
		Data: map[string]interface{}{
			"id":             exportID,
			"url":            url,
			"filename":       filename,
			"account_number": accountNumber,
		},
	}

	c.hub.Broadcast(accountNumber, message)
	return nil
}

func (c *WebSocketClient) NotifyStatementFailed(ctx context.Context, accountNumber, exportID, errMsg string) error {
	if c.hub == nil {
		return nil
	}

	message := &ws.Message{
		Type:    "statement_failed",
		Channel: fmt.Sprintf("account_statement_failed#%s", accountNumber),
		Data: map[string]interface{}{
			"id":             exportID,
			"message":        errMsg,
			"account_number": accountNumber,
		},
	}

	c.hub.Broadcast(accountNumber, message)
	return nil
}

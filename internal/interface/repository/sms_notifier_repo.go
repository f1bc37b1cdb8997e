package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hundvakt-service/internal/domain/repository"
	"hundvakt-service/pkg/logger"
)

// SMSNotifierRepository delivers pickup messages through an external SMS
// gateway. Sends are best-effort; a failure is returned for logging but the
// caller never mutates state because of it.
type SMSNotifierRepository struct {
	logger      logger.Logger
	baseURL     string
	bearerToken string
	client      *http.Client
}

// NewSMSNotifierRepository creates a new SMS notifier repository
func NewSMSNotifierRepository(baseURL, bearerToken string, logger logger.Logger) repository.PickupNotifier {
	return &SMSNotifierRepository{
		logger:      logger,
		baseURL:     baseURL,
		bearerToken: bearerToken,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

type smsMessage struct {
	PhoneNumber string `json:"phoneNumber"`
	Message     string `json:"message"`
	Type        string `json:"type"`
}

// SendPickupMessage posts the message to the gateway.
func (r *SMSNotifierRepository) SendPickupMessage(ctx context.Context, phone, message string) error {
	if r.baseURL == "" {
		return fmt.Errorf("sms gateway not configured")
	}

	msg := smsMessage{
		PhoneNumber: phone,
		Message:     message,
		Type:        "text",
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal sms message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+r.bearerToken)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}

	r.logger.Debug("Pickup message sent", "phone", phone)
	return nil
}

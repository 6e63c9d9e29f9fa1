package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Sender отправляет SMS с кодом подтверждения
type Sender interface {
	Send(ctx context.Context, to string, body string) error
}

// WebhookSender отправляет SMS через HTTP webhook SMS-провайдера
type WebhookSender struct {
	url        string
	token      string
	httpClient *http.Client
}

// NewWebhookSender creates a sender posting messages to the provider webhook
func NewWebhookSender(url, token string) *WebhookSender {
	return &WebhookSender{
		url:   strings.TrimSpace(url),
		token: strings.TrimSpace(token),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Send posts the message to the webhook
func (s *WebhookSender) Send(ctx context.Context, to string, body string) error {
	if s.url == "" {
		return errors.New("sms: webhook url not configured")
	}

	payload, err := json.Marshal(map[string]string{
		"to":   to,
		"body": body,
	})
	if err != nil {
		return fmt.Errorf("sms: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("sms: create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sms: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sms: webhook returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// LogSender пишет код в лог вместо реальной отправки.
// Используется в development-окружении, когда webhook не настроен.
type LogSender struct {
	log Logger
}

// NewLogSender creates a sender that only logs outgoing messages
func NewLogSender(log Logger) *LogSender {
	return &LogSender{log: log}
}

// Send logs the message instead of delivering it
func (s *LogSender) Send(_ context.Context, to string, body string) error {
	s.log.Info("sms (dev): to=%s body=%q", to, body)
	return nil
}

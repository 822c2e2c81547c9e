package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Gateway delivers a rendered message to a phone number. Callers must
// treat a returned error as non-fatal for the surrounding workflow:
// the status change or booking that triggered the message still
// stands. No retries happen at this layer.
type Gateway interface {
	Send(ctx context.Context, phoneNumber, message string) error
}

// GatewayConfig selects and configures a gateway implementation.
type GatewayConfig struct {
	Provider     string // "log" (default), "noop", "fail", "webhook"
	WebhookURL   string
	WebhookToken string
	SendDelay    time.Duration // simulated latency of the log gateway
}

// NewGateway returns the Gateway for the configured provider kind.
// Unknown kinds fall back to the logging stub so a misconfigured
// deployment degrades to visible no-ops rather than crashing.
func NewGateway(cfg GatewayConfig) Gateway {
	switch cfg.Provider {
	case "", "stub", "log":
		return logGateway{delay: cfg.SendDelay}
	case "noop":
		return noopGateway{}
	case "fail":
		return failGateway{}
	case "webhook":
		if cfg.WebhookURL == "" {
			return logGateway{delay: cfg.SendDelay}
		}
		return webhookGateway{url: cfg.WebhookURL, token: cfg.WebhookToken}
	default:
		return logGateway{delay: cfg.SendDelay}
	}
}

// logGateway is the stand-in transport: it logs the message, waits for
// the configured simulated latency and reports success.
type logGateway struct {
	delay time.Duration
}

func (g logGateway) Send(ctx context.Context, phoneNumber, message string) error {
	log.Info().Str("to", phoneNumber).Str("message", message).Msg("sms send (stub)")
	if g.delay <= 0 {
		return nil
	}
	select {
	case <-time.After(g.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type noopGateway struct{}

func (noopGateway) Send(ctx context.Context, phoneNumber, message string) error {
	return nil
}

// failGateway simulates a transport outage.
type failGateway struct{}

func (failGateway) Send(ctx context.Context, phoneNumber, message string) error {
	return errors.New("sms gateway failure")
}

// webhookGateway POSTs the message to an external SMS relay.
type webhookGateway struct {
	url   string
	token string
}

func (g webhookGateway) Send(ctx context.Context, phoneNumber, message string) error {
	payload := map[string]string{
		"recipient": phoneNumber,
		"message":   message,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return errors.New("sms gateway rejected request")
	}
	return nil
}

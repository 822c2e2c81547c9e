package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGatewayProviderSelection(t *testing.T) {
	assert.IsType(t, logGateway{}, NewGateway(GatewayConfig{}))
	assert.IsType(t, logGateway{}, NewGateway(GatewayConfig{Provider: "log"}))
	assert.IsType(t, logGateway{}, NewGateway(GatewayConfig{Provider: "something-else"}))
	assert.IsType(t, noopGateway{}, NewGateway(GatewayConfig{Provider: "noop"}))
	assert.IsType(t, failGateway{}, NewGateway(GatewayConfig{Provider: "fail"}))

	// Webhook without a URL degrades to the logging stub.
	assert.IsType(t, logGateway{}, NewGateway(GatewayConfig{Provider: "webhook"}))
	assert.IsType(t, webhookGateway{}, NewGateway(GatewayConfig{Provider: "webhook", WebhookURL: "http://relay.local"}))
}

func TestLogGatewayAlwaysSucceeds(t *testing.T) {
	g := NewGateway(GatewayConfig{Provider: "log"})
	assert.NoError(t, g.Send(context.Background(), "+8801712345678", "hello"))
}

func TestFailGatewayAlwaysFails(t *testing.T) {
	g := NewGateway(GatewayConfig{Provider: "fail"})
	assert.Error(t, g.Send(context.Background(), "+8801712345678", "hello"))
}

func TestWebhookGatewaySend(t *testing.T) {
	var received map[string]string
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	g := NewGateway(GatewayConfig{Provider: "webhook", WebhookURL: server.URL, WebhookToken: "secret"})
	err := g.Send(context.Background(), "+8801898765432", "Reminder: today at 11:30 AM")

	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "+8801898765432", received["recipient"])
	assert.Equal(t, "Reminder: today at 11:30 AM", received["message"])
}

func TestWebhookGatewayRejectedRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	g := NewGateway(GatewayConfig{Provider: "webhook", WebhookURL: server.URL})
	assert.Error(t, g.Send(context.Background(), "+8801898765432", "hello"))
}

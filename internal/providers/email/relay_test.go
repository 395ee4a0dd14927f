package email

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelaySend_PostsExpectedPayload(t *testing.T) {
	var got relayRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/send-email", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(relayResponse{Success: true, Message: "sent"})
	}))
	defer server.Close()

	provider := NewRelay(server.URL)
	err := provider.Send(context.Background(), Message{
		From:         "billing@acme.example",
		To:           "jane@example.com",
		Subject:      "Invoice INV-8",
		Text:         "Please find attached.",
		BusinessName: "Acme Studio",
		Attachments: []Attachment{
			{Filename: "Invoice_INV-8.pdf", Content: []byte("%PDF-1.4")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", got.To)
	assert.Equal(t, "Invoice INV-8", got.Subject)
	assert.Equal(t, "Acme Studio", got.BusinessName)
	require.Len(t, got.Attachments, 1)
	assert.Equal(t, "Invoice_INV-8.pdf", got.Attachments[0].Filename)
	assert.Equal(t, "base64", got.Attachments[0].Encoding)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("%PDF-1.4")), got.Attachments[0].Content)
}

func TestRelaySend_RejectedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(relayResponse{Success: false, Message: "invalid recipient"})
	}))
	defer server.Close()

	err := NewRelay(server.URL).Send(context.Background(), Message{To: "jane@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid recipient")
}

func TestRelaySend_HTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	err := NewRelay(server.URL).Send(context.Background(), Message{To: "jane@example.com"})
	assert.Error(t, err)
}

func TestRelaySend_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	err := NewRelay(server.URL).Send(context.Background(), Message{To: "jane@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable")
}

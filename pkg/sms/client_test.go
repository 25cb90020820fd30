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

func TestClient_Send_Success(t *testing.T) {
	var got sendMessageRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message_id":"msg-1"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", "FARMKONNECT", 0)

	id, err := c.Send(context.Background(), "+254700000001", "Frost: cover seedlings")
	require.NoError(t, err)

	assert.Equal(t, "msg-1", id)
	assert.Equal(t, "+254700000001", got.To)
	assert.Equal(t, "FARMKONNECT", got.From)
	assert.Equal(t, "Frost: cover seedlings", got.Text)
}

func TestClient_Send_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "FARMKONNECT", 0)

	_, err := c.Send(context.Background(), "+254700000001", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestClient_Send_EmptyResponseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	id, err := NewClient(srv.URL, "", "", 0).Send(context.Background(), "+1", "hi")
	require.NoError(t, err)
	assert.Empty(t, id)
}

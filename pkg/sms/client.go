// Package sms provides a simple client for sending notifications through an
// HTTP SMS gateway.
//
// The gateway is expected to accept a JSON body with the recipient number,
// the sender ID and the text, authenticated with a bearer API key, and to
// answer with the provider's message ID.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client represents an SMS gateway client used to send notifications.
type Client struct {
	baseURL  string       // gateway endpoint, e.g. https://sms.example.com/v1/messages
	apiKey   string       // bearer token for authentication
	senderID string       // alphanumeric sender shown on the handset
	client   *http.Client // HTTP client used to make requests
}

// NewClient creates a new SMS gateway Client.
func NewClient(baseURL, apiKey, senderID string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:  baseURL,
		apiKey:   apiKey,
		senderID: senderID,
		client:   &http.Client{Timeout: timeout},
	}
}

// sendMessageRequest represents the payload of the gateway send call.
type sendMessageRequest struct {
	To   string `json:"to"`   // recipient phone number in E.164 format
	From string `json:"from"` // sender ID
	Text string `json:"text"` // message text
}

// sendMessageResponse is the gateway answer to a successful send.
type sendMessageResponse struct {
	MessageID string `json:"message_id"`
}

// Send sends msg to the phone number to and returns the gateway message ID.
//
// It returns an error if the request fails or the gateway responds with a
// non-2xx status.
func (c *Client) Send(ctx context.Context, to string, msg string) (string, error) {
	body, err := json.Marshal(sendMessageRequest{
		To:   to,
		From: c.senderID,
		Text: msg,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("sms gateway error: %s", resp.Status)
	}

	var out sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		// The message was accepted; a missing ID is not a delivery failure.
		return "", nil
	}

	return out.MessageID, nil
}

package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ContentTypeHTML  = "text/html"
	ContentTypePlain = "text/plain"
)

// ContentTypeFor returns the payload content type rendered for channel c.
func ContentTypeFor(c Channel) string {
	if c == ChannelEmail {
		return ContentTypeHTML
	}
	return ContentTypePlain
}

// Payload is the rendered, channel-specific content of a notification.
type Payload struct {
	Subject     string   `json:"subject"`
	Body        string   `json:"body"`
	ContentType string   `json:"content_type"`
	Severity    Severity `json:"severity,omitempty"`
}

// DeliveryResult is what a channel provider reports for a single send.
type DeliveryResult struct {
	Success   bool   `json:"success"`
	Provider  string `json:"provider"`
	MessageID string `json:"message_id,omitempty"`
}

// PushMessage is the wire message carried by the push transport.
type PushMessage struct {
	ID       uuid.UUID `json:"id"`
	UserID   string    `json:"user_id"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	SentAt   time.Time `json:"sent_at"`
	Severity Severity  `json:"severity,omitempty"`
}

// ChannelOutcome describes what happened to one channel of a send.
type ChannelOutcome struct {
	Channel  Channel    `json:"channel"`
	RecordID *uuid.UUID `json:"record_id,omitempty"`
	Status   Status     `json:"status,omitempty"`
	Skipped  bool       `json:"skipped,omitempty"`
	Reason   string     `json:"reason,omitempty"`
	Error    string     `json:"error,omitempty"` // set when no record could be stored
}

// DeliveryResults is the caller-facing result of SendNotification.
type DeliveryResults struct {
	RecipientID string           `json:"recipient_id"`
	Channels    []ChannelOutcome `json:"channels"`
}

// Attempted returns the channels for which a record was created.
func (r DeliveryResults) Attempted() []Channel {
	out := make([]Channel, 0, len(r.Channels))
	for _, c := range r.Channels {
		if !c.Skipped && c.RecordID != nil {
			out = append(out, c.Channel)
		}
	}
	return out
}

// SweepResult counts the outcome of one retry sweep.
//
// A record that exhausts its retries is counted in Failed only, so
// Successful+Scheduled+Failed never exceeds Processed.
type SweepResult struct {
	Processed  int `json:"processed"`
	Successful int `json:"successful"`
	Scheduled  int `json:"scheduled"`
	Failed     int `json:"failed"`
}

// RetryStatistics aggregates the retry history of all records.
type RetryStatistics struct {
	TotalFailed    int     `json:"total_failed"`
	TotalRetried   int     `json:"total_retried"`
	AverageRetries float64 `json:"average_retries"`
	SuccessRate    float64 `json:"success_rate"` // percent of retried records that were delivered
}

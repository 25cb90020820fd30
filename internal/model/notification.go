package model

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a notification record.
type Status string

const (
	StatusPending   Status = "pending"   // awaiting or undergoing delivery
	StatusDelivered Status = "delivered" // terminal success
	StatusFailed    Status = "failed"    // terminal, retries exhausted
)

// IsTerminal reports whether no further automatic transition is allowed from s.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusFailed
}

// Channel is a delivery medium for a notification.
type Channel string

const (
	ChannelPush  Channel = "push"
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// Valid reports whether c is a known channel.
func (c Channel) Valid() bool {
	switch c {
	case ChannelPush, ChannelEmail, ChannelSMS:
		return true
	}
	return false
}

// Severity is the urgency tier of a notification.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityCritical:
		return true
	}
	return false
}

// NotificationRequest is the ephemeral input of a send. It is not persisted.
type NotificationRequest struct {
	RecipientID string    `json:"recipient_id"`       // user to notify
	Title       string    `json:"title"`              // short headline
	Message     string    `json:"message"`            // body text
	Severity    Severity  `json:"severity"`           // info, warning or critical
	Category    string    `json:"category"`           // e.g. "weather_alert", "livestock"
	Channels    []Channel `json:"channels,omitempty"` // explicit channel list, overrides the severity policy
}

// NotificationRecord is one persisted delivery lineage for a single channel.
type NotificationRecord struct {
	ID           uuid.UUID  `json:"id"`
	Category     string     `json:"category"`
	Severity     Severity   `json:"severity"`
	Channel      Channel    `json:"channel"`
	RecipientID  string     `json:"recipient_id"`
	Endpoint     string     `json:"endpoint"` // email address, phone number or push address
	Subject      string     `json:"subject"`
	Body         string     `json:"body"`
	Status       Status     `json:"status"`
	RetryCount   int        `json:"retry_count"`
	NextRetryAt  *time.Time `json:"next_retry_at,omitempty"` // nil until the first failed attempt
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
	ReadAt       *time.Time `json:"read_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Payload returns the channel payload stored on the record.
func (r NotificationRecord) Payload() Payload {
	return Payload{
		Subject:     r.Subject,
		Body:        r.Body,
		ContentType: ContentTypeFor(r.Channel),
		Severity:    r.Severity,
	}
}

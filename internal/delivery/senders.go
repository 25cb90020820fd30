package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/farmkonnect-notifier/internal/model"
)

// Provider tags reported in DeliveryResult.
const (
	ProviderSMTP     = "smtp"
	ProviderSMS      = "sms-gateway"
	ProviderRabbitMQ = "rabbitmq"
	ProviderHub      = "websocket"
	ProviderLog      = "log"
)

type emailClient interface {
	Send(to, subject, contentType, body string) error
}

type smsClient interface {
	Send(ctx context.Context, to string, msg string) (string, error)
}

type pushPublisher interface {
	Publish(msg model.PushMessage, strategy retry.Strategy) error
}

// EmailSender delivers payloads over SMTP.
type EmailSender struct {
	client emailClient
}

func NewEmailSender(c emailClient) *EmailSender {
	return &EmailSender{client: c}
}

func (s *EmailSender) Send(_ context.Context, to string, payload model.Payload) (model.DeliveryResult, error) {
	if err := s.client.Send(to, payload.Subject, payload.ContentType, payload.Body); err != nil {
		return model.DeliveryResult{Provider: ProviderSMTP}, fmt.Errorf("send email: %w", err)
	}

	return model.DeliveryResult{Success: true, Provider: ProviderSMTP}, nil
}

// SMSSender delivers plain-text payloads through the SMS gateway.
type SMSSender struct {
	client smsClient
}

func NewSMSSender(c smsClient) *SMSSender {
	return &SMSSender{client: c}
}

func (s *SMSSender) Send(ctx context.Context, to string, payload model.Payload) (model.DeliveryResult, error) {
	id, err := s.client.Send(ctx, to, payload.Body)
	if err != nil {
		return model.DeliveryResult{Provider: ProviderSMS}, fmt.Errorf("send sms: %w", err)
	}

	return model.DeliveryResult{Success: true, Provider: ProviderSMS, MessageID: id}, nil
}

// PushSender hands push payloads to the push transport, either the
// RabbitMQ queue or the in-process websocket hub.
type PushSender struct {
	publisher pushPublisher
	strategy  retry.Strategy
	provider  string
	now       func() time.Time
}

func NewPushSender(p pushPublisher, strategy retry.Strategy, provider string) *PushSender {
	return &PushSender{publisher: p, strategy: strategy, provider: provider, now: time.Now}
}

func (s *PushSender) Send(_ context.Context, to string, payload model.Payload) (model.DeliveryResult, error) {
	msg := model.PushMessage{
		ID:       uuid.New(),
		UserID:   to,
		Title:    payload.Subject,
		Body:     payload.Body,
		SentAt:   s.now(),
		Severity: payload.Severity,
	}

	if err := s.publisher.Publish(msg, s.strategy); err != nil {
		return model.DeliveryResult{Provider: s.provider}, fmt.Errorf("publish push: %w", err)
	}

	return model.DeliveryResult{Success: true, Provider: s.provider, MessageID: msg.ID.String()}, nil
}

// LogSender is the placeholder provider for channels whose real provider
// is not configured. It logs the payload and always reports success.
type LogSender struct {
	channel model.Channel
}

func NewLogSender(ch model.Channel) *LogSender {
	return &LogSender{channel: ch}
}

func (s *LogSender) Send(_ context.Context, to string, payload model.Payload) (model.DeliveryResult, error) {
	zlog.Logger.Info().
		Str("channel", string(s.channel)).
		Str("to", to).
		Str("subject", payload.Subject).
		Msg("provider not configured, notification logged instead of sent")

	return model.DeliveryResult{Success: true, Provider: ProviderLog}, nil
}

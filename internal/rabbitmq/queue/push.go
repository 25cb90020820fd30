package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/farmkonnect-notifier/internal/model"
)

const (
	ExchangeName  = "notify-push-exchange"
	MainQueueName = "notify-push"
	DLQName       = "notify-push-dlq"
	RoutingKey    = "push"
)

// PushQueue carries push messages from the delivery adapter to the
// dispatcher workers.
type PushQueue struct {
	Publisher *rabbitmq.Publisher
	Consumer  *rabbitmq.Consumer
}

// NewPushQueue declares the push exchange, the main queue and its
// dead-letter queue on ch.
func NewPushQueue(ch *rabbitmq.Channel) (*PushQueue, error) {
	exchange := rabbitmq.NewExchange(ExchangeName, "direct")
	if err := exchange.BindToChannel(ch); err != nil {
		return nil, fmt.Errorf("failed to bind to exchange: %w", err)
	}

	qm := rabbitmq.NewQueueManager(ch)

	_, err := qm.DeclareQueue(DLQName, rabbitmq.QueueConfig{Durable: true})
	if err != nil {
		return nil, fmt.Errorf("failed to declare DLQ queue: %w", err)
	}

	mainArgs := map[string]interface{}{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": DLQName,
	}

	mainQ, err := qm.DeclareQueue(MainQueueName, rabbitmq.QueueConfig{
		Durable: true,
		Args:    mainArgs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to declare main queue: %w", err)
	}

	if err := ch.QueueBind(mainQ.Name, RoutingKey, exchange.Name(), false, nil); err != nil {
		return nil, fmt.Errorf("failed to bind the exchange to the main queue: %w", err)
	}

	pub := rabbitmq.NewPublisher(ch, exchange.Name())
	cons := rabbitmq.NewConsumer(ch, rabbitmq.NewConsumerConfig(mainQ.Name))

	return &PushQueue{Publisher: pub, Consumer: cons}, nil
}

// Publish sends msg to the push exchange.
func (q *PushQueue) Publish(msg model.PushMessage, strategy retry.Strategy) error {
	body, err := EncodeMessage(msg)
	if err != nil {
		return err
	}

	return q.Publisher.PublishWithRetry(body, RoutingKey, "application/json", strategy)
}

// Consume decodes queued messages into out until ctx is cancelled.
// Malformed messages are logged and skipped.
func (q *PushQueue) Consume(ctx context.Context, out chan<- model.PushMessage, strategy retry.Strategy) error {
	msgChan := make(chan []byte)

	go forward(ctx, msgChan, out)

	return q.Consumer.ConsumeWithRetry(msgChan, strategy)
}

func forward(ctx context.Context, in <-chan []byte, out chan<- model.PushMessage) {
	for {
		select {
		case <-ctx.Done():
			return
		case body, ok := <-in:
			if !ok {
				return
			}

			msg, err := DecodeMessage(body)
			if err != nil {
				zlog.Logger.Error().Err(err).Msg("failed to unmarshal message")
				continue
			}

			select {
			case out <- msg:
			case <-ctx.Done():
				return
			}
		}
	}
}

// EncodeMessage returns the wire form of msg.
func EncodeMessage(msg model.PushMessage) ([]byte, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	return body, nil
}

// DecodeMessage parses a queued message. A message without a user ID is
// rejected since it cannot be routed.
func DecodeMessage(body []byte) (model.PushMessage, error) {
	var msg model.PushMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return model.PushMessage{}, fmt.Errorf("failed to unmarshal message: %w", err)
	}

	if msg.UserID == "" {
		return model.PushMessage{}, fmt.Errorf("message %s has no user id", msg.ID)
	}

	return msg, nil
}

// Package delivery abstracts the outbound notification channels behind a
// single send interface.
//
// Each channel is served by an independent Sender; the Adapter resolves a
// channel through a lookup table. No retries happen here, retry
// orchestration belongs to the scheduler.
package delivery

import (
	"context"
	"errors"
	"fmt"

	"github.com/aliskhannn/farmkonnect-notifier/internal/metrics"
	"github.com/aliskhannn/farmkonnect-notifier/internal/model"
)

// ErrUnsupportedChannel is returned for a channel with no registered sender.
var ErrUnsupportedChannel = errors.New("unsupported channel")

// Sender delivers a rendered payload to one endpoint of a channel.
type Sender interface {
	Send(ctx context.Context, to string, payload model.Payload) (model.DeliveryResult, error)
}

// Adapter dispatches deliveries to the Sender registered for each channel.
type Adapter struct {
	senders map[model.Channel]Sender
}

// NewAdapter creates an Adapter over the given channel senders.
func NewAdapter(senders map[model.Channel]Sender) *Adapter {
	table := make(map[model.Channel]Sender, len(senders))
	for ch, s := range senders {
		if s != nil {
			table[ch] = s
		}
	}

	return &Adapter{senders: table}
}

// Supports reports whether a sender is registered for ch.
func (a *Adapter) Supports(ch model.Channel) bool {
	_, ok := a.senders[ch]
	return ok
}

// Deliver sends payload to endpoint over ch.
//
// A sender reporting Success=false without an error is turned into an
// error so callers only have to check one value.
func (a *Adapter) Deliver(ctx context.Context, ch model.Channel, to string, payload model.Payload) (model.DeliveryResult, error) {
	sender, ok := a.senders[ch]
	if !ok {
		return model.DeliveryResult{}, fmt.Errorf("%w: %s", ErrUnsupportedChannel, ch)
	}

	res, err := sender.Send(ctx, to, payload)
	if err == nil && !res.Success {
		err = fmt.Errorf("%s provider %q reported failure", ch, res.Provider)
	}

	result := "success"
	if err != nil {
		result = "failure"
	}
	metrics.DeliveriesTotal.WithLabelValues(string(ch), res.Provider, result).Inc()

	if err != nil {
		return res, fmt.Errorf("deliver %s: %w", ch, err)
	}

	return res, nil
}

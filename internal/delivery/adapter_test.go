package delivery

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/retry"

	"github.com/aliskhannn/farmkonnect-notifier/internal/model"
)

type senderFunc func(ctx context.Context, to string, p model.Payload) (model.DeliveryResult, error)

func (f senderFunc) Send(ctx context.Context, to string, p model.Payload) (model.DeliveryResult, error) {
	return f(ctx, to, p)
}

type fakeEmail struct {
	to, subject, contentType, body string
	err                            error
}

func (f *fakeEmail) Send(to, subject, contentType, body string) error {
	f.to, f.subject, f.contentType, f.body = to, subject, contentType, body
	return f.err
}

type fakeSMS struct {
	to, text string
	err      error
}

func (f *fakeSMS) Send(_ context.Context, to, msg string) (string, error) {
	f.to, f.text = to, msg
	return "sms-1", f.err
}

type fakePublisher struct {
	msgs []model.PushMessage
	err  error
}

func (f *fakePublisher) Publish(msg model.PushMessage, _ retry.Strategy) error {
	f.msgs = append(f.msgs, msg)
	return f.err
}

func TestAdapter_Deliver_RoutesByChannel(t *testing.T) {
	var gotTo string
	a := NewAdapter(map[model.Channel]Sender{
		model.ChannelPush: senderFunc(func(_ context.Context, to string, _ model.Payload) (model.DeliveryResult, error) {
			gotTo = to
			return model.DeliveryResult{Success: true, Provider: "test"}, nil
		}),
	})

	res, err := a.Deliver(context.Background(), model.ChannelPush, "farmer-1", model.Payload{Body: "hi"})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "farmer-1", gotTo)
	assert.True(t, a.Supports(model.ChannelPush))
	assert.False(t, a.Supports(model.ChannelSMS))
}

func TestAdapter_Deliver_UnsupportedChannel(t *testing.T) {
	a := NewAdapter(map[model.Channel]Sender{model.ChannelEmail: nil})

	_, err := a.Deliver(context.Background(), model.ChannelEmail, "x", model.Payload{})
	assert.ErrorIs(t, err, ErrUnsupportedChannel)
}

func TestAdapter_Deliver_ReportedFailureBecomesError(t *testing.T) {
	a := NewAdapter(map[model.Channel]Sender{
		model.ChannelSMS: senderFunc(func(context.Context, string, model.Payload) (model.DeliveryResult, error) {
			return model.DeliveryResult{Success: false, Provider: "gw"}, nil
		}),
	})

	_, err := a.Deliver(context.Background(), model.ChannelSMS, "+1", model.Payload{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reported failure")
}

func TestAdapter_Deliver_WrapsSenderError(t *testing.T) {
	boom := errors.New("smtp down")
	a := NewAdapter(map[model.Channel]Sender{model.ChannelEmail: NewEmailSender(&fakeEmail{err: boom})})

	_, err := a.Deliver(context.Background(), model.ChannelEmail, "a@b.c", model.Payload{})
	assert.ErrorIs(t, err, boom)
}

func TestEmailSender_Send(t *testing.T) {
	client := &fakeEmail{}
	s := NewEmailSender(client)

	res, err := s.Send(context.Background(), "farmer@example.com", model.Payload{
		Subject: "[WARNING] Locusts", Body: "<p>swarm</p>", ContentType: model.ContentTypeHTML,
	})
	require.NoError(t, err)

	assert.Equal(t, model.DeliveryResult{Success: true, Provider: ProviderSMTP}, res)
	assert.Equal(t, "farmer@example.com", client.to)
	assert.Equal(t, "[WARNING] Locusts", client.subject)
	assert.Equal(t, model.ContentTypeHTML, client.contentType)
}

func TestSMSSender_Send(t *testing.T) {
	client := &fakeSMS{}

	res, err := NewSMSSender(client).Send(context.Background(), "+254700000001", model.Payload{Body: "Frost: cover seedlings"})
	require.NoError(t, err)

	assert.Equal(t, "sms-1", res.MessageID)
	assert.Equal(t, "Frost: cover seedlings", client.text)

	client.err = errors.New("gateway down")
	_, err = NewSMSSender(client).Send(context.Background(), "+1", model.Payload{})
	assert.Error(t, err)
}

func TestPushSender_Send(t *testing.T) {
	pub := &fakePublisher{}
	s := NewPushSender(pub, retry.Strategy{Attempts: 1}, ProviderRabbitMQ)

	res, err := s.Send(context.Background(), "farmer-1", model.Payload{
		Subject: "Rain", Body: "Rain: 20mm expected", Severity: model.SeverityWarning,
	})
	require.NoError(t, err)

	require.Len(t, pub.msgs, 1)
	assert.Equal(t, "farmer-1", pub.msgs[0].UserID)
	assert.Equal(t, "Rain", pub.msgs[0].Title)
	assert.Equal(t, model.SeverityWarning, pub.msgs[0].Severity)
	assert.Equal(t, pub.msgs[0].ID.String(), res.MessageID)
	assert.Equal(t, ProviderRabbitMQ, res.Provider)

	pub.err = errors.New("channel closed")
	_, err = s.Send(context.Background(), "farmer-1", model.Payload{})
	assert.Error(t, err)
}

func TestLogSender_AlwaysSucceeds(t *testing.T) {
	res, err := NewLogSender(model.ChannelSMS).Send(context.Background(), "+1", model.Payload{Subject: "x"})
	require.NoError(t, err)
	assert.Equal(t, model.DeliveryResult{Success: true, Provider: ProviderLog}, res)
}

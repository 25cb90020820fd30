package push

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"

	mocks "github.com/aliskhannn/farmkonnect-notifier/internal/mocks/rabbitmq/handlers/push"
	"github.com/aliskhannn/farmkonnect-notifier/internal/model"
	"github.com/aliskhannn/farmkonnect-notifier/internal/push"
)

func TestHandler_HandleMessage_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHub := mocks.NewMockpushDeliverer(ctrl)
	h := NewHandler(mockHub)

	msg := model.PushMessage{ID: uuid.New(), UserID: "farmer-1", Body: "Rain: 20mm"}
	strategy := retry.Strategy{Attempts: 3, Delay: time.Millisecond, Backoff: 1}

	mockHub.EXPECT().Deliver(gomock.Any(), msg).Return(nil)

	h.HandleMessage(context.Background(), msg, strategy)
}

func TestHandler_HandleMessage_RetriesUntilConnected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHub := mocks.NewMockpushDeliverer(ctrl)
	h := NewHandler(mockHub)

	msg := model.PushMessage{ID: uuid.New(), UserID: "farmer-1"}
	strategy := retry.Strategy{Attempts: 3, Delay: time.Millisecond, Backoff: 1}

	gomock.InOrder(
		mockHub.EXPECT().Deliver(gomock.Any(), msg).Return(push.ErrNotConnected),
		mockHub.EXPECT().Deliver(gomock.Any(), msg).Return(nil),
	)

	h.HandleMessage(context.Background(), msg, strategy)
}

func TestHandler_HandleMessage_GivesUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHub := mocks.NewMockpushDeliverer(ctrl)
	h := NewHandler(mockHub)

	msg := model.PushMessage{ID: uuid.New(), UserID: "farmer-1"}
	strategy := retry.Strategy{Attempts: 2, Delay: time.Millisecond, Backoff: 1}

	mockHub.EXPECT().Deliver(gomock.Any(), msg).Return(errors.New("buffer full")).MinTimes(1)

	h.HandleMessage(context.Background(), msg, strategy)
}

func TestHandler_HandleMessage_CancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewHandler(mocks.NewMockpushDeliverer(ctrl))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h.HandleMessage(ctx, model.PushMessage{ID: uuid.New()}, retry.Strategy{Attempts: 2, Delay: time.Millisecond})
}

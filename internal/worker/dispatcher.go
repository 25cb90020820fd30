package worker

import (
	"context"
	"sync"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/farmkonnect-notifier/internal/model"
)

//go:generate mockgen -source=dispatcher.go -destination=../mocks/worker/mock.go -package=mocks
type pushConsumer interface {
	Consume(ctx context.Context, out chan<- model.PushMessage, strategy retry.Strategy) error
}

type messageHandler interface {
	HandleMessage(ctx context.Context, msg model.PushMessage, strategy retry.Strategy)
}

// Dispatcher fans consumed push messages out to a pool of workers.
type Dispatcher struct {
	queue   pushConsumer
	handler messageHandler
}

func NewDispatcher(q pushConsumer, h messageHandler) *Dispatcher {
	return &Dispatcher{
		queue:   q,
		handler: h,
	}
}

// Run consumes the push queue with workerCount workers and blocks until
// ctx is cancelled and every worker has returned.
func (d *Dispatcher) Run(ctx context.Context, strategy retry.Strategy, workerCount int) {
	var wg sync.WaitGroup
	msgChan := make(chan model.PushMessage, workerCount*10)

	go func() {
		if err := d.queue.Consume(ctx, msgChan, strategy); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to consume push messages")
		}
	}()

	wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go func(id int) {
			defer wg.Done()

			zlog.Logger.Printf("push worker-%d started", id)

			for {
				select {
				case <-ctx.Done():
					zlog.Logger.Printf("push worker-%d shutting down", id)
					return
				case msg, ok := <-msgChan:
					if !ok {
						zlog.Logger.Printf("push worker-%d channel closed, shutting down", id)
						return
					}

					d.handler.HandleMessage(ctx, msg, strategy)
				}
			}
		}(i)
	}

	<-ctx.Done()
	wg.Wait()
	zlog.Logger.Print("push dispatcher stopped")
}

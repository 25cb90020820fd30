package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/redis"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/farmkonnect-notifier/internal/api/handlers/notification"
	"github.com/aliskhannn/farmkonnect-notifier/internal/api/handlers/preferences"
	pushapi "github.com/aliskhannn/farmkonnect-notifier/internal/api/handlers/push"
	"github.com/aliskhannn/farmkonnect-notifier/internal/api/router"
	"github.com/aliskhannn/farmkonnect-notifier/internal/api/server"
	"github.com/aliskhannn/farmkonnect-notifier/internal/cache"
	"github.com/aliskhannn/farmkonnect-notifier/internal/config"
	"github.com/aliskhannn/farmkonnect-notifier/internal/delivery"
	"github.com/aliskhannn/farmkonnect-notifier/internal/model"
	"github.com/aliskhannn/farmkonnect-notifier/internal/push"
	pushmsg "github.com/aliskhannn/farmkonnect-notifier/internal/rabbitmq/handlers/push"
	"github.com/aliskhannn/farmkonnect-notifier/internal/rabbitmq/queue"
	"github.com/aliskhannn/farmkonnect-notifier/internal/scheduler"
	notifsvc "github.com/aliskhannn/farmkonnect-notifier/internal/service/notification"
	"github.com/aliskhannn/farmkonnect-notifier/internal/sweeper"
	"github.com/aliskhannn/farmkonnect-notifier/internal/worker"
	"github.com/aliskhannn/farmkonnect-notifier/pkg/email"
	"github.com/aliskhannn/farmkonnect-notifier/pkg/sms"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()
	cfg := config.Must()
	val := validator.New()

	store, err := openStorage(cfg)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	var cacheStore cache.NopStore
	prefsCache := cache.NewAside[model.UserNotificationPreferences](cacheStore, "prefs", cfg.Cache.PreferencesTTL)
	if cfg.Redis.Enabled {
		rdb := redis.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.Database)
		if err = rdb.Ping(ctx).Err(); err != nil {
			zlog.Logger.Fatal().Err(err).Msg("failed to connect to redis")
		}

		prefsCache = cache.NewAside[model.UserNotificationPreferences](rdb, "prefs", cfg.Cache.PreferencesTTL)
	}

	hub := push.NewHub(push.Options{
		WriteTimeout: cfg.Push.WriteTimeout,
		PingInterval: cfg.Push.PingInterval,
		SendBuffer:   cfg.Push.SendBuffer,
	})

	senders := map[model.Channel]delivery.Sender{
		model.ChannelEmail: delivery.NewLogSender(model.ChannelEmail),
		model.ChannelSMS:   delivery.NewLogSender(model.ChannelSMS),
		model.ChannelPush:  delivery.NewPushSender(hub, cfg.Retry, delivery.ProviderHub),
	}

	if cfg.Email.Enabled {
		emailClient := email.NewClient(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.Username,
			cfg.Email.Password,
			cfg.Email.From,
		)
		senders[model.ChannelEmail] = delivery.NewEmailSender(emailClient)
	}

	if cfg.SMS.Enabled {
		smsClient := sms.NewClient(cfg.SMS.URL, cfg.SMS.APIKey, cfg.SMS.SenderID, cfg.SMS.Timeout)
		senders[model.ChannelSMS] = delivery.NewSMSSender(smsClient)
	}

	closeRabbit := func() {}

	if cfg.RabbitMQ.Enabled {
		conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL(), cfg.RabbitMQ.Retries, cfg.RabbitMQ.Pause)
		if err != nil {
			zlog.Logger.Fatal().Err(err).Msg("failed to connect to rabbitmq")
		}

		ch, err := conn.Channel()
		if err != nil {
			zlog.Logger.Fatal().Err(err).Msg("failed to open channel")
		}

		q, err := queue.NewPushQueue(ch)
		if err != nil {
			zlog.Logger.Fatal().Err(err).Msg("failed to create push queue")
		}

		senders[model.ChannelPush] = delivery.NewPushSender(q, cfg.Retry, delivery.ProviderRabbitMQ)

		dispatcher := worker.NewDispatcher(q, pushmsg.NewHandler(hub))
		go dispatcher.Run(ctx, cfg.Retry, cfg.Workers.Count)

		closeRabbit = func() {
			if err := ch.Close(); err != nil {
				zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ channel")
			}

			if err := conn.Close(); err != nil {
				zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ connection")
			}
		}
	}

	adapter := delivery.NewAdapter(senders)
	sched := scheduler.New(store.records, adapter, cfg.Backoff.Policy(), scheduler.WithBatchSize(cfg.Sweep.BatchSize))
	service := notifsvc.NewService(store.records, store.preferences, sched, prefsCache)

	sw := sweeper.New(cfg.Sweep.Timeout)
	if err := sw.AddJob(cfg.Sweep.Schedule, sweeper.NewRetryJob(service)); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to schedule retry sweep")
	}
	sw.Start()

	r := router.New(
		notification.NewHandler(service, val, cfg),
		preferences.NewHandler(service, val, cfg),
		pushapi.NewHandler(hub),
	)
	s := server.New(cfg.Server.HTTPPort, r)

	go func() {
		zlog.Logger.Info().Str("addr", cfg.Server.HTTPPort).Msg("starting server")
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	zlog.Logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	zlog.Logger.Info().Msg("shutting down server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}

	if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
		zlog.Logger.Info().Msg("timeout exceeded, forcing shutdown")
	}

	sw.Stop()
	hub.Close()
	store.Close()
	closeRabbit()
}

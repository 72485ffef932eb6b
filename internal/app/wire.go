package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/momentalabs/momenta/internal/bus/redis"
	"github.com/momentalabs/momenta/internal/config"
	"github.com/momentalabs/momenta/internal/domain"
	"github.com/momentalabs/momenta/internal/notify"
	"github.com/momentalabs/momenta/internal/platform/delta"
	"github.com/momentalabs/momenta/internal/selector"
	"github.com/momentalabs/momenta/internal/server"
	"github.com/momentalabs/momenta/internal/server/handler"
	"github.com/momentalabs/momenta/internal/server/ws"
	"github.com/momentalabs/momenta/internal/service"
)

// Dependencies holds the long-lived components the App runs.
type Dependencies struct {
	Server *server.Server
	Hub    *ws.Hub
}

// Wire constructs the full dependency graph from the configuration. The
// returned cleanup function closes everything Wire opened, in reverse
// order.
func Wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// Market data client; the base URL comes from config, never from a
	// package constant.
	marketData := delta.NewClient(cfg.Delta.BaseURL)

	sel := selector.New(
		cfg.Trade.UnderlyingAsset,
		cfg.Trade.TargetDTE,
		cfg.Trade.CandidatePoolSize,
	)

	// Decision side channels.
	hub := ws.NewHub(logger)
	streams := []domain.DecisionStream{hub}

	if cfg.Redis.Enabled {
		publisher, err := redis.NewPublisher(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Channel:  cfg.Redis.Channel,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: redis publisher: %w", err)
		}
		closers = append(closers, func() { _ = publisher.Close() })
		streams = append(streams, publisher)
		logger.InfoContext(ctx, "redis decision feed enabled",
			slog.String("channel", cfg.Redis.Channel),
		)
	}

	// Operator notifications.
	var senders []notify.Sender
	if cfg.Notify.TelegramToken != "" && cfg.Notify.TelegramChatID != "" {
		senders = append(senders, notify.NewTelegramSender(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID))
	}
	if cfg.Notify.DiscordWebhookURL != "" {
		senders = append(senders, notify.NewDiscordSender(cfg.Notify.DiscordWebhookURL))
	}
	notifier := notify.NewNotifier(senders, cfg.Notify.Outcomes, logger)

	decisionSvc := service.NewDecisionService(
		marketData,
		sel,
		cfg.Delta.SpotSymbol,
		streams,
		notifier,
		logger,
	)

	srv := server.NewServer(
		server.Config{Port: cfg.Server.Port},
		server.Handlers{
			Health:  handler.NewHealthHandler(),
			Webhook: handler.NewWebhookHandler(decisionSvc, logger),
		},
		hub,
		logger,
	)

	return &Dependencies{Server: srv, Hub: hub}, cleanup, nil
}

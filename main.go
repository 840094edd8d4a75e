package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"rentdir/internal/app"
	"rentdir/internal/config"
	"rentdir/internal/logging"
	"rentdir/internal/services"
	"rentdir/internal/store"
	"rentdir/pkg/rabbitmq"

	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// eventAuditQueue receives a copy of every domain event for logging.
const eventAuditQueue = "rentdir.events.audit"

func main() {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.NewSugar(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatalw("Server stopped with error", "error", err)
	}
}

func run(cfg *config.Config, logger *zap.SugaredLogger) error {
	ctx := context.Background()

	// --- Storage ---
	st, err := store.Open(cfg.StoreDriver, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	logger.Infow("Store ready", "driver", cfg.StoreDriver)

	// --- RabbitMQ (optional) ---
	var publisher services.EventPublisher
	if cfg.EventsEnabled() {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:      cfg.RabbitMQURL,
			Exchange: cfg.RabbitMQExchange,
			Logger:   logger,
		})
		if err != nil {
			return err
		}
		defer mqClient.Close()
		publisher = mqClient

		if err := mqClient.Consume(eventAuditQueue, "#", eventLogger(logger)); err != nil {
			logger.Warnw("Failed to start event consumer", "error", err)
		}
	} else {
		logger.Infow("RABBITMQ_URL not set, domain events disabled")
	}

	a, err := app.New(ctx, app.Deps{
		Config:    cfg,
		Store:     st,
		Logger:    logger,
		Publisher: publisher,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		logger.Infow("Starting server", "port", cfg.Port, "env", cfg.Env)
		serverErr <- a.Fiber.Listen(cfg.Port)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		logger.Infow("Shutting down server", "signal", sig.String())
	}

	if err := a.Fiber.Shutdown(); err != nil {
		logger.Errorw("Error during Fiber shutdown", "error", err)
	}
	logger.Infow("Server gracefully stopped")
	return nil
}

// eventLogger logs every delivered domain event. Bodies that are not JSON
// are rejected.
func eventLogger(logger *zap.SugaredLogger) func(amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		var payload map[string]any
		if err := json.Unmarshal(msg.Body, &payload); err != nil {
			return fmt.Errorf("malformed event %s: %w", msg.MessageId, err)
		}
		logger.Infow("Received event", "routingKey", msg.RoutingKey, "messageID", msg.MessageId, "payload", payload)
		return nil
	}
}

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/feedsight/feedsight/config"
	"github.com/feedsight/feedsight/internal/clients"
	"github.com/feedsight/feedsight/internal/clients/kafka_client"
	"github.com/feedsight/feedsight/internal/consumers"
	"github.com/feedsight/feedsight/internal/db"
	"github.com/feedsight/feedsight/internal/logging"
)

func main() {
	env := config.EnvOr("APP_ENV", "dev")
	config.LoadEnv(env)
	logging.InitLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	clients.InitValkey()
	defer clients.CloseValkey()
	db.InitDynamoDB()

	cfg := kafka_client.GetKafkaConfig()
	cfg.Topic = kafka_client.KAFKA_TOPIC_FEEDBACK_INTAKE

	kafka_client.RegisterConsumer(kafka_client.KAFKA_TOPIC_FEEDBACK_INTAKE, consumers.StartFeedbackIntakeConsumer)

	if err := kafka_client.StartConsumer(ctx, cfg); err != nil {
		slog.Error("[Main] Failed to start consumer",
			slog.String("error", err.Error()))
	}
}

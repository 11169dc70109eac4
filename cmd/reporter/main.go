package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/feedsight/feedsight/config"
	"github.com/feedsight/feedsight/internal/classify"
	"github.com/feedsight/feedsight/internal/clients"
	"github.com/feedsight/feedsight/internal/clients/kafka_client"
	"github.com/feedsight/feedsight/internal/consensus"
	"github.com/feedsight/feedsight/internal/consumers"
	"github.com/feedsight/feedsight/internal/db"
	"github.com/feedsight/feedsight/internal/logging"
	"github.com/feedsight/feedsight/internal/summarize"
)

func main() {
	env := config.EnvOr("APP_ENV", "dev")
	config.LoadEnv(env)
	logging.InitLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db.InitDynamoDB()

	model := config.EnvOr("OPENAI_MODEL", "gpt-4o-mini")
	invoker := classify.NewOpenAIInvoker(clients.GetOpenAIClient(), model)

	logger := slog.Default()
	worker := consumers.NewReportWorker(
		db.Store{},
		classify.NewClassifier(invoker, classify.DefaultOptions(), logger),
		consensus.NewPipeline(consensus.DefaultConfig(), logger),
		summarize.NewSummarizer(invoker, logger),
		logger,
	)

	cfg := kafka_client.GetKafkaConfig()
	cfg.Topic = kafka_client.KAFKA_TOPIC_REPORT_REQUESTS

	for {
		err := kafka_client.InitKafkaProducer(cfg)
		if err == nil {
			break
		}
		slog.Warn("Kafka init failed, retrying...", slog.String("error", err.Error()))
		time.Sleep(5 * time.Second)
	}
	defer kafka_client.CloseKafkaProducer()

	kafka_client.RegisterConsumer(kafka_client.KAFKA_TOPIC_REPORT_REQUESTS, worker.Start)

	if err := kafka_client.StartConsumer(ctx, cfg); err != nil {
		slog.Error("[Main] Failed to start consumer",
			slog.String("error", err.Error()))
	}
}

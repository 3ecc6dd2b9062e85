package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khanhvu/devconnect/adapters/event"
	"github.com/khanhvu/devconnect/adapters/persistence"
	"github.com/khanhvu/devconnect/internal/config"
	"github.com/khanhvu/devconnect/pkg/logger"
)

// The activity worker tails post events and keeps a capped recent-activity
// feed in Redis for the frontend to poll.

const (
	activityFeedKey = "devconnect:activity:recent"
	activityFeedCap = 100
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting DevConnect activity worker...")

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Redis", err)
	}
	defer redisClient.Close()

	postConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicPostEvents,
		GroupID:  "activity-feed-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer postConsumer.Close()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicPostEvents))

	ctx := context.Background()
	for {
		msg, err := postConsumer.ReadMessage(ctx)
		if err != nil {
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		var payload event.PostEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			appLogger.Warn("Skipping undecodable event", zap.Error(err))
			commitMessage(postConsumer, msg, appLogger)
			continue
		}

		pipe := redisClient.Pipeline()
		pipe.LPush(ctx, activityFeedKey, msg.Value)
		pipe.LTrim(ctx, activityFeedKey, 0, activityFeedCap-1)
		if _, err := pipe.Exec(ctx); err != nil {
			appLogger.Error("Failed to append activity entry", err, zap.String("post_id", payload.PostID.String()))
			continue
		}

		commitMessage(postConsumer, msg, appLogger)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Error("Failed to commit message", err)
	}
}

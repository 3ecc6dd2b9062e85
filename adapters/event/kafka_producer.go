package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/khanhvu/devconnect/internal/config"
)

const (
	TopicProfileEvents = "profile.events"
	TopicPostEvents    = "post.events"
)

type ProfileEventType string

const (
	ProfileEventTypeUpdated ProfileEventType = "profile.updated"
	ProfileEventTypeDeleted ProfileEventType = "profile.deleted"
)

type PostEventType string

const (
	PostEventTypeCreated   PostEventType = "post.created"
	PostEventTypeDeleted   PostEventType = "post.deleted"
	PostEventTypeLiked     PostEventType = "post.liked"
	PostEventTypeUnliked   PostEventType = "post.unliked"
	PostEventTypeCommented PostEventType = "post.commented"
)

type ProfileEventPayload struct {
	EventType ProfileEventType `json:"event_type"`
	UserID    uuid.UUID        `json:"user_id"`
	Handle    string           `json:"handle,omitempty"`
	At        time.Time        `json:"at"`
}

type PostEventPayload struct {
	EventType PostEventType `json:"event_type"`
	PostID    uuid.UUID     `json:"post_id"`
	ActorID   uuid.UUID     `json:"actor_id"`
	At        time.Time     `json:"at"`
}

// Publisher is what the aggregate managers see; the kafka client below is
// the production implementation.
type Publisher interface {
	PublishProfileEvent(ctx context.Context, payload ProfileEventPayload) error
	PublishPostEvent(ctx context.Context, payload PostEventPayload) error
}

type KafkaProducerClient struct {
	ProfileEventsWriter *kafka.Writer
	PostEventsWriter    *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	profileWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicProfileEvents,
		Balancer: &kafka.LeastBytes{},
	}

	postWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicPostEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{
		ProfileEventsWriter: profileWriter,
		PostEventsWriter:    postWriter,
	}, nil
}

func (c *KafkaProducerClient) PublishProfileEvent(ctx context.Context, payload ProfileEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal profile event: %w", err)
	}
	return c.ProfileEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.UserID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) PublishPostEvent(ctx context.Context, payload PostEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal post event: %w", err)
	}
	return c.PostEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.PostID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.ProfileEventsWriter != nil {
		c.ProfileEventsWriter.Close()
	}
	if c.PostEventsWriter != nil {
		c.PostEventsWriter.Close()
	}
}

package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"estate-market.backend/internal/domain/entities"
	"estate-market.backend/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes notification events to a topic, keyed by user id
// so every event for one account lands on the same partition. Writes are
// batched in the background; delivery failures are logged, not returned.
type KafkaNotifier struct {
	writer messageWriter
	topic  string
}

// NewKafkaNotifier creates a notifier publishing to topic.
func NewKafkaNotifier(brokers []string, topic string) (*KafkaNotifier, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka notifier requires at least one broker")
	}
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("kafka notifier requires a topic")
	}
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			RequiredAcks: kafka.RequireAll,
			Balancer:     &kafka.Hash{},
			Async:        true,
			Completion:   logDeliveryFailure,
		},
		topic: topic,
	}, nil
}

// SendVerificationCode publishes a verification code event.
func (n *KafkaNotifier) SendVerificationCode(ctx context.Context, user *entities.User, code string) error {
	event := newEvent(EventVerificationCode, user)
	event.Code = code
	return n.publish(ctx, event)
}

// SendAccountRejected publishes an account rejection event.
func (n *KafkaNotifier) SendAccountRejected(ctx context.Context, user *entities.User, reason string) error {
	event := newEvent(EventAccountRejected, user)
	event.Reason = reason
	return n.publish(ctx, event)
}

func (n *KafkaNotifier) publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event.Type, err)
	}
	err = n.writer.WriteMessages(ctx, kafka.Message{
		Topic: n.topic,
		Key:   []byte(event.UserID.String()),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}
	return nil
}

func logDeliveryFailure(messages []kafka.Message, err error) {
	if err == nil {
		return
	}
	for _, msg := range messages {
		logger.Error(context.Background(), "Failed to deliver notification",
			zap.String("topic", msg.Topic),
			zap.ByteString("key", msg.Key),
			zap.Error(err),
		)
	}
}

// Close flushes pending events and closes the writer.
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

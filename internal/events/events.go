package events

import (
	"context"
	"encoding/json"
	"time"

	"stocksync/internal/logger"

	"github.com/segmentio/kafka-go"
)

// Event describes one entity the import pipeline created.
type Event struct {
	Type      string    `json:"type"`
	EntityID  string    `json:"entity_id"`
	Channel   string    `json:"channel"`
	Timestamp time.Time `json:"timestamp"`
}

// KafkaPublisher writes import events to a kafka topic. Publishing is
// best-effort: a broker failure is logged, never surfaced to the
// import run.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *logger.Logger
}

func NewKafkaPublisher(brokers, topic string, log *logger.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 100 * time.Millisecond,
	}

	return &KafkaPublisher{
		writer: writer,
		logger: log,
	}
}

func (p *KafkaPublisher) Publish(eventType, entityID, channel string) {
	event := Event{
		Type:      eventType,
		EntityID:  entityID,
		Channel:   channel,
		Timestamp: time.Now(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to encode event: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(entityID),
		Value: value,
	})
	if err != nil {
		p.logger.Error("failed to publish %s event: %v", eventType, err)
	}
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

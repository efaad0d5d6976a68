package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/domain/models"
	"github.com/yildirimberke/berke-terminal-dashboard/pkg/kafka"
)

// KafkaArchiver streams snapshot rows to a topic, keyed by symbol so a
// consumer sees each instrument's history in order.
type KafkaArchiver struct {
	producer *kafka.Producer
	topic    string
}

// NewKafkaArchiver wraps a producer for the given topic.
func NewKafkaArchiver(producer *kafka.Producer, topic string) *KafkaArchiver {
	if topic == "" {
		topic = "market-snapshots"
	}
	return &KafkaArchiver{producer: producer, topic: topic}
}

func (a *KafkaArchiver) Archive(ctx context.Context, snap *models.MarketSnapshot, at time.Time) error {
	for _, e := range entries(snap, at) {
		if err := a.producer.Publish(ctx, a.topic, []byte(e.Symbol), e); err != nil {
			return fmt.Errorf("publish snapshot row: %w", err)
		}
	}
	return nil
}

func (a *KafkaArchiver) Close() error {
	return a.producer.Close()
}

package archive

import (
	"context"
	"fmt"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/storage"
	"github.com/yildirimberke/berke-terminal-dashboard/pkg/clickhouse"
	"github.com/yildirimberke/berke-terminal-dashboard/pkg/config"
	"github.com/yildirimberke/berke-terminal-dashboard/pkg/kafka"
)

// New builds the archiver the configuration selects. The sqlite backend
// reuses the shared storage layer; kafka and clickhouse own their
// connections.
func New(ctx context.Context, cfg *config.Config, store *storage.Store) (Archiver, error) {
	switch cfg.Archive.Backend {
	case "sqlite":
		return NewSQLiteArchiver(store), nil

	case "kafka":
		producer, err := kafka.NewProducer(
			kafka.WithBrokers(cfg.Archive.Kafka.Brokers),
			kafka.WithCompression(cfg.Archive.Kafka.Compression),
			kafka.WithRequiredAcks(cfg.Archive.Kafka.RequiredAcks),
			kafka.WithWriteTimeout(cfg.Archive.Kafka.WriteTimeout),
		)
		if err != nil {
			return nil, fmt.Errorf("kafka archiver: %w", err)
		}
		return NewKafkaArchiver(producer, cfg.Archive.Kafka.Topic), nil

	case "clickhouse":
		client, err := clickhouse.NewClient(
			clickhouse.WithHost(cfg.Archive.ClickHouse.Host),
			clickhouse.WithPort(cfg.Archive.ClickHouse.Port),
			clickhouse.WithDatabase(cfg.Archive.ClickHouse.Database),
			clickhouse.WithCredentials(cfg.Archive.ClickHouse.User, cfg.Archive.ClickHouse.Password),
			clickhouse.WithDialTimeout(cfg.Archive.ClickHouse.DialTimeout),
		)
		if err != nil {
			return nil, fmt.Errorf("clickhouse archiver: %w", err)
		}
		return NewClickHouseArchiver(ctx, client)
	}
	return nil, fmt.Errorf("unknown archive backend %q", cfg.Archive.Backend)
}

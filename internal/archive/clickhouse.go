package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/domain/models"
	"github.com/yildirimberke/berke-terminal-dashboard/pkg/clickhouse"
)

var clickhouseSchema = []string{
	`CREATE TABLE IF NOT EXISTS market_snapshots (
		ts        DateTime,
		symbol    String,
		price     Float64,
		change_pct Nullable(Float64)
	) ENGINE = MergeTree()
	ORDER BY (symbol, ts)`,
}

// ClickHouseArchiver batch-inserts snapshot rows into a history table.
type ClickHouseArchiver struct {
	client *clickhouse.Client
}

// NewClickHouseArchiver ensures the history table exists.
func NewClickHouseArchiver(ctx context.Context, client *clickhouse.Client) (*ClickHouseArchiver, error) {
	if err := client.InitSchema(ctx, clickhouseSchema); err != nil {
		return nil, err
	}
	return &ClickHouseArchiver{client: client}, nil
}

func (a *ClickHouseArchiver) Archive(ctx context.Context, snap *models.MarketSnapshot, at time.Time) error {
	rows := entries(snap, at)
	if len(rows) == 0 {
		return nil
	}

	tx, err := a.client.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("archive batch: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO market_snapshots (ts, symbol, price, change_pct) VALUES (?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range rows {
		if _, err := stmt.ExecContext(ctx, at, e.Symbol, e.Price, e.ChangePct); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert snapshot row: %w", err)
		}
	}
	return tx.Commit()
}

func (a *ClickHouseArchiver) Close() error {
	return a.client.Close()
}

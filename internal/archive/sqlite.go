package archive

import (
	"context"
	"time"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/domain/models"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/storage"
)

// SQLiteArchiver writes snapshot history to the local terminal database.
// This is the default backend.
type SQLiteArchiver struct {
	store *storage.Store
}

// NewSQLiteArchiver wraps the shared storage layer. The store's lifecycle
// belongs to its owner; Close here is a no-op.
func NewSQLiteArchiver(store *storage.Store) *SQLiteArchiver {
	return &SQLiteArchiver{store: store}
}

func (a *SQLiteArchiver) Archive(_ context.Context, snap *models.MarketSnapshot, at time.Time) error {
	return a.store.ArchiveMarketSnapshot(snap, at)
}

func (a *SQLiteArchiver) Close() error {
	return nil
}

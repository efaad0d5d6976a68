package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/domain/models"
	"github.com/yildirimberke/berke-terminal-dashboard/pkg/sqlite"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

const timeLayout = "2006-01-02 15:04:05"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS data_overrides (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		entity_key TEXT UNIQUE,
		value TEXT,
		source TEXT DEFAULT 'manual',
		set_by TEXT DEFAULT 'user',
		timestamp DATETIME,
		active INTEGER DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS data_tickets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME,
		items_json TEXT,
		status TEXT DEFAULT 'open',
		notes TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS market_snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME,
		symbol TEXT,
		price REAL,
		change_pct REAL
	)`,
}

// Store is the SQLite persistence layer for overrides, data-quality tickets
// and market snapshot history.
type Store struct {
	db *sql.DB
}

// NewStore opens the database at path and ensures the schema exists.
func NewStore(path string) (*Store, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, err
	}
	if err := sqlite.Migrate(db, schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SetOverride upserts a manual override and re-activates it.
func (s *Store) SetOverride(rec models.OverrideRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO data_overrides (entity_key, value, source, set_by, timestamp, active)
		VALUES (?, ?, ?, ?, ?, 1)
		ON CONFLICT(entity_key) DO UPDATE SET
			value=excluded.value, source=excluded.source,
			timestamp=excluded.timestamp, active=1`,
		rec.Key, rec.Value, rec.Source, rec.SetBy, rec.Timestamp.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("set override: %w", err)
	}
	return nil
}

// GetOverride returns the active override for a key, ErrNotFound when none.
func (s *Store) GetOverride(key string) (models.OverrideRecord, error) {
	row := s.db.QueryRow(`
		SELECT entity_key, value, source, set_by, timestamp
		FROM data_overrides WHERE entity_key = ? AND active = 1`, key)
	rec, err := scanOverride(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.OverrideRecord{}, ErrNotFound
	}
	return rec, err
}

// AllOverrides returns active overrides, newest first.
func (s *Store) AllOverrides() ([]models.OverrideRecord, error) {
	rows, err := s.db.Query(`
		SELECT entity_key, value, source, set_by, timestamp
		FROM data_overrides WHERE active = 1 ORDER BY timestamp DESC`)
	if err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.OverrideRecord
	for rows.Next() {
		rec, err := scanOverride(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ClearOverride deactivates an override. Clearing an absent key is a no-op.
func (s *Store) ClearOverride(key string) error {
	_, err := s.db.Exec(`UPDATE data_overrides SET active = 0 WHERE entity_key = ?`, key)
	if err != nil {
		return fmt.Errorf("clear override: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOverride(sc scanner) (models.OverrideRecord, error) {
	var rec models.OverrideRecord
	var ts string
	if err := sc.Scan(&rec.Key, &rec.Value, &rec.Source, &rec.SetBy, &ts); err != nil {
		return models.OverrideRecord{}, err
	}
	t, err := time.Parse(timeLayout, ts)
	if err != nil {
		return models.OverrideRecord{}, fmt.Errorf("parse override timestamp: %w", err)
	}
	rec.Timestamp = t
	return rec, nil
}

// SaveTicket stores a data-quality ticket and returns its id.
func (s *Store) SaveTicket(itemsJSON, notes string, at time.Time) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO data_tickets (timestamp, items_json, status, notes)
		VALUES (?, ?, 'open', ?)`, at.Format(timeLayout), itemsJSON, notes)
	if err != nil {
		return 0, fmt.Errorf("save ticket: %w", err)
	}
	return res.LastInsertId()
}

// Tickets returns the most recent tickets, newest first.
func (s *Store) Tickets(limit int) ([]models.Ticket, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(`
		SELECT id, timestamp, items_json, status, notes
		FROM data_tickets ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Ticket
	for rows.Next() {
		var t models.Ticket
		var ts string
		if err := rows.Scan(&t.ID, &ts, &t.ItemsJSON, &t.Status, &t.Notes); err != nil {
			return nil, err
		}
		if parsed, err := time.Parse(timeLayout, ts); err == nil {
			t.Timestamp = parsed
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ArchiveMarketSnapshot appends one history row per quote carrying a
// numeric price.
func (s *Store) ArchiveMarketSnapshot(snap *models.MarketSnapshot, at time.Time) error {
	if snap == nil {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("archive snapshot: %w", err)
	}
	ts := at.Format(timeLayout)
	for symbol, q := range snap.Quotes {
		price, ok := q.Price.Float()
		if !ok {
			continue
		}
		change, hasChange := q.ChangePct.Float()
		var changeArg any
		if hasChange {
			changeArg = change
		}
		if _, err := tx.Exec(`
			INSERT INTO market_snapshots (timestamp, symbol, price, change_pct)
			VALUES (?, ?, ?, ?)`, ts, symbol, price, changeArg); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("archive snapshot: %w", err)
		}
	}
	return tx.Commit()
}

// TopMoversByDate returns the strongest gainers and losers recorded on a
// given day (YYYY-MM-DD).
func (s *Store) TopMoversByDate(date string, limit int) (models.MoverLists, error) {
	if limit <= 0 {
		limit = 5
	}
	var lists models.MoverLists
	pattern := date + "%"

	query := func(order string, dest *[]models.Mover, cmp string) error {
		rows, err := s.db.Query(`
			SELECT symbol, price, change_pct FROM market_snapshots
			WHERE timestamp LIKE ? AND change_pct `+cmp+`
			ORDER BY change_pct `+order+` LIMIT ?`, pattern, limit)
		if err != nil {
			return fmt.Errorf("movers by date: %w", err)
		}
		defer func() { _ = rows.Close() }()
		for rows.Next() {
			var symbol string
			var price, change float64
			if err := rows.Scan(&symbol, &price, &change); err != nil {
				return err
			}
			*dest = append(*dest, models.Mover{
				Symbol:    symbol,
				Price:     models.Num(price),
				ChangePct: models.Num(change),
			})
		}
		return rows.Err()
	}

	if err := query("DESC", &lists.Gainers, "> 0"); err != nil {
		return lists, err
	}
	if err := query("ASC", &lists.Losers, "< 0"); err != nil {
		return lists, err
	}
	return lists, nil
}

package storage

// sqlite.go: histórico de notificaciones.
//
// Una fila por notificación intentada (entregada o no). Es solo lectura para
// humanos (-history): el watcher nunca lo consulta para reconstruir su
// watermark o el set de transacciones vistas, que viven solo en memoria.
// Prune automático al arrancar: alertas de más de 30 días.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alejandrodnm/polywatch/internal/domain"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS alerts (
    id          TEXT PRIMARY KEY,
    trader      TEXT    NOT NULL,
    tx_hash     TEXT    NOT NULL DEFAULT '',
    amount_usdc REAL    NOT NULL DEFAULT 0,
    side        TEXT    NOT NULL DEFAULT '',
    price       REAL    NOT NULL DEFAULT 0,
    market      TEXT    NOT NULL DEFAULT '',
    market_url  TEXT    NOT NULL DEFAULT '',
    delivered   INTEGER NOT NULL DEFAULT 0,
    error       TEXT    NOT NULL DEFAULT '',
    event_ts    INTEGER NOT NULL DEFAULT 0,  -- unix segundos
    created_at  INTEGER NOT NULL             -- unix milisegundos
);

CREATE INDEX IF NOT EXISTS idx_alerts_created ON alerts(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_alerts_trader  ON alerts(trader);
`

const retentionAlerts = 30 * 24 * time.Hour

// SQLiteStorage implementa ports.AlertLog usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada,
// aplica el schema y limpia alertas antiguas.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}

	s := &SQLiteStorage{db: db}
	s.pruneOld(context.Background())
	return s, nil
}

// SaveAlert inserta una alerta. Si no trae ID se le asigna un UUID.
func (s *SQLiteStorage) SaveAlert(ctx context.Context, a domain.Alert) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	delivered := 0
	if a.Delivered {
		delivered = 1
	}
	var eventTS int64
	if !a.EventTime.IsZero() {
		eventTS = a.EventTime.Unix()
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO alerts
			(id, trader, tx_hash, amount_usdc, side, price, market, market_url,
			 delivered, error, event_ts, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Trader, a.TxHash, a.AmountUSDC, a.Side, a.Price, a.Market, a.MarketURL,
		delivered, a.Error, eventTS, a.CreatedAt.UnixMilli(),
	); err != nil {
		return fmt.Errorf("storage.SaveAlert: insert %s: %w", a.ID, err)
	}
	return nil
}

// RecentAlerts devuelve las últimas limit alertas, más recientes primero.
func (s *SQLiteStorage) RecentAlerts(ctx context.Context, limit int) ([]domain.Alert, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, trader, tx_hash, amount_usdc, side, price, market, market_url,
		       delivered, error, event_ts, created_at
		FROM alerts
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("storage.RecentAlerts: query: %w", err)
	}
	defer rows.Close()

	var alerts []domain.Alert
	for rows.Next() {
		var a domain.Alert
		var delivered int
		var eventTS, createdMs int64

		if err := rows.Scan(
			&a.ID,
			&a.Trader,
			&a.TxHash,
			&a.AmountUSDC,
			&a.Side,
			&a.Price,
			&a.Market,
			&a.MarketURL,
			&delivered,
			&a.Error,
			&eventTS,
			&createdMs,
		); err != nil {
			return nil, fmt.Errorf("storage.RecentAlerts: scan row: %w", err)
		}

		a.Delivered = delivered == 1
		if eventTS > 0 {
			a.EventTime = time.Unix(eventTS, 0)
		}
		a.CreatedAt = time.UnixMilli(createdMs)
		alerts = append(alerts, a)
	}

	return alerts, rows.Err()
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// pruneOld elimina alertas antiguas para mantener la DB ligera.
func (s *SQLiteStorage) pruneOld(ctx context.Context) {
	cutoff := time.Now().Add(-retentionAlerts).UnixMilli()
	s.db.ExecContext(ctx, `DELETE FROM alerts WHERE created_at < ?`, cutoff)
}

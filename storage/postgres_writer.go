package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/Eutropios/WarMAC/models"
)

// HistoryEntry is one stored computation, as read back from the database.
type HistoryEntry struct {
	models.StatisticResult
	ComputedAt time.Time `json:"computed_at"`
}

// PostgresWriter persists computed statistic results to PostgreSQL so
// price history can be reviewed across runs.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS statistic_results (
			id              SERIAL PRIMARY KEY,
			item            TEXT        NOT NULL,
			statistic       VARCHAR(20) NOT NULL,
			value           NUMERIC(12,4) NOT NULL,
			min_price       INTEGER     NOT NULL,
			max_price       INTEGER     NOT NULL,
			order_count     INTEGER     NOT NULL,
			time_range_days INTEGER     NOT NULL,
			computed_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_results_item        ON statistic_results(item);
		CREATE INDEX IF NOT EXISTS idx_results_computed_at ON statistic_results(computed_at);
	`)
	return err
}

// WriteResult appends one computed result to the history table.
func (pw *PostgresWriter) WriteResult(result models.StatisticResult) error {
	_, err := pw.db.Exec(`
		INSERT INTO statistic_results
			(item, statistic, value, min_price, max_price, order_count, time_range_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, result.Item, string(result.Kind), result.Value,
		result.MinPrice, result.MaxPrice, result.Count, result.TimeRange)
	if err != nil {
		return fmt.Errorf("postgres: insert result: %w", err)
	}
	return nil
}

// FetchHistory retrieves stored results for an item, newest first.
func (pw *PostgresWriter) FetchHistory(item string, limit int) ([]HistoryEntry, error) {
	rows, err := pw.db.Query(`
		SELECT item, statistic, value, min_price, max_price, order_count, time_range_days, computed_at
		FROM statistic_results
		WHERE item = $1
		ORDER BY computed_at DESC
		LIMIT $2
	`, item, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var kind string
		if err := rows.Scan(
			&e.Item, &kind, &e.Value, &e.MinPrice, &e.MaxPrice,
			&e.Count, &e.TimeRange, &e.ComputedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		e.Kind = models.StatisticKind(kind)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the underlying connection pool.
func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

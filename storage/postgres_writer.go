package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"comp-valuation/models"
)

// PostgresWriter persists valuation runs to PostgreSQL: one row per run in
// valuation_runs, one row per comparable in valuation_grid_rows with the
// line items and explanation payloads stored as JSONB.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
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
		CREATE TABLE IF NOT EXISTS valuation_runs (
			run_id          UUID PRIMARY KEY,
			subject_address TEXT        NOT NULL,
			indicated_value NUMERIC(14,2),
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS valuation_grid_rows (
			id             SERIAL PRIMARY KEY,
			run_id         UUID          NOT NULL REFERENCES valuation_runs(run_id) ON DELETE CASCADE,
			comparable     TEXT          NOT NULL DEFAULT '',
			base_price     NUMERIC(14,2) NOT NULL DEFAULT 0,
			net_adjustment NUMERIC(14,2) NOT NULL DEFAULT 0,
			adjusted_price NUMERIC(14,2) NOT NULL DEFAULT 0,
			similarity     NUMERIC(6,2)  NOT NULL DEFAULT 0,
			line_items     JSONB         NOT NULL DEFAULT '[]',
			details        JSONB         NOT NULL DEFAULT '{}'
		);

		CREATE INDEX IF NOT EXISTS idx_grid_rows_run_id ON valuation_grid_rows(run_id);
		CREATE INDEX IF NOT EXISTS idx_runs_created_at  ON valuation_runs(created_at);
	`)
	return err
}

// WriteRun inserts the run header and batch-inserts its grid rows.
func (pw *PostgresWriter) WriteRun(run *Run) error {
	indicated := sql.NullFloat64{}
	if !math.IsNaN(run.Summary.IndicatedValue) {
		indicated = sql.NullFloat64{Float64: run.Summary.IndicatedValue, Valid: true}
	}

	_, err := pw.db.Exec(`
		INSERT INTO valuation_runs (run_id, subject_address, indicated_value, created_at)
		VALUES ($1, $2, $3, $4)
	`, run.ID, run.SubjectAddress, indicated, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("postgres: insert run: %w", err)
	}

	const batchSize = 50
	for i := 0; i < len(run.Grid); i += batchSize {
		end := i + batchSize
		if end > len(run.Grid) {
			end = len(run.Grid)
		}
		if err := pw.insertBatch(run, run.Grid[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(run *Run, batch []*models.GridRow) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*8)

	for idx, row := range batch {
		lineItems, err := json.Marshal(row.LineItems)
		if err != nil {
			return fmt.Errorf("postgres: marshal line items: %w", err)
		}
		details, err := json.Marshal(row.Details)
		if err != nil {
			return fmt.Errorf("postgres: marshal details: %w", err)
		}

		base := idx * 8
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8))
		valueArgs = append(valueArgs,
			run.ID, row.Comparable, row.BasePrice, row.NetAdjustment,
			row.AdjustedPrice, row.Similarity, lineItems, details)
	}

	query := fmt.Sprintf(`
		INSERT INTO valuation_grid_rows
			(run_id, comparable, base_price, net_adjustment, adjusted_price, similarity, line_items, details)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchRun reads a stored run's grid rows back, in insertion order. Details
// payloads are returned as stored; line items come back in grid order.
func (pw *PostgresWriter) FetchRun(runID string) ([]*models.GridRow, error) {
	rows, err := pw.db.Query(`
		SELECT comparable, base_price, net_adjustment, adjusted_price, similarity, line_items
		FROM valuation_grid_rows
		WHERE run_id = $1
		ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch run: %w", err)
	}
	defer rows.Close()

	var grid []*models.GridRow
	for rows.Next() {
		row := &models.GridRow{}
		var lineItems []byte
		if err := rows.Scan(
			&row.Comparable, &row.BasePrice, &row.NetAdjustment,
			&row.AdjustedPrice, &row.Similarity, &lineItems,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		if err := json.Unmarshal(lineItems, &row.LineItems); err != nil {
			return nil, fmt.Errorf("postgres: decode line items: %w", err)
		}
		grid = append(grid, row)
	}
	return grid, rows.Err()
}

package export

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/hot100/internal/chart"
)

// schema is created on demand by EnsureSchema
const schema = `
	CREATE SCHEMA IF NOT EXISTS chart;

	CREATE TABLE IF NOT EXISTS chart.history_rows (
		week           DATE    NOT NULL,
		rank           INTEGER NOT NULL,
		title          TEXT    NOT NULL,
		artist         TEXT    NOT NULL,
		last_week      INTEGER NOT NULL,
		peak_pos       INTEGER NOT NULL,
		weeks_on_chart INTEGER NOT NULL,
		export_id      UUID    NOT NULL,
		exported_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (week, rank)
	);
`

// Repository persists exported chart history to PostgreSQL
// ⭐ SSOT: 차트 히스토리 저장은 여기서만
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EnsureSchema creates the export tables when missing
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// SaveHistory upserts every row keyed by (week, rank) and returns the export id
// stamped on them. A re-exported week overwrites the previous rows.
func (r *Repository) SaveHistory(ctx context.Context, history chart.History) (uuid.UUID, error) {
	exportID := uuid.New()
	if history.Len() == 0 {
		return exportID, nil
	}

	query := `
		INSERT INTO chart.history_rows (
			week, rank, title, artist, last_week, peak_pos, weeks_on_chart, export_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (week, rank) DO UPDATE SET
			title = EXCLUDED.title,
			artist = EXCLUDED.artist,
			last_week = EXCLUDED.last_week,
			peak_pos = EXCLUDED.peak_pos,
			weeks_on_chart = EXCLUDED.weeks_on_chart,
			export_id = EXCLUDED.export_id,
			exported_at = NOW()
	`

	batch := &pgx.Batch{}
	for _, row := range history.Rows() {
		batch.Queue(query,
			row.Week,
			row.Rank,
			row.Title,
			row.Artist,
			row.LastWeekRank,
			row.PeakPosition,
			row.WeeksOnChart,
			exportID,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return uuid.Nil, fmt.Errorf("upsert history row %d: %w", i, err)
		}
	}

	return exportID, nil
}

// ExportedWeeks lists the weeks stored so far, most recent first
func (r *Repository) ExportedWeeks(ctx context.Context) ([]time.Time, error) {
	query := `
		SELECT DISTINCT week
		FROM chart.history_rows
		ORDER BY week DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query exported weeks: %w", err)
	}
	defer rows.Close()

	var weeks []time.Time
	for rows.Next() {
		var w time.Time
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("scan week: %w", err)
		}
		weeks = append(weeks, chart.Day(w))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return weeks, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"asset-forecast/domain"

	_ "modernc.org/sqlite" // register sqlite driver
)

// SQLiteHistoryRepository keeps the observation history in a local SQLite file.
type SQLiteHistoryRepository struct {
	db *sql.DB
}

// OpenSQLiteHistory opens or creates the history database at dbPath.
func OpenSQLiteHistory(dbPath string) (*SQLiteHistoryRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if _, err := db.Exec(sqliteHistorySchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteHistoryRepository{db: db}, nil
}

func (r *SQLiteHistoryRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteHistoryRepository) Observations(
	ctx context.Context,
	months int,
) ([]domain.HistoricalObservation, error) {
	limit := months
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}

	rows, err := r.db.QueryContext(ctx, `SELECT period, revenue, costs, labor_hours, equipment_utilization
		FROM observations ORDER BY period DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying observations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var newestFirst []domain.HistoricalObservation
	for rows.Next() {
		var period string
		var o domain.HistoricalObservation
		if err := rows.Scan(&period, &o.Revenue, &o.Costs, &o.LaborHours, &o.EquipmentUtilization); err != nil {
			return nil, fmt.Errorf("scanning observation: %w", err)
		}
		o.Period, err = time.Parse(time.RFC3339, period)
		if err != nil {
			return nil, fmt.Errorf("parsing period %q: %w", period, err)
		}
		newestFirst = append(newestFirst, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]domain.HistoricalObservation, len(newestFirst))
	for i, o := range newestFirst {
		out[len(newestFirst)-1-i] = o
	}
	return out, nil
}

func (r *SQLiteHistoryRepository) Aggregates(ctx context.Context) (domain.OperationalAggregates, error) {
	var agg domain.OperationalAggregates
	err := r.db.QueryRowContext(ctx, `SELECT active_project_count, average_project_value,
		equipment_average_age, technician_count FROM operational_aggregates WHERE id = 1`).
		Scan(&agg.ActiveProjectCount, &agg.AverageProjectValue, &agg.EquipmentAverageAge, &agg.TechnicianCount)
	if errors.Is(err, sql.ErrNoRows) {
		return agg, ErrNotFound
	}
	if err != nil {
		return agg, fmt.Errorf("querying aggregates: %w", err)
	}
	return agg, nil
}

// SaveObservation inserts or replaces the row for the observation's period.
func (r *SQLiteHistoryRepository) SaveObservation(ctx context.Context, o domain.HistoricalObservation) error {
	_, err := r.db.ExecContext(ctx, `INSERT OR REPLACE INTO observations
		(period, revenue, costs, labor_hours, equipment_utilization)
		VALUES (?, ?, ?, ?, ?)`,
		o.Period.UTC().Format(time.RFC3339), o.Revenue, o.Costs, o.LaborHours, o.EquipmentUtilization,
	)
	if err != nil {
		return fmt.Errorf("saving observation %s: %w", o.Period.Format("2006-01"), err)
	}
	return nil
}

func (r *SQLiteHistoryRepository) SaveAggregates(ctx context.Context, agg domain.OperationalAggregates) error {
	_, err := r.db.ExecContext(ctx, `INSERT OR REPLACE INTO operational_aggregates
		(id, active_project_count, average_project_value, equipment_average_age, technician_count, updated_at)
		VALUES (1, ?, ?, ?, ?, ?)`,
		agg.ActiveProjectCount, agg.AverageProjectValue, agg.EquipmentAverageAge, agg.TechnicianCount,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving aggregates: %w", err)
	}
	return nil
}

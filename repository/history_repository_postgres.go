package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"asset-forecast/domain"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// PostgresHistoryRepository reads the observation history from Postgres.
type PostgresHistoryRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresHistoryRepository(ctx context.Context, dsn string) (*PostgresHistoryRepository, error) {
	pool, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	return &PostgresHistoryRepository{pool: pool}, nil
}

// EnsureSchema creates the history tables if they are missing.
func (r *PostgresHistoryRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, postgresHistorySchema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

func (r *PostgresHistoryRepository) Close() {
	r.pool.Close()
}

func (r *PostgresHistoryRepository) Observations(
	ctx context.Context,
	months int,
) ([]domain.HistoricalObservation, error) {
	query := `SELECT period, revenue, costs, labor_hours, equipment_utilization
		FROM (SELECT * FROM observations ORDER BY period DESC LIMIT $1) recent
		ORDER BY period ASC`
	var limit interface{} = months
	if months <= 0 {
		limit = nil // LIMIT NULL is unbounded
	}

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying observations: %w", err)
	}
	defer rows.Close()

	var out []domain.HistoricalObservation
	for rows.Next() {
		var o domain.HistoricalObservation
		if err := rows.Scan(&o.Period, &o.Revenue, &o.Costs, &o.LaborHours, &o.EquipmentUtilization); err != nil {
			return nil, fmt.Errorf("scanning observation: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresHistoryRepository) Aggregates(ctx context.Context) (domain.OperationalAggregates, error) {
	var agg domain.OperationalAggregates
	err := r.pool.QueryRow(ctx, `SELECT active_project_count, average_project_value,
		equipment_average_age, technician_count FROM operational_aggregates WHERE id = 1`).
		Scan(&agg.ActiveProjectCount, &agg.AverageProjectValue, &agg.EquipmentAverageAge, &agg.TechnicianCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return agg, ErrNotFound
	}
	if err != nil {
		return agg, fmt.Errorf("querying aggregates: %w", err)
	}
	return agg, nil
}

func (r *PostgresHistoryRepository) SaveObservation(ctx context.Context, o domain.HistoricalObservation) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO observations
		(period, revenue, costs, labor_hours, equipment_utilization)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (period) DO UPDATE SET revenue = EXCLUDED.revenue, costs = EXCLUDED.costs,
			labor_hours = EXCLUDED.labor_hours, equipment_utilization = EXCLUDED.equipment_utilization`,
		o.Period.UTC(), o.Revenue, o.Costs, o.LaborHours, o.EquipmentUtilization,
	)
	if err != nil {
		return fmt.Errorf("saving observation %s: %w", o.Period.Format("2006-01"), err)
	}
	return nil
}

func (r *PostgresHistoryRepository) SaveAggregates(ctx context.Context, agg domain.OperationalAggregates) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO operational_aggregates
		(id, active_project_count, average_project_value, equipment_average_age, technician_count, updated_at)
		VALUES (1, $1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET active_project_count = EXCLUDED.active_project_count,
			average_project_value = EXCLUDED.average_project_value,
			equipment_average_age = EXCLUDED.equipment_average_age,
			technician_count = EXCLUDED.technician_count, updated_at = EXCLUDED.updated_at`,
		agg.ActiveProjectCount, agg.AverageProjectValue, agg.EquipmentAverageAge, agg.TechnicianCount,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving aggregates: %w", err)
	}
	return nil
}

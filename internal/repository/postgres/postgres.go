package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pawait/weatherview/internal/domain"
)

const schema = `
	CREATE TABLE IF NOT EXISTS weather_searches (
		id            TEXT PRIMARY KEY,
		city          TEXT NOT NULL,
		unit          TEXT NOT NULL,
		outcome       TEXT NOT NULL,
		resolved_city TEXT,
		temperature   DOUBLE PRECISION,
		requested_at  TIMESTAMPTZ NOT NULL,
		duration_ms   BIGINT NOT NULL
	)
`

// PostgresRepository implements domain.SearchLogRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository and ensures its table exists
func NewPostgresRepository(ctx context.Context, pool *pgxpool.Pool) (*PostgresRepository, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("postgres: failed to create schema: %w", err)
	}
	return &PostgresRepository{pool: pool}, nil
}

// SaveSearch persists a completed lookup to PostgreSQL
func (r *PostgresRepository) SaveSearch(ctx context.Context, rec domain.SearchRecord) error {
	query := `
		INSERT INTO weather_searches (
			id, city, unit, outcome, resolved_city, temperature, requested_at, duration_ms
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	// Empty resolved city is stored as NULL
	var resolved interface{}
	if rec.ResolvedCity != "" {
		resolved = rec.ResolvedCity
	}

	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.City, string(rec.Unit), string(rec.Outcome), resolved, rec.Temperature,
		rec.RequestedAt, rec.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save search: %w", err)
	}

	return nil
}

// RecentSearches retrieves the latest lookups from PostgreSQL
func (r *PostgresRepository) RecentSearches(ctx context.Context, limit int) ([]domain.SearchRecord, error) {
	query := `
		SELECT id, city, unit, outcome, COALESCE(resolved_city, ''), temperature, requested_at, duration_ms
		FROM weather_searches
		ORDER BY requested_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query searches: %w", err)
	}
	defer rows.Close()

	var results []domain.SearchRecord
	for rows.Next() {
		var (
			rec        domain.SearchRecord
			unit       string
			outcome    string
			durationMS int64
		)
		err := rows.Scan(
			&rec.ID, &rec.City, &unit, &outcome, &rec.ResolvedCity, &rec.Temperature,
			&rec.RequestedAt, &durationMS,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan search row: %w", err)
		}
		rec.Unit = domain.Unit(unit)
		rec.Outcome = domain.SearchOutcome(outcome)
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to iterate searches: %w", err)
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}

// Close releases the pool
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

var _ domain.SearchLogRepository = (*PostgresRepository)(nil)

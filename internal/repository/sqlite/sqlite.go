package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pawait/weatherview/internal/domain"
)

// fixed-width UTC timestamps so ORDER BY on the text column is chronological
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store implements domain.SearchLogRepository on a local SQLite file
// using the pure Go driver modernc.org/sqlite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open %s: %w", path, err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		log.Println("warning: could not set WAL mode:", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS weather_searches (
		id TEXT PRIMARY KEY,
		city TEXT NOT NULL,
		unit TEXT NOT NULL,
		outcome TEXT NOT NULL,
		resolved_city TEXT,
		temperature REAL,
		requested_at TEXT NOT NULL,
		duration_ms INTEGER NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// SaveSearch persists a completed lookup
func (s *Store) SaveSearch(ctx context.Context, rec domain.SearchRecord) error {
	var temp sql.NullFloat64
	if rec.Temperature != nil {
		temp = sql.NullFloat64{Float64: *rec.Temperature, Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO weather_searches(id, city, unit, outcome, resolved_city, temperature, requested_at, duration_ms) VALUES(?,?,?,?,?,?,?,?)`,
		rec.ID, rec.City, string(rec.Unit), string(rec.Outcome), rec.ResolvedCity, temp,
		rec.RequestedAt.UTC().Format(timeLayout), rec.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("sqlite: failed to save search: %w", err)
	}
	return nil
}

// RecentSearches returns up to limit records, newest first
func (s *Store) RecentSearches(ctx context.Context, limit int) ([]domain.SearchRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, city, unit, outcome, COALESCE(resolved_city, ''), temperature, requested_at, duration_ms
		FROM weather_searches ORDER BY requested_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to query searches: %w", err)
	}
	defer rows.Close()

	var out []domain.SearchRecord
	for rows.Next() {
		var (
			rec        domain.SearchRecord
			unit       string
			outcome    string
			temp       sql.NullFloat64
			ts         string
			durationMS int64
		)
		if err := rows.Scan(&rec.ID, &rec.City, &unit, &outcome, &rec.ResolvedCity, &temp, &ts, &durationMS); err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan search row: %w", err)
		}
		rec.Unit = domain.Unit(unit)
		rec.Outcome = domain.SearchOutcome(outcome)
		if temp.Valid {
			v := temp.Float64
			rec.Temperature = &v
		}
		if t, err := time.Parse(timeLayout, ts); err == nil {
			rec.RequestedAt = t
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: failed to iterate searches: %w", err)
	}
	return out, nil
}

// Health pings the database
func (s *Store) Health(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: health check failed: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

var _ domain.SearchLogRepository = (*Store)(nil)

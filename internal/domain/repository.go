package domain

import (
	"context"
	"time"
)

// SearchOutcome is how a lookup ended
type SearchOutcome string

const (
	OutcomeSuccess SearchOutcome = "success"
	OutcomeError   SearchOutcome = "error"
)

// SearchRecord is one completed lookup, kept for operators
type SearchRecord struct {
	ID           string        `json:"id"`
	City         string        `json:"city"`
	Unit         Unit          `json:"unit"`
	Outcome      SearchOutcome `json:"outcome"`
	ResolvedCity string        `json:"resolved_city,omitempty"`
	Temperature  *float64      `json:"temperature,omitempty"`
	RequestedAt  time.Time     `json:"requested_at"`
	Duration     time.Duration `json:"duration_ns"`
}

// SearchLogRepository defines the interface for search log persistence
type SearchLogRepository interface {
	// SaveSearch persists a completed lookup
	SaveSearch(ctx context.Context, rec SearchRecord) error

	// RecentSearches returns up to limit records, newest first
	RecentSearches(ctx context.Context, limit int) ([]SearchRecord, error)

	// Health checks store connectivity
	Health(ctx context.Context) error

	Close() error
}

package postgres

import (
	"context"
	"sort"
	"sync"

	"github.com/pawait/weatherview/internal/domain"
)

// MockRepository implements domain.SearchLogRepository in memory for tests and demo mode
type MockRepository struct {
	mu      sync.RWMutex
	records []domain.SearchRecord
}

// NewMockRepository creates a new mock repository
func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

// SaveSearch keeps the record in memory, capped at 500 entries
func (r *MockRepository) SaveSearch(ctx context.Context, rec domain.SearchRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	if len(r.records) > 500 {
		r.records = r.records[len(r.records)-500:]
	}
	return nil
}

// RecentSearches returns up to limit records, newest first
func (r *MockRepository) RecentSearches(ctx context.Context, limit int) ([]domain.SearchRecord, error) {
	r.mu.RLock()
	out := make([]domain.SearchRecord, len(r.records))
	copy(out, r.records)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].RequestedAt.After(out[j].RequestedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}

// Close is a no-op in mock mode
func (r *MockRepository) Close() error {
	return nil
}

var _ domain.SearchLogRepository = (*MockRepository)(nil)

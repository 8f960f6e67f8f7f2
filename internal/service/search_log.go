package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/pawait/weatherview/internal/domain"
)

// SearchLog persists completed lookups in the background
type SearchLog struct {
	repo DataRepository

	wgBg sync.WaitGroup // tracks background goroutines for graceful shutdown
}

// NewSearchLog creates a search log writing to repo
func NewSearchLog(repo DataRepository) *SearchLog {
	return &SearchLog{repo: repo}
}

// Record saves rec asynchronously. A nil SearchLog discards it.
func (s *SearchLog) Record(rec domain.SearchRecord) {
	if s == nil || s.repo == nil {
		return
	}
	s.wgBg.Add(1)
	go func() {
		defer s.wgBg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.SaveSearch(ctx, rec); err != nil {
			log.Printf("Failed to save search log: %v", err)
		}
	}()
}

// Recent returns up to limit records, newest first
func (s *SearchLog) Recent(ctx context.Context, limit int) ([]domain.SearchRecord, error) {
	return s.repo.RecentSearches(ctx, limit)
}

// Health checks the underlying store
func (s *SearchLog) Health(ctx context.Context) error {
	return s.repo.Health(ctx)
}

// WaitBackground blocks until all background save goroutines complete.
// Call during graceful shutdown to avoid dropped writes.
func (s *SearchLog) WaitBackground() {
	s.wgBg.Wait()
}

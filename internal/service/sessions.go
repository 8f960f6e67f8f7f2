package service

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ViewFactory builds the WeatherView for a new session
type ViewFactory func() *WeatherView

// Sessions maps browser session ids to their WeatherView
type Sessions struct {
	newView ViewFactory
	views   map[string]*WeatherView
	mutex   sync.RWMutex
}

// NewSessions creates an empty session registry
func NewSessions(newView ViewFactory) *Sessions {
	return &Sessions{
		newView: newView,
		views:   make(map[string]*WeatherView),
	}
}

// NewID returns a fresh session id
func (s *Sessions) NewID() string {
	return uuid.NewString()
}

// View returns the view for id, creating it on first use
func (s *Sessions) View(id string) *WeatherView {
	s.mutex.RLock()
	v, ok := s.views[id]
	s.mutex.RUnlock()
	if ok {
		return v
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if v, ok := s.views[id]; ok {
		return v
	}
	v = s.newView()
	s.views[id] = v
	return v
}

// Len returns the number of live sessions
func (s *Sessions) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.views)
}

// Prune closes and removes views idle for longer than maxAge
func (s *Sessions) Prune(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	s.mutex.Lock()
	var stale []*WeatherView
	for id, v := range s.views {
		if v.LastSeen().Before(cutoff) {
			stale = append(stale, v)
			delete(s.views, id)
		}
	}
	s.mutex.Unlock()

	for _, v := range stale {
		v.Close()
	}
	if len(stale) > 0 {
		log.Printf("Pruned %d idle sessions", len(stale))
	}
	return len(stale)
}

// PruneEvery runs Prune(maxAge) on every tick of interval until the returned
// stop function is called. stop returns once no Prune is running.
func (s *Sessions) PruneEvery(interval, maxAge time.Duration) (stop func()) {
	quit := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.Prune(maxAge)
			case <-quit:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(quit) })
		<-done
	}
}

// Close closes every view
func (s *Sessions) Close() {
	s.mutex.Lock()
	views := s.views
	s.views = make(map[string]*WeatherView)
	s.mutex.Unlock()

	for _, v := range views {
		v.Close()
	}
}

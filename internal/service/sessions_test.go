package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawait/weatherview/internal/domain"
)

func TestSessions(t *testing.T) {
	fake := newFakeProvider()
	sessions := NewSessions(func() *WeatherView { return NewWeatherView(fake, nil) })
	defer sessions.Close()

	t.Run("should return the same view for the same id", func(t *testing.T) {
		id := sessions.NewID()
		assert.NotEmpty(t, id)
		assert.Same(t, sessions.View(id), sessions.View(id))
		assert.NotSame(t, sessions.View(id), sessions.View(sessions.NewID()))
	})

	t.Run("should keep views independent", func(t *testing.T) {
		a := sessions.View("a")
		b := sessions.View("b")
		a.ToggleUnit()

		assert.Equal(t, domain.Fahrenheit, a.State().Query.Unit)
		assert.Equal(t, domain.Celsius, b.State().Query.Unit)
	})
}

func TestSessions_Prune(t *testing.T) {
	blocked := make(chan context.Context, 1)
	fake := newFakeProvider()
	fake.respond = func(ctx context.Context, _ string, _ domain.Unit) (domain.Snapshot, error) {
		blocked <- ctx
		<-ctx.Done()
		return domain.Snapshot{}, ctx.Err()
	}
	sessions := NewSessions(func() *WeatherView { return NewWeatherView(fake, nil) })
	defer sessions.Close()

	idle := sessions.View("idle")
	require.NoError(t, idle.SubmitSearch("Nairobi"))
	inFlight := <-blocked

	idle.mu.Lock()
	idle.lastSeen = time.Now().Add(-time.Hour)
	idle.mu.Unlock()

	sessions.View("active")

	assert.Equal(t, 1, sessions.Prune(30*time.Minute))
	assert.Equal(t, 1, sessions.Len())
	assert.ErrorIs(t, inFlight.Err(), context.Canceled)
	assert.NotSame(t, idle, sessions.View("idle"))
}

func TestSessions_PruneEvery(t *testing.T) {
	fake := newFakeProvider()
	sessions := NewSessions(func() *WeatherView { return NewWeatherView(fake, nil) })
	defer sessions.Close()

	idle := sessions.View("idle")
	idle.mu.Lock()
	idle.lastSeen = time.Now().Add(-time.Hour)
	idle.mu.Unlock()

	stop := sessions.PruneEvery(5*time.Millisecond, 30*time.Minute)
	assert.Eventually(t, func() bool {
		return sessions.Len() == 0
	}, time.Second, 5*time.Millisecond)

	stop()
	stop()

	// nothing prunes after stop has returned
	stale := sessions.View("stale")
	stale.mu.Lock()
	stale.lastSeen = time.Now().Add(-time.Hour)
	stale.mu.Unlock()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 1, sessions.Len())
}

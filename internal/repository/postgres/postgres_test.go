package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawait/weatherview/internal/domain"
)

func TestMockRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMockRepository()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, city := range []string{"Nairobi", "Oslo", "Lima"} {
		require.NoError(t, repo.SaveSearch(ctx, domain.SearchRecord{
			ID:          uuid.NewString(),
			City:        city,
			Unit:        domain.Celsius,
			Outcome:     domain.OutcomeSuccess,
			RequestedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	recent, err := repo.RecentSearches(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Lima", recent[0].City)
	assert.Equal(t, "Oslo", recent[1].City)

	assert.NoError(t, repo.Health(ctx))
	assert.NoError(t, repo.Close())
}

// TestPostgresRepository runs against a real database when TEST_DATABASE_URL is set
func TestPostgresRepository(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	repo, err := NewPostgresRepository(ctx, pool)
	require.NoError(t, err)
	defer repo.Close()

	require.NoError(t, repo.Health(ctx))

	temp := 21.5
	rec := domain.SearchRecord{
		ID:           uuid.NewString(),
		City:         "Nairobi",
		Unit:         domain.Fahrenheit,
		Outcome:      domain.OutcomeSuccess,
		ResolvedCity: "Nairobi",
		Temperature:  &temp,
		RequestedAt:  time.Now().UTC().Add(time.Hour).Truncate(time.Millisecond),
		Duration:     120 * time.Millisecond,
	}
	require.NoError(t, repo.SaveSearch(ctx, rec))

	recent, err := repo.RecentSearches(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, rec.ID, recent[0].ID)
	assert.Equal(t, domain.Fahrenheit, recent[0].Unit)
	require.NotNil(t, recent[0].Temperature)
	assert.Equal(t, temp, *recent[0].Temperature)
	assert.Equal(t, rec.Duration, recent[0].Duration)

	_, err = pool.Exec(ctx, `DELETE FROM weather_searches WHERE id = $1`, rec.ID)
	require.NoError(t, err)
}

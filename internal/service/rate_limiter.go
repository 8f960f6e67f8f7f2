package service

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/pawait/weatherview/internal/domain"
)

// RateLimitedProvider wraps a WeatherProvider with a token bucket
type RateLimitedProvider struct {
	provider WeatherProvider
	limiter  *rate.Limiter
}

// NewRateLimitedProvider allows rps requests per second with bursts of burst
func NewRateLimitedProvider(provider WeatherProvider, rps float64, burst int) *RateLimitedProvider {
	return &RateLimitedProvider{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// GetWeather waits for the limiter, then forwards to the wrapped provider
func (r *RateLimitedProvider) GetWeather(ctx context.Context, city string, unit domain.Unit) (domain.Snapshot, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return domain.Snapshot{}, fmt.Errorf("provider: rate limit wait canceled: %w", err)
	}
	return r.provider.GetWeather(ctx, city, unit)
}

var _ WeatherProvider = (*RateLimitedProvider)(nil)

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/pawait/weatherview/internal/domain"
)

// ErrNotFound is returned for any non-2xx provider response
var ErrNotFound = errors.New("weather data not found")

// WeatherProvider fetches a snapshot for a city in the requested unit system
type WeatherProvider interface {
	GetWeather(ctx context.Context, city string, unit domain.Unit) (domain.Snapshot, error)
}

// HTTPProvider calls the provider's GET /api/weather endpoint
type HTTPProvider struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
}

// NewHTTPProvider creates a provider client. timeout <= 0 disables the client timeout.
func NewHTTPProvider(baseURL string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tracer: otel.Tracer("weatherview/provider"),
	}
}

// WeatherURL builds the request URL for city and unit
func (p *HTTPProvider) WeatherURL(city string, unit domain.Unit) string {
	params := url.Values{}
	params.Set("city", city)
	params.Set("unit", unit.System())
	return p.baseURL + "/api/weather?" + params.Encode()
}

// GetWeather fetches current conditions and forecast
func (p *HTTPProvider) GetWeather(ctx context.Context, city string, unit domain.Unit) (domain.Snapshot, error) {
	ctx, span := p.tracer.Start(ctx, "GET-WEATHER", trace.WithAttributes(
		attribute.String("weather.city", city),
		attribute.String("weather.unit", unit.System()),
	))
	defer span.End()

	snap, err := p.fetch(ctx, city, unit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return snap, err
}

func (p *HTTPProvider) fetch(ctx context.Context, city string, unit domain.Unit) (domain.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.WeatherURL(city, unit), nil)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("provider: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("provider: failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return domain.Snapshot{}, fmt.Errorf("provider: %w (status %d)", ErrNotFound, resp.StatusCode)
	}

	var snap domain.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("provider: failed to decode response: %w", err)
	}

	return snap, nil
}

var _ WeatherProvider = (*HTTPProvider)(nil)

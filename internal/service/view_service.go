package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pawait/weatherview/internal/domain"
)

// ErrBlankCity is returned when a search is requested for an empty or whitespace city
var ErrBlankCity = errors.New("city is blank")

// WeatherView owns the state of one page view and drives its single network operation.
//
// Every search gets a sequence number. Starting a search cancels the one in flight,
// and a completion whose sequence is no longer current is dropped.
type WeatherView struct {
	provider WeatherProvider
	searches *SearchLog
	now      func() time.Time

	mu       sync.Mutex
	query    domain.QueryState
	status   domain.Status
	seq      uint64
	inFlight string
	cancel   context.CancelFunc
	lastSeen time.Time
	closed   bool

	base     context.Context
	stopBase context.CancelFunc
	wg       sync.WaitGroup
}

// NewWeatherView creates an idle view in celsius. searches may be nil.
func NewWeatherView(provider WeatherProvider, searches *SearchLog) *WeatherView {
	base, stop := context.WithCancel(context.Background())
	return &WeatherView{
		provider: provider,
		searches: searches,
		now:      time.Now,
		query:    domain.QueryState{Unit: domain.Celsius},
		status:   domain.Idle{},
		lastSeen: time.Now(),
		base:     base,
		stopBase: stop,
	}
}

// State returns a copy of the current state
func (v *WeatherView) State() domain.ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastSeen = v.now()
	return domain.ViewState{Query: v.query, Status: v.status}
}

// HandleSubmit is the form submission path: it records the input text and
// starts a search for the trimmed text when it is not blank.
func (v *WeatherView) HandleSubmit(input string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.query.CityText = input
	v.lastSeen = v.now()

	city := strings.TrimSpace(input)
	if city == "" {
		return false
	}
	v.startLocked(city)
	return true
}

// SubmitSearch starts fetching city in the current unit. The call returns once the
// view is loading; the result is applied asynchronously.
func (v *WeatherView) SubmitSearch(city string) error {
	if strings.TrimSpace(city) == "" {
		return ErrBlankCity
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastSeen = v.now()
	v.startLocked(city)
	return nil
}

// ToggleUnit flips celsius/fahrenheit and reports whether a fetch was started.
// A search still loading is re-issued in the new unit; otherwise an existing
// snapshot's resolved city is re-fetched.
func (v *WeatherView) ToggleUnit() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastSeen = v.now()
	v.query.Unit = v.query.Unit.Toggle()

	if v.inFlight != "" {
		v.startLocked(v.inFlight)
		return true
	}
	snap := v.status.Snapshot()
	if snap == nil || strings.TrimSpace(snap.Current.Name) == "" {
		return false
	}
	v.startLocked(snap.Current.Name)
	return true
}

func (v *WeatherView) startLocked(city string) {
	if v.closed {
		return
	}
	if v.cancel != nil {
		v.cancel()
	}
	v.seq++
	seq := v.seq
	unit := v.query.Unit
	v.inFlight = city

	ctx, cancel := context.WithCancel(v.base)
	v.cancel = cancel
	v.status = domain.Loading{Previous: v.status.Snapshot()}

	v.wg.Add(1)
	go func() {
		defer v.wg.Done()
		defer cancel()
		v.fetch(ctx, seq, city, unit)
	}()
}

func (v *WeatherView) fetch(ctx context.Context, seq uint64, city string, unit domain.Unit) {
	started := v.now()
	snap, err := v.provider.GetWeather(ctx, city, unit)
	finished := v.now()

	v.mu.Lock()
	if seq != v.seq {
		v.mu.Unlock()
		log.Printf("Dropping superseded weather response for %q", city)
		return
	}
	v.cancel = nil
	v.inFlight = ""
	if err != nil {
		v.status = domain.Failed{Message: domain.FetchFailedMessage, Previous: v.status.Snapshot()}
	} else {
		snap.Unit = unit
		v.status = domain.Ready{Data: &snap}
	}
	v.mu.Unlock()

	rec := domain.SearchRecord{
		ID:          uuid.NewString(),
		City:        city,
		Unit:        unit,
		Outcome:     domain.OutcomeSuccess,
		RequestedAt: started,
		Duration:    finished.Sub(started),
	}
	if err != nil {
		log.Printf("Weather fetch for %q failed: %v", city, err)
		rec.Outcome = domain.OutcomeError
	} else {
		temp := snap.Current.Main.Temp
		rec.ResolvedCity = snap.Current.Name
		rec.Temperature = &temp
	}
	v.searches.Record(rec)
}

// Wait blocks until every started fetch has completed
func (v *WeatherView) Wait() {
	v.wg.Wait()
}

// LastSeen is the last time the view was read or acted on
func (v *WeatherView) LastSeen() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastSeen
}

// Close cancels any in-flight request and rejects further searches
func (v *WeatherView) Close() {
	v.mu.Lock()
	v.closed = true
	v.mu.Unlock()
	v.stopBase()
	v.wg.Wait()
}

package domain

// FetchFailedMessage is the only error text ever shown to the user
const FetchFailedMessage = "Failed to fetch weather data"

// StatusKind names a RequestStatus variant
type StatusKind string

const (
	StatusIdle    StatusKind = "idle"
	StatusLoading StatusKind = "loading"
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// Status is the request status of a view. Implementations are Idle, Loading,
// Ready and Failed; the set is closed.
type Status interface {
	Kind() StatusKind
	// Snapshot returns the snapshot retained by this status, or nil
	Snapshot() *Snapshot
}

// Idle means nothing has been requested yet
type Idle struct{}

// Loading means a request is in flight. Previous is the snapshot that was
// current when the request started.
type Loading struct {
	Previous *Snapshot
}

// Ready means the last request succeeded
type Ready struct {
	Data *Snapshot
}

// Failed means the last request failed. Previous is kept untouched.
type Failed struct {
	Message  string
	Previous *Snapshot
}

func (Idle) Kind() StatusKind { return StatusIdle }
func (Idle) Snapshot() *Snapshot { return nil }
func (Loading) Kind() StatusKind { return StatusLoading }
func (s Loading) Snapshot() *Snapshot { return s.Previous }
func (Ready) Kind() StatusKind { return StatusSuccess }
func (s Ready) Snapshot() *Snapshot { return s.Data }
func (Failed) Kind() StatusKind { return StatusError }
func (s Failed) Snapshot() *Snapshot { return s.Previous }

// ViewState is a point-in-time copy of a WeatherView
type ViewState struct {
	Query  QueryState
	Status Status
}

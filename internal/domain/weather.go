package domain

// Unit is the temperature unit selected in the view
type Unit string

const (
	Celsius    Unit = "celsius"
	Fahrenheit Unit = "fahrenheit"
)

// Toggle returns the other unit
func (u Unit) Toggle() Unit {
	if u == Fahrenheit {
		return Celsius
	}
	return Fahrenheit
}

// System returns the provider's unit system parameter for u
func (u Unit) System() string {
	if u == Fahrenheit {
		return "imperial"
	}
	return "metric"
}

// Symbol returns the display suffix, e.g. "°C"
func (u Unit) Symbol() string {
	if u == Fahrenheit {
		return "°F"
	}
	return "°C"
}

// QueryState holds what the user typed and the unit toggle
type QueryState struct {
	CityText string `json:"city_text"`
	Unit     Unit   `json:"unit"`
}

// Condition is one entry of the provider's weather array
type Condition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// CurrentMain holds the measured values of the current observation
type CurrentMain struct {
	Temp     float64 `json:"temp"`
	Humidity float64 `json:"humidity"`
}

// Wind holds the current wind values
type Wind struct {
	Speed float64 `json:"speed"`
}

// CurrentConditions is the "current" part of a snapshot
type CurrentConditions struct {
	Name    string      `json:"name"`
	Dt      int64       `json:"dt"`
	Main    CurrentMain `json:"main"`
	Weather []Condition `json:"weather"`
	Wind    Wind        `json:"wind"`
}

// ForecastMain holds the measured values of a forecast entry
type ForecastMain struct {
	Temp float64 `json:"temp"`
}

// ForecastEntry is one 3-hour-interval data point
type ForecastEntry struct {
	Dt      int64        `json:"dt"`
	Main    ForecastMain `json:"main"`
	Weather []Condition  `json:"weather"`
}

// Forecast is the "forecast" part of a snapshot
type Forecast struct {
	List []ForecastEntry `json:"list"`
}

// Snapshot is the full provider payload from one successful fetch.
// It is consumed as-is; nothing beyond JSON decoding is validated.
type Snapshot struct {
	Current  CurrentConditions `json:"current"`
	Forecast Forecast          `json:"forecast"`

	// Unit is the unit the snapshot was fetched in. It is not part of the payload.
	Unit Unit `json:"-"`
}

// FirstCondition returns weather[0] or the zero Condition
func FirstCondition(conditions []Condition) Condition {
	if len(conditions) == 0 {
		return Condition{}
	}
	return conditions[0]
}

package presenter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawait/weatherview/internal/domain"
)

// Tuesday, November 14, 2023 22:13:20 UTC
const observedAt = 1700000000

func forecastList(n int) []domain.ForecastEntry {
	list := make([]domain.ForecastEntry, n)
	for i := range list {
		list[i] = domain.ForecastEntry{
			Dt:      observedAt + int64(i)*3*3600,
			Main:    domain.ForecastMain{Temp: float64(i)},
			Weather: []domain.Condition{{Description: "clear sky", Icon: "01d"}},
		}
	}
	return list
}

func nairobi() *domain.Snapshot {
	return &domain.Snapshot{
		Current: domain.CurrentConditions{
			Name:    "Nairobi",
			Dt:      observedAt,
			Main:    domain.CurrentMain{Temp: 21.5, Humidity: 64},
			Weather: []domain.Condition{{Description: "scattered clouds", Icon: "03d"}},
			Wind:    domain.Wind{Speed: 3.6},
		},
		Forecast: domain.Forecast{List: forecastList(40)},
	}
}

var utc = Options{Location: time.UTC}

func TestDailyForecast(t *testing.T) {
	tests := []struct {
		name string
		size int
		want []float64
	}{
		{"five days", 40, []float64{8, 16, 24}},
		{"exactly enough", 25, []float64{8, 16, 24}},
		{"one short", 24, []float64{8, 16}},
		{"two days", 10, []float64{8}},
		{"today only", 8, nil},
		{"empty", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []float64
			for _, e := range DailyForecast(forecastList(tt.size)) {
				got = append(got, e.Main.Temp)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuild_Ready(t *testing.T) {
	state := domain.ViewState{
		Query:  domain.QueryState{CityText: "nairobi", Unit: domain.Celsius},
		Status: domain.Ready{Data: nairobi()},
	}

	page := Build(state, utc)

	assert.Equal(t, domain.StatusSuccess, page.Status)
	assert.False(t, page.Loading)
	assert.Empty(t, page.Error)
	assert.Equal(t, "°C", page.UnitSymbol)
	require.NotNil(t, page.Weather)

	cur := page.Weather.Current
	assert.Equal(t, "22°C", cur.Temperature)
	assert.Equal(t, "Scattered Clouds", cur.Description)
	assert.Equal(t, "http://openweathermap.org/img/wn/03d@4x.png", cur.IconURL)
	assert.Equal(t, "Tuesday, November 14, 2023", cur.Date)
	assert.Equal(t, "Nairobi", cur.City)

	assert.Equal(t, "3.6 km/h", page.Weather.Wind)
	assert.Equal(t, "64%", page.Weather.Humidity)
	assert.Equal(t, 64.0, page.Weather.HumidityBar)

	require.Len(t, page.Weather.Forecast, 3)
	assert.Equal(t, ForecastTile{
		Day:         "Wed",
		IconURL:     "http://openweathermap.org/img/wn/01d.png",
		Description: "clear sky",
		Temperature: "8°C",
	}, page.Weather.Forecast[0])
	assert.Equal(t, "Thu", page.Weather.Forecast[1].Day)
	assert.Equal(t, "16°C", page.Weather.Forecast[1].Temperature)
	assert.Equal(t, "24°C", page.Weather.Forecast[2].Temperature)
}

func TestBuild_Fahrenheit(t *testing.T) {
	snap := nairobi()
	snap.Current.Main.Temp = 70.7
	state := domain.ViewState{
		Query:  domain.QueryState{Unit: domain.Fahrenheit},
		Status: domain.Ready{Data: snap},
	}

	page := Build(state, utc)
	assert.Equal(t, "°F", page.UnitSymbol)
	assert.Equal(t, "71°F", page.Weather.Current.Temperature)
	assert.Equal(t, "8°F", page.Weather.Forecast[0].Temperature)
}

func TestBuild_Statuses(t *testing.T) {
	prev := nairobi()

	t.Run("idle shows nothing", func(t *testing.T) {
		page := Build(domain.ViewState{Status: domain.Idle{}}, utc)
		assert.Equal(t, domain.StatusIdle, page.Status)
		assert.Equal(t, domain.Celsius, page.Unit)
		assert.Nil(t, page.Weather)
		assert.False(t, page.Loading)
	})

	t.Run("loading keeps the previous snapshot", func(t *testing.T) {
		page := Build(domain.ViewState{Status: domain.Loading{Previous: prev}}, utc)
		assert.True(t, page.Loading)
		assert.Empty(t, page.Error)
		require.NotNil(t, page.Weather)
		assert.Equal(t, "Nairobi", page.Weather.Current.City)
	})

	t.Run("failed shows only the error", func(t *testing.T) {
		page := Build(domain.ViewState{Status: domain.Failed{Message: domain.FetchFailedMessage, Previous: prev}}, utc)
		assert.False(t, page.Loading)
		assert.Equal(t, "Failed to fetch weather data", page.Error)
		assert.Nil(t, page.Weather)
	})
}

func TestBuild_MissingConditions(t *testing.T) {
	snap := nairobi()
	snap.Current.Weather = nil
	snap.Current.Main.Humidity = 130
	snap.Forecast.List = nil

	page := Build(domain.ViewState{Status: domain.Ready{Data: snap}}, Options{IconBaseURL: "https://icons.example/wn/", Location: time.UTC})

	require.NotNil(t, page.Weather)
	assert.Equal(t, "https://icons.example/wn/@4x.png", page.Weather.Current.IconURL)
	assert.Empty(t, page.Weather.Current.Description)
	assert.Equal(t, 100.0, page.Weather.HumidityBar)
	assert.Empty(t, page.Weather.Forecast)
}

func TestTemperature(t *testing.T) {
	assert.Equal(t, "-2°C", Temperature(-2.5, domain.Celsius))
	assert.Equal(t, "3°F", Temperature(2.5, domain.Fahrenheit))
	assert.Equal(t, "0°C", Temperature(-0.4, domain.Celsius))
}

func TestBuild_SnapshotUnit(t *testing.T) {
	snap := nairobi()
	snap.Unit = domain.Celsius

	t.Run("should label a loading celsius snapshot in celsius after a toggle", func(t *testing.T) {
		state := domain.ViewState{
			Query:  domain.QueryState{Unit: domain.Fahrenheit},
			Status: domain.Loading{Previous: snap},
		}
		page := Build(state, utc)
		assert.Equal(t, "°F", page.UnitSymbol)
		require.NotNil(t, page.Weather)
		assert.Equal(t, "22°C", page.Weather.Current.Temperature)
		assert.Equal(t, "8°C", page.Weather.Forecast[0].Temperature)
	})

	t.Run("should fall back to the query unit when the snapshot has none", func(t *testing.T) {
		bare := nairobi()
		page := Build(domain.ViewState{
			Query:  domain.QueryState{Unit: domain.Fahrenheit},
			Status: domain.Ready{Data: bare},
		}, utc)
		assert.Equal(t, "22°F", page.Weather.Current.Temperature)
	})
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Scattered Clouds", titleCase("scattered clouds"))
	assert.Equal(t, "High UV Index", titleCase("high UV index"))
}

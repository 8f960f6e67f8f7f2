// Package presenter turns a view state into the model the page template and
// the JSON endpoint render. It holds every display rule and performs no I/O.
package presenter

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pawait/weatherview/internal/domain"
	"github.com/pawait/weatherview/pkg/utils"
)

const (
	// EntriesPerDay is the number of 3-hour forecast entries per day
	EntriesPerDay = 8
	// OutlookDays is the number of forecast tiles shown
	OutlookDays = 3

	DefaultIconBaseURL = "http://openweathermap.org/img/wn"

	longDateLayout = "Monday, January 2, 2006"
	weekdayLayout  = "Mon"
)

// Options configures rendering
type Options struct {
	IconBaseURL string
	Location    *time.Location
}

// Page is the complete render model
type Page struct {
	Status     domain.StatusKind `json:"status"`
	CityText   string            `json:"city_text"`
	Unit       domain.Unit       `json:"unit"`
	UnitSymbol string            `json:"unit_symbol"`
	Loading    bool              `json:"loading"`
	Error      string            `json:"error,omitempty"`
	Weather    *WeatherPanel     `json:"weather,omitempty"`
}

// WeatherPanel is everything shown for one snapshot
type WeatherPanel struct {
	Current  CurrentCard    `json:"current"`
	Forecast []ForecastTile `json:"forecast"`
	Wind     string         `json:"wind"`
	Humidity string         `json:"humidity"`
	// HumidityBar is the bar width in percent, 0..100
	HumidityBar float64 `json:"humidity_bar"`
}

type CurrentCard struct {
	IconURL     string `json:"icon_url"`
	Description string `json:"description"`
	Temperature string `json:"temperature"`
	Date        string `json:"date"`
	City        string `json:"city"`
}

type ForecastTile struct {
	Day         string `json:"day"`
	IconURL     string `json:"icon_url"`
	Description string `json:"description"`
	Temperature string `json:"temperature"`
}

// Build renders state. The snapshot is shown when the last request succeeded,
// and while a new request is loading over a previous snapshot.
func Build(state domain.ViewState, opts Options) Page {
	opts = withDefaults(opts)
	unit := state.Query.Unit
	if unit == "" {
		unit = domain.Celsius
	}

	page := Page{
		Status:     state.Status.Kind(),
		CityText:   state.Query.CityText,
		Unit:       unit,
		UnitSymbol: unit.Symbol(),
	}

	var shown *domain.Snapshot
	switch s := state.Status.(type) {
	case domain.Loading:
		page.Loading = true
		shown = s.Previous
	case domain.Ready:
		shown = s.Data
	case domain.Failed:
		page.Error = s.Message
	}

	if shown != nil {
		// temperatures keep the unit they were fetched in
		fetched := shown.Unit
		if fetched == "" {
			fetched = unit
		}
		page.Weather = buildPanel(*shown, fetched, opts)
	}
	return page
}

func withDefaults(opts Options) Options {
	if opts.IconBaseURL == "" {
		opts.IconBaseURL = DefaultIconBaseURL
	}
	opts.IconBaseURL = strings.TrimRight(opts.IconBaseURL, "/")
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return opts
}

func buildPanel(snap domain.Snapshot, unit domain.Unit, opts Options) *WeatherPanel {
	cur := snap.Current
	cond := domain.FirstCondition(cur.Weather)

	panel := &WeatherPanel{
		Current: CurrentCard{
			IconURL:     LargeIconURL(opts.IconBaseURL, cond.Icon),
			Description: titleCase(cond.Description),
			Temperature: Temperature(cur.Main.Temp, unit),
			Date:        LongDate(cur.Dt, opts.Location),
			City:        cur.Name,
		},
		Wind:        utils.FormatNumber(cur.Wind.Speed) + " km/h",
		Humidity:    utils.FormatNumber(cur.Main.Humidity) + "%",
		HumidityBar: utils.Clamp(cur.Main.Humidity, 0, 100),
	}

	for _, entry := range DailyForecast(snap.Forecast.List) {
		c := domain.FirstCondition(entry.Weather)
		panel.Forecast = append(panel.Forecast, ForecastTile{
			Day:         Weekday(entry.Dt, opts.Location),
			IconURL:     SmallIconURL(opts.IconBaseURL, c.Icon),
			Description: c.Description,
			Temperature: Temperature(entry.Main.Temp, unit),
		})
	}
	return panel
}

// DailyForecast keeps every EntriesPerDay-th entry, drops the first (today) and
// returns the next OutlookDays: list indices 8, 16 and 24. Shorter lists give
// fewer entries.
func DailyForecast(list []domain.ForecastEntry) []domain.ForecastEntry {
	var daily []domain.ForecastEntry
	for i := 0; i < len(list); i += EntriesPerDay {
		daily = append(daily, list[i])
	}
	if len(daily) <= 1 {
		return nil
	}
	daily = daily[1:]
	if len(daily) > OutlookDays {
		daily = daily[:OutlookDays]
	}
	return daily
}

// Temperature rounds half-up and appends the unit symbol, e.g. "22°C"
func Temperature(value float64, unit domain.Unit) string {
	return fmt.Sprintf("%d%s", utils.RoundHalfUp(value), unit.Symbol())
}

// LargeIconURL is the current-conditions icon
func LargeIconURL(base, code string) string {
	return fmt.Sprintf("%s/%s@4x.png", base, code)
}

// SmallIconURL is the forecast tile icon
func SmallIconURL(base, code string) string {
	return fmt.Sprintf("%s/%s.png", base, code)
}

// LongDate formats Unix seconds as "Tuesday, November 14, 2023"
func LongDate(unix int64, loc *time.Location) string {
	return time.Unix(unix, 0).In(loc).Format(longDateLayout)
}

// Weekday formats Unix seconds as a short weekday name
func Weekday(unix int64, loc *time.Location) string {
	return time.Unix(unix, 0).In(loc).Format(weekdayLayout)
}

func titleCase(s string) string {
	return cases.Title(language.English, cases.NoLower).String(s)
}

package weather

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/i474232898/weather-report/internal/units"
)

// UnixTime decodes the provider's unix-second timestamps. The wrapped time
// is always UTC; local rendering happens against the record's fixed offset.
type UnixTime struct {
	time.Time
}

func (t UnixTime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(t.Unix(), 10)), nil
}

func (t *UnixTime) UnmarshalJSON(b []byte) error {
	n, err := strconv.ParseInt(string(bytes.TrimSpace(b)), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid unix timestamp %q: %w", b, err)
	}
	t.Time = time.Unix(n, 0).UTC()
	return nil
}

// Coord is the record's resolved coordinate pair.
type Coord struct {
	Lon units.Longitude `json:"lon"`
	Lat units.Latitude  `json:"lat"`
}

// Condition is one entry of the record's weather-description list.
type Condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

// Readings is the "main" block shared by current conditions and forecast
// samples. Sea-level and ground-level pressure only appear on forecasts.
type Readings struct {
	Temp      units.Temperature `json:"temp"`
	FeelsLike units.Temperature `json:"feels_like"`
	TempMin   units.Temperature `json:"temp_min"`
	TempMax   units.Temperature `json:"temp_max"`
	Pressure  units.Pressure    `json:"pressure"`
	SeaLevel  *units.Pressure   `json:"sea_level,omitempty"`
	GrndLevel *units.Pressure   `json:"grnd_level,omitempty"`
	Humidity  units.Humidity    `json:"humidity"`
}

// Wind direction is absent on calm readings.
type Wind struct {
	Speed units.Speed      `json:"speed"`
	Deg   *units.Direction `json:"deg,omitempty"`
}

// Sys carries country and sun times on the current-conditions record.
type Sys struct {
	Country string   `json:"country,omitempty"`
	Sunrise UnixTime `json:"sunrise"`
	Sunset  UnixTime `json:"sunset"`
}

// Volume is a rain or snow accumulation block, reported by the provider
// over a three hour window.
type Volume struct {
	ThreeHour *units.Precipitation `json:"3h,omitempty"`
}

// Amount returns the reported accumulation, treating a missing block or
// window as zero rather than an error.
func (v *Volume) Amount() units.Precipitation {
	if v == nil || v.ThreeHour == nil {
		return 0
	}
	return *v.ThreeHour
}

// CurrentConditions is the provider's current-weather record with every
// numeric field carried as a validated quantity.
type CurrentConditions struct {
	Coord      Coord                `json:"coord"`
	Weather    []Condition          `json:"weather"`
	Base       string               `json:"base"`
	Main       Readings             `json:"main"`
	Visibility *units.Distance      `json:"visibility,omitempty"`
	Wind       Wind                 `json:"wind"`
	Rain       *Volume              `json:"rain,omitempty"`
	Snow       *Volume              `json:"snow,omitempty"`
	Dt         UnixTime             `json:"dt"`
	Sys        Sys                  `json:"sys"`
	Timezone   units.TimeZoneOffset `json:"timezone"`
	Name       string               `json:"name"`
}

// ForecastEntry is one timestamped sample from the multi-day endpoint.
type ForecastEntry struct {
	Dt      UnixTime    `json:"dt"`
	Main    Readings    `json:"main"`
	Weather []Condition `json:"weather,omitempty"`
	Rain    *Volume     `json:"rain,omitempty"`
	Snow    *Volume     `json:"snow,omitempty"`
}

// City holds the forecast city's metadata; the timezone offset applies to
// every sample in the list.
type City struct {
	Name     string               `json:"name,omitempty"`
	Country  string               `json:"country,omitempty"`
	Timezone units.TimeZoneOffset `json:"timezone"`
	Sunrise  UnixTime             `json:"sunrise"`
	Sunset   UnixTime             `json:"sunset"`
}

// Forecast is the provider's multi-day forecast record.
type Forecast struct {
	List []ForecastEntry `json:"list"`
	City City            `json:"city"`
}

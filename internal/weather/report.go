package weather

import (
	"fmt"
	"strings"

	"github.com/i474232898/weather-report/internal/units"
)

const localTimeLayout = "2006-01-02 15:04:05 -07:00"

// Report renders the fixed current-conditions block. Rain and snow lines
// appear only when the record carries the block at all.
func (w *CurrentConditions) Report() string {
	loc := w.Timezone.Location()

	place := w.Name
	if w.Sys.Country != "" {
		place = w.Name + " " + w.Sys.Country
	}

	// Calm readings omit the wind direction; report them as due north.
	var bearing units.Direction
	if w.Wind.Deg != nil {
		bearing = *w.Wind.Deg
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Current conditions %s %sN %sE\n", place, w.Coord.Lat, w.Coord.Lon)
	fmt.Fprintf(&b, "Last Updated %s\n", w.Dt.In(loc).Format(localTimeLayout))
	fmt.Fprintf(&b, "\tTemperature: %0.2f F (%0.2f C)\n", w.Main.Temp.Fahrenheit(), w.Main.Temp.Celsius())
	fmt.Fprintf(&b, "\tRelative Humidity: %d%%\n", w.Main.Humidity.Percent())
	fmt.Fprintf(&b, "\tWind: %s degrees at %0.2f mph\n", bearing, w.Wind.Speed.Mph())
	fmt.Fprintf(&b, "\tConditions: %s\n", w.description())
	fmt.Fprintf(&b, "\tSunrise: %s\n", w.Sys.Sunrise.In(loc).Format(localTimeLayout))
	fmt.Fprintf(&b, "\tSunset: %s\n", w.Sys.Sunset.In(loc).Format(localTimeLayout))
	if w.Rain != nil {
		fmt.Fprintf(&b, "\tRain: %v in\n", w.Rain.Amount().Inches())
	}
	if w.Snow != nil {
		fmt.Fprintf(&b, "\tSnow: %v in\n", w.Snow.Amount().Inches())
	}
	return b.String()
}

// description tolerates an empty weather list; some stations report none.
func (w *CurrentConditions) description() string {
	if len(w.Weather) == 0 {
		return ""
	}
	return w.Weather[0].Description
}

// Report renders the per-day forecast table in ascending date order.
func (f *Forecast) Report() string {
	var b strings.Builder
	b.WriteString("\nForecast:\n")
	for _, d := range f.HighLow() {
		high := fmt.Sprintf("High: %0.1f F / %0.1f C", d.High.Fahrenheit(), d.High.Celsius())
		low := fmt.Sprintf("Low: %0.1f F / %0.1f C", d.Low.Fahrenheit(), d.Low.Celsius())

		var precip string
		if d.Rain.Millimeters() > 0 {
			precip += fmt.Sprintf("Rain %0.2f in", d.Rain.Inches())
		}
		if d.Snow.Millimeters() > 0 {
			precip += fmt.Sprintf("Snow %0.2f in", d.Snow.Inches())
		}

		fmt.Fprintf(&b, "\t%s %-25s %-25s %-25s\n", d.Date, high, low, precip)
	}
	return b.String()
}

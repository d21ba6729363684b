package weather

import (
	"sort"

	"github.com/i474232898/weather-report/internal/units"
)

// DaySummary aggregates the forecast samples falling on one local calendar
// day. Icons is sorted and deduplicated.
type DaySummary struct {
	Date  string              `json:"date"` // local calendar date, YYYY-MM-DD
	High  units.Temperature   `json:"high"`
	Low   units.Temperature   `json:"low"`
	Rain  units.Precipitation `json:"rain"`
	Snow  units.Precipitation `json:"snow"`
	Icons []string            `json:"icons,omitempty"`
}

// HighLow folds the sample list into one summary per local calendar day,
// using the city's fixed UTC offset for every sample. The first sample of a
// day seeds high and low; later samples widen them independently. Missing
// rain or snow blocks contribute zero. Summaries come back in ascending
// date order, freshly computed on every call.
func (f *Forecast) HighLow() []DaySummary {
	loc := f.City.Timezone.Location()

	buckets := make(map[string]*DaySummary)
	icons := make(map[string]map[string]struct{})
	for _, e := range f.List {
		day := e.Dt.In(loc).Format("2006-01-02")

		b, ok := buckets[day]
		if !ok {
			b = &DaySummary{Date: day, High: e.Main.TempMax, Low: e.Main.TempMin}
			buckets[day] = b
			icons[day] = make(map[string]struct{})
		} else {
			if e.Main.TempMax > b.High {
				b.High = e.Main.TempMax
			}
			if e.Main.TempMin < b.Low {
				b.Low = e.Main.TempMin
			}
		}

		b.Rain = b.Rain.Add(e.Rain.Amount())
		b.Snow = b.Snow.Add(e.Snow.Amount())
		for _, c := range e.Weather {
			if c.Icon != "" {
				icons[day][c.Icon] = struct{}{}
			}
		}
	}

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)

	out := make([]DaySummary, 0, len(days))
	for _, day := range days {
		b := buckets[day]
		b.Icons = sortedSet(icons[day])
		out = append(out, *b)
	}
	return out
}

func sortedSet(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

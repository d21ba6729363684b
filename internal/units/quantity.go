package units

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Conversion factors. ATM follows the upstream data source's convention of
// 9.80665 hPa per atmosphere rather than the standard atmosphere.
const (
	metersPerMile       = 1609.344
	secondsPerHour      = 3600.0
	mmPerInch           = 25.4
	kpaPerHpa           = 10.0
	hpaPerAtm           = 98.0665 / 10.0
	psiPerHpa           = 14.223 / (98.0665 / 10.0)
	freezingPointKelvin = 273.15
	fahrenheitOffset    = 459.67
	fahrenheitFactor    = 1.8
)

// parseQuantity decodes a bare JSON number. Anything that is not a number
// surfaces as a range error so provider payload problems land in the same
// error family as out-of-range values.
func parseQuantity(b []byte, name string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(b)), 64)
	if err != nil {
		return 0, newRangeError(name, math.NaN())
	}
	return v, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Humidity is relative humidity as an integer percent in [0, 100].
type Humidity int64

// NewHumidity validates and truncates a percent value. Fractional percents
// with the same integral part construct equal values.
func NewHumidity(percent float64) (Humidity, error) {
	if !finite(percent) || percent < 0 || percent > 100 {
		return 0, newRangeError("relative humidity", percent)
	}
	return Humidity(percent), nil
}

// Percent returns the stored integer percent.
func (h Humidity) Percent() int64 { return int64(h) }

func (h Humidity) String() string { return strconv.FormatInt(int64(h), 10) }

func (h Humidity) MarshalJSON() ([]byte, error) { return json.Marshal(int64(h)) }

func (h *Humidity) UnmarshalJSON(b []byte) error {
	v, err := parseQuantity(b, "relative humidity")
	if err != nil {
		return err
	}
	parsed, err := NewHumidity(v)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// Distance in meters, non-negative.
type Distance float64

func NewDistance(meters float64) (Distance, error) {
	if !finite(meters) || meters < 0 {
		return 0, newRangeError("distance", meters)
	}
	return Distance(meters), nil
}

func DistanceFromMiles(miles float64) (Distance, error) {
	return NewDistance(miles * metersPerMile)
}

func (d Distance) Meters() float64 { return float64(d) }

func (d Distance) Miles() float64 { return float64(d) / metersPerMile }

func (d Distance) MarshalJSON() ([]byte, error) { return json.Marshal(float64(d)) }

func (d *Distance) UnmarshalJSON(b []byte) error {
	v, err := parseQuantity(b, "distance")
	if err != nil {
		return err
	}
	parsed, err := NewDistance(v)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Pressure in hectopascals, strictly positive.
type Pressure float64

func NewPressure(hpa float64) (Pressure, error) {
	if !finite(hpa) || hpa <= 0 {
		return 0, newRangeError("pressure", hpa)
	}
	return Pressure(hpa), nil
}

// PressureFromKpa converts with the upstream source's kPa factor, which
// pairs with its atmosphere constant (1 atm converts to 98.0665 kPa).
func PressureFromKpa(kpa float64) (Pressure, error) {
	return NewPressure(kpa / kpaPerHpa)
}

func PressureFromAtmosphere(atm float64) (Pressure, error) {
	return NewPressure(atm * hpaPerAtm)
}

func PressureFromPsi(psi float64) (Pressure, error) {
	return NewPressure(psi / psiPerHpa)
}

func (p Pressure) Hpa() float64 { return float64(p) }

func (p Pressure) Kpa() float64 { return float64(p) * kpaPerHpa }

func (p Pressure) Atmosphere() float64 { return float64(p) / hpaPerAtm }

func (p Pressure) Psi() float64 { return float64(p) * psiPerHpa }

func (p Pressure) MarshalJSON() ([]byte, error) { return json.Marshal(float64(p)) }

func (p *Pressure) UnmarshalJSON(b []byte) error {
	v, err := parseQuantity(b, "pressure")
	if err != nil {
		return err
	}
	parsed, err := NewPressure(v)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Speed in meters per second, non-negative.
type Speed float64

func NewSpeed(mps float64) (Speed, error) {
	if !finite(mps) || mps < 0 {
		return 0, newRangeError("speed", mps)
	}
	return Speed(mps), nil
}

func SpeedFromMph(mph float64) (Speed, error) {
	return NewSpeed(mph * metersPerMile / secondsPerHour)
}

func (s Speed) Mps() float64 { return float64(s) }

func (s Speed) Mph() float64 { return float64(s) * secondsPerHour / metersPerMile }

func (s Speed) MarshalJSON() ([]byte, error) { return json.Marshal(float64(s)) }

func (s *Speed) UnmarshalJSON(b []byte) error {
	v, err := parseQuantity(b, "speed")
	if err != nil {
		return err
	}
	parsed, err := NewSpeed(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Precipitation in millimeters, non-negative. The zero value is a valid
// empty accumulator.
type Precipitation float64

func NewPrecipitation(mm float64) (Precipitation, error) {
	if !finite(mm) || mm < 0 {
		return 0, newRangeError("precipitation amount", mm)
	}
	return Precipitation(mm), nil
}

func PrecipitationFromInches(in float64) (Precipitation, error) {
	return NewPrecipitation(in * mmPerInch)
}

func (p Precipitation) Millimeters() float64 { return float64(p) }

func (p Precipitation) Inches() float64 { return float64(p) / mmPerInch }

// Add sums two amounts through the validating constructor. Both operands
// are already non-negative, so the sum always revalidates cleanly.
func (p Precipitation) Add(q Precipitation) Precipitation {
	sum, err := NewPrecipitation(float64(p) + float64(q))
	if err != nil {
		return p
	}
	return sum
}

func (p Precipitation) MarshalJSON() ([]byte, error) { return json.Marshal(float64(p)) }

func (p *Precipitation) UnmarshalJSON(b []byte) error {
	v, err := parseQuantity(b, "precipitation amount")
	if err != nil {
		return err
	}
	parsed, err := NewPrecipitation(v)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Temperature in Kelvin, non-negative.
type Temperature float64

func NewTemperature(kelvin float64) (Temperature, error) {
	if !finite(kelvin) || kelvin < 0 {
		return 0, newRangeError("temperature", kelvin)
	}
	return Temperature(kelvin), nil
}

func TemperatureFromCelsius(c float64) (Temperature, error) {
	return NewTemperature(c + freezingPointKelvin)
}

func TemperatureFromFahrenheit(f float64) (Temperature, error) {
	return NewTemperature((f + fahrenheitOffset) / fahrenheitFactor)
}

func (t Temperature) Kelvin() float64 { return float64(t) }

func (t Temperature) Celsius() float64 { return float64(t) - freezingPointKelvin }

func (t Temperature) Fahrenheit() float64 {
	return float64(t)*fahrenheitFactor - fahrenheitOffset
}

func (t Temperature) MarshalJSON() ([]byte, error) { return json.Marshal(float64(t)) }

func (t *Temperature) UnmarshalJSON(b []byte) error {
	v, err := parseQuantity(b, "temperature")
	if err != nil {
		return err
	}
	parsed, err := NewTemperature(v)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TimeZoneOffset is a fixed offset from UTC in seconds, inside one day in
// either direction.
type TimeZoneOffset int32

func NewTimeZoneOffset(seconds int) (TimeZoneOffset, error) {
	if seconds <= -86400 || seconds >= 86400 {
		return 0, newRangeError("timezone offset", float64(seconds))
	}
	return TimeZoneOffset(seconds), nil
}

// Seconds returns the offset from UTC in seconds.
func (o TimeZoneOffset) Seconds() int { return int(o) }

// Location returns a fixed-offset *time.Location for converting provider
// timestamps to the forecast city's local clock.
func (o TimeZoneOffset) Location() *time.Location {
	return time.FixedZone("", int(o))
}

func (o TimeZoneOffset) MarshalJSON() ([]byte, error) { return json.Marshal(int32(o)) }

func (o *TimeZoneOffset) UnmarshalJSON(b []byte) error {
	v, err := parseQuantity(b, "timezone offset")
	if err != nil {
		return err
	}
	if v != math.Trunc(v) {
		return newRangeError("timezone offset", v)
	}
	parsed, err := NewTimeZoneOffset(int(v))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

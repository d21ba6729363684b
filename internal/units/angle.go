package units

import (
	"encoding/json"
	"math"
	"strconv"
)

const arcsecPerTurn = 360 * 3600

// Angle is a rotational value held as a degree/minute/second/sub-second
// decomposition. The parts keep the sign of the value they were built from,
// so -42.3 degrees decomposes to (-42, -18, 0). Two angles at the same
// rotational position compare equal regardless of how they were built:
// equality works on the normalized non-negative triple, not on the raw
// parts (90 equals 450, -90 equals 270).
type Angle struct {
	degree int16
	minute int8
	second int8
	subsec float32
}

// NewAngle builds an Angle from decimal degrees. Every float is accepted;
// the value is reduced modulo 360 with its sign preserved. NaN and the
// infinities have no rotational position and normalize to zero.
func NewAngle(deg float64) Angle {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return Angle{}
	}
	deg = math.Mod(deg, 360)
	degree := int64(deg)
	minute := int64(deg*60) - degree*60
	sec := math.Mod(deg*3600-float64(minute)*60-float64(degree)*3600, 60)
	second := int64(sec)
	return Angle{
		degree: int16(degree),
		minute: int8(minute % 60),
		second: int8(second),
		subsec: float32(sec - float64(second)),
	}
}

// AngleFromRadians builds an Angle from radians, reduced the same way as
// NewAngle.
func AngleFromRadians(rad float64) Angle {
	return NewAngle(rad * 180 / math.Pi)
}

// AngleFromDMS builds an Angle from explicit parts. Each part is reduced
// into range (degree mod 360, minute and second mod 60, subsec mod 1) with
// its sign preserved, so feeding back the decomposition of any Angle yields
// an equal Angle.
func AngleFromDMS(degree, minute, second int, subsec float64) Angle {
	return Angle{
		degree: int16(degree % 360),
		minute: int8(minute % 60),
		second: int8(second % 60),
		subsec: float32(math.Mod(subsec, 1)),
	}
}

// Degrees returns the decimal-degree value of the decomposition.
func (a Angle) Degrees() float64 {
	return float64(a.degree) + float64(a.minute)/60 + (float64(a.second)+float64(a.subsec))/3600
}

// Radians returns the angle in radians.
func (a Angle) Radians() float64 {
	return a.Degrees() * math.Pi / 180
}

// DMS returns the raw decomposition, signs intact.
func (a Angle) DMS() (degree, minute, second int, subsec float64) {
	return int(a.degree), int(a.minute), int(a.second), float64(a.subsec)
}

// Key returns a comparable bucket key for the rotational position: total
// arcseconds normalized into [0, 1296000). Angles equal under Equal share a
// key, so Key is safe to use as a map key. Sub-second precision is
// intentionally dropped, matching Equal.
func (a Angle) Key() int32 {
	total := int32(a.degree)*3600 + int32(a.minute)*60 + int32(a.second)
	total %= arcsecPerTurn
	if total < 0 {
		total += arcsecPerTurn
	}
	return total
}

// Equal reports whether two angles describe the same rotational position at
// one-arcsecond resolution.
func (a Angle) Equal(b Angle) bool {
	return a.Key() == b.Key()
}

// String renders the decimal-degree value with 5 decimal places.
func (a Angle) String() string {
	return strconv.FormatFloat(a.Degrees(), 'f', 5, 64)
}

// MarshalJSON encodes the angle as its decimal-degree value.
func (a Angle) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Degrees())
}

// UnmarshalJSON decodes a decimal-degree number. Wraparound means any
// finite number is accepted.
func (a *Angle) UnmarshalJSON(b []byte) error {
	v, err := parseQuantity(b, "angle")
	if err != nil {
		return err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return newRangeError("angle", v)
	}
	*a = NewAngle(v)
	return nil
}

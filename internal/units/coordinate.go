package units

import (
	"encoding/json"
	"math"
)

// coordKeyFactor scales coordinate degrees before truncating to an integer
// key, so values differing only below 1e-6 degree compare and hash equal.
// Provider coordinates carry noise below that precision.
const coordKeyFactor = 1e6

// Latitude in degrees, restricted to [-90, 90).
type Latitude struct {
	angle Angle
}

func NewLatitude(deg float64) (Latitude, error) {
	if math.IsNaN(deg) || deg < -90 || deg >= 90 {
		return Latitude{}, &RangeError{Quantity: "latitude", Value: deg, kind: ErrInvalidLatitude}
	}
	return Latitude{angle: NewAngle(deg)}, nil
}

func (l Latitude) Degrees() float64 { return l.angle.Degrees() }

// Key returns the scaled-and-truncated integer used for equality and map
// hashing.
func (l Latitude) Key() int32 { return int32(l.Degrees() * coordKeyFactor) }

func (l Latitude) Equal(o Latitude) bool { return l.Key() == o.Key() }

func (l Latitude) String() string { return l.angle.String() }

func (l Latitude) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Degrees())
}

func (l *Latitude) UnmarshalJSON(b []byte) error {
	v, err := parseQuantity(b, "latitude")
	if err != nil {
		return &RangeError{Quantity: "latitude", Value: math.NaN(), kind: ErrInvalidLatitude}
	}
	parsed, err := NewLatitude(v)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Longitude in degrees, restricted to [-180, 180).
type Longitude struct {
	angle Angle
}

func NewLongitude(deg float64) (Longitude, error) {
	if math.IsNaN(deg) || deg < -180 || deg >= 180 {
		return Longitude{}, &RangeError{Quantity: "longitude", Value: deg, kind: ErrInvalidLongitude}
	}
	return Longitude{angle: NewAngle(deg)}, nil
}

func (l Longitude) Degrees() float64 { return l.angle.Degrees() }

func (l Longitude) Key() int32 { return int32(l.Degrees() * coordKeyFactor) }

func (l Longitude) Equal(o Longitude) bool { return l.Key() == o.Key() }

func (l Longitude) String() string { return l.angle.String() }

func (l Longitude) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Degrees())
}

func (l *Longitude) UnmarshalJSON(b []byte) error {
	v, err := parseQuantity(b, "longitude")
	if err != nil {
		return &RangeError{Quantity: "longitude", Value: math.NaN(), kind: ErrInvalidLongitude}
	}
	parsed, err := NewLongitude(v)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Direction is a compass bearing. It wraps, so construction never fails;
// the zero value is due north.
type Direction struct {
	angle Angle
}

func NewDirection(deg float64) Direction {
	return Direction{angle: NewAngle(deg)}
}

func DirectionFromRadians(rad float64) Direction {
	return Direction{angle: AngleFromRadians(rad)}
}

func (d Direction) Degrees() float64 { return d.angle.Degrees() }

func (d Direction) Radians() float64 { return d.angle.Radians() }

func (d Direction) Equal(o Direction) bool { return d.angle.Equal(o.angle) }

func (d Direction) String() string { return d.angle.String() }

func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Degrees())
}

func (d *Direction) UnmarshalJSON(b []byte) error {
	v, err := parseQuantity(b, "direction")
	if err != nil {
		return err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return newRangeError("direction", v)
	}
	*d = NewDirection(v)
	return nil
}

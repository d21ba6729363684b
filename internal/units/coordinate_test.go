package units

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestLatitudeRange(t *testing.T) {
	for _, v := range []float64{-90, 0, 41.0, 89.999999} {
		if _, err := NewLatitude(v); err != nil {
			t.Errorf("latitude %v should be valid: %v", v, err)
		}
	}
	for _, v := range []float64{90, -90.000001, 360, -360, math.NaN()} {
		_, err := NewLatitude(v)
		if !errors.Is(err, ErrInvalidLatitude) {
			t.Errorf("latitude %v: expected invalid latitude, got %v", v, err)
		}
	}
}

func TestLongitudeRange(t *testing.T) {
	for _, v := range []float64{-180, 0, 179.999999} {
		if _, err := NewLongitude(v); err != nil {
			t.Errorf("longitude %v should be valid: %v", v, err)
		}
	}
	for _, v := range []float64{180, -180.5, 720} {
		_, err := NewLongitude(v)
		if !errors.Is(err, ErrInvalidLongitude) {
			t.Errorf("longitude %v: expected invalid longitude, got %v", v, err)
		}
	}
}

func TestCoordinateReducedPrecisionEquality(t *testing.T) {
	a, err := NewLatitude(41.0)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewLatitude(41.0000001)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Error("noise below 1e-6 degree should be invisible")
	}
	if a.Key() != b.Key() {
		t.Error("equal coordinates must share a key")
	}

	c, err := NewLatitude(41.00001)
	if err != nil {
		t.Fatal(err)
	}
	if a.Equal(c) {
		t.Error("a 1e-5 degree difference should be visible")
	}

	neg, err := NewLatitude(-41.0)
	if err != nil {
		t.Fatal(err)
	}
	if a.Equal(neg) {
		t.Error("opposite hemispheres must not compare equal")
	}
}

func TestCoordinateDisplay(t *testing.T) {
	lat, err := NewLatitude(40.7621)
	if err != nil {
		t.Fatal(err)
	}
	if lat.String() != "40.76210" {
		t.Errorf("expected 40.76210, got %q", lat.String())
	}
	lon, err := NewLongitude(-73.9262)
	if err != nil {
		t.Fatal(err)
	}
	if lon.String() != "-73.92620" {
		t.Errorf("expected -73.92620, got %q", lon.String())
	}
}

func TestDirectionWraps(t *testing.T) {
	if !NewDirection(370).Equal(NewDirection(10)) {
		t.Error("370 and 10 degrees are the same bearing")
	}
	if got := DirectionFromRadians(math.Pi).Degrees(); math.Abs(got-180) > 1e-9 {
		t.Errorf("pi radians: expected 180 degrees, got %v", got)
	}
	var north Direction
	if north.Degrees() != 0 {
		t.Errorf("zero value should be due north, got %v", north.Degrees())
	}
	if !NewDirection(math.NaN()).Equal(north) {
		t.Error("a NaN bearing should normalize to due north")
	}
}

func TestCoordinateJSON(t *testing.T) {
	var lat Latitude
	if err := json.Unmarshal([]byte("40.7621"), &lat); err != nil {
		t.Fatal(err)
	}
	if lat.String() != "40.76210" {
		t.Errorf("unexpected decode: %q", lat.String())
	}

	if err := json.Unmarshal([]byte("120.0"), &lat); !errors.Is(err, ErrInvalidLatitude) {
		t.Errorf("expected invalid latitude, got %v", err)
	}

	out, err := json.Marshal(lat)
	if err != nil {
		t.Fatal(err)
	}
	var round float64
	if err := json.Unmarshal(out, &round); err != nil {
		t.Fatal(err)
	}
	if math.Abs(round-40.7621) > 1e-6 {
		t.Errorf("marshal round trip drifted: %v", round)
	}
}

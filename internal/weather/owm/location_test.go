package owm

import (
	"net/url"
	"testing"

	"github.com/i474232898/weather-report/internal/units"
)

func queryFor(loc Location) url.Values {
	v := url.Values{}
	loc.query(v)
	return v
}

func TestZipQuery(t *testing.T) {
	v := queryFor(LocationFromZip(11106))
	if v.Get("zip") != "11106" {
		t.Errorf("expected zip 11106, got %q", v.Get("zip"))
	}
	if v.Get("country_code") != "US" {
		t.Errorf("expected default country US, got %q", v.Get("country_code"))
	}

	v = queryFor(LocationFromZipCountry(10115, "DE"))
	if v.Get("zip") != "10115" || v.Get("country_code") != "DE" {
		t.Errorf("unexpected params: %v", v)
	}
}

func TestCityQuery(t *testing.T) {
	v := queryFor(LocationFromCity("New York"))
	if v.Get("q") != "New York" {
		t.Errorf("expected q=New York, got %q", v.Get("q"))
	}
	if v.Get("zip") != "" {
		t.Errorf("city lookup must not set zip: %v", v)
	}
}

func TestLatLonQuery(t *testing.T) {
	lat, err := units.NewLatitude(41.0)
	if err != nil {
		t.Fatal(err)
	}
	lon, err := units.NewLongitude(-39.0)
	if err != nil {
		t.Fatal(err)
	}
	v := queryFor(LocationFromLatLon(lat, lon))
	if v.Get("lat") != "41.00000" {
		t.Errorf("expected lat 41.00000, got %q", v.Get("lat"))
	}
	if v.Get("lon") != "-39.00000" {
		t.Errorf("expected lon -39.00000, got %q", v.Get("lon"))
	}
}

func TestDefaultLocation(t *testing.T) {
	v := queryFor(DefaultLocation())
	if v.Get("zip") != "10001" || v.Get("country_code") != "US" {
		t.Errorf("unexpected default params: %v", v)
	}
}

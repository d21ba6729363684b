package owm

import (
	"net/url"
	"strconv"

	"github.com/i474232898/weather-report/internal/units"
)

// Location selects how a request identifies a place: by zip code, by city
// name, or by coordinates. The set of variants is closed; the aggregation
// and formatting layers never see one, only fully-resolved records.
type Location interface {
	query(v url.Values)
}

type zipCode struct {
	zip     uint64
	country string
}

type cityName string

type latLon struct {
	lat units.Latitude
	lon units.Longitude
}

// LocationFromZip identifies a place by US zip code.
func LocationFromZip(zip uint64) Location {
	return zipCode{zip: zip}
}

// LocationFromZipCountry identifies a place by zip code and ISO country
// code.
func LocationFromZipCountry(zip uint64, country string) Location {
	return zipCode{zip: zip, country: country}
}

// LocationFromCity identifies a place by city name.
func LocationFromCity(name string) Location {
	return cityName(name)
}

// LocationFromLatLon identifies a place by validated coordinates.
func LocationFromLatLon(lat units.Latitude, lon units.Longitude) Location {
	return latLon{lat: lat, lon: lon}
}

// LocationFromCoords validates raw coordinate values into a Location.
func LocationFromCoords(lat, lon float64) (Location, error) {
	la, err := units.NewLatitude(lat)
	if err != nil {
		return nil, err
	}
	lo, err := units.NewLongitude(lon)
	if err != nil {
		return nil, err
	}
	return LocationFromLatLon(la, lo), nil
}

// DefaultLocation is used when neither flags nor configuration name a
// place.
func DefaultLocation() Location {
	return zipCode{zip: 10001}
}

func (z zipCode) query(v url.Values) {
	v.Set("zip", strconv.FormatUint(z.zip, 10))
	country := z.country
	if country == "" {
		country = "US"
	}
	v.Set("country_code", country)
}

func (c cityName) query(v url.Values) {
	v.Set("q", string(c))
}

func (l latLon) query(v url.Values) {
	v.Set("lat", l.lat.String())
	v.Set("lon", l.lon.String())
}

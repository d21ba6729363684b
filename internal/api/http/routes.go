package httpapi

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-report/internal/units"
	"github.com/i474232898/weather-report/internal/weather"
	"github.com/i474232898/weather-report/internal/weather/owm"
)

var validate = validator.New()

// Source is the outbound API surface the handlers need. *owm.Client
// satisfies it; tests substitute a stub.
type Source interface {
	CurrentConditions(ctx context.Context, loc owm.Location) (*weather.CurrentConditions, error)
	Forecast(ctx context.Context, loc owm.Location) (*weather.Forecast, error)
}

// RegisterRoutes wires the report handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, src Source) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		loc, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		data, err := src.CurrentConditions(c.Context(), loc)
		if err != nil {
			return upstreamError(err)
		}

		if c.Query("format") == "json" {
			return c.JSON(data)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.SendString(data.Report())
	})

	v1.Get("/weather/forecast", func(c *fiber.Ctx) error {
		loc, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		data, err := src.Forecast(c.Context(), loc)
		if err != nil {
			return upstreamError(err)
		}

		if c.Query("format") == "json" {
			return c.JSON(fiber.Map{"days": data.HighLow()})
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.SendString(data.Report())
	})
}

// upstreamError maps outbound client failures onto response codes. Invalid
// values inside an otherwise successful provider payload are a bad gateway,
// not a server bug.
func upstreamError(err error) error {
	switch {
	case errors.Is(err, owm.ErrMissingAPIKey):
		return fiber.NewError(fiber.StatusServiceUnavailable, "api key is not configured")
	case errors.Is(err, units.ErrRangeViolation),
		errors.Is(err, units.ErrInvalidLatitude),
		errors.Is(err, units.ErrInvalidLongitude):
		return fiber.NewError(fiber.StatusBadGateway, "provider returned invalid data")
	default:
		return fiber.NewError(fiber.StatusBadGateway, "failed to fetch weather data")
	}
}

// locationQuery holds the query parameters naming a place. Exactly one of
// the three forms must be present.
type locationQuery struct {
	Zip     string `validate:"omitempty,numeric"`
	Country string `validate:"omitempty,iso3166_1_alpha2"`
	City    string
	Lat     string `validate:"required_with=Lon"`
	Lon     string `validate:"required_with=Lat"`
}

func parseLocationQuery(c *fiber.Ctx) (owm.Location, error) {
	q := locationQuery{
		Zip:     c.Query("zip"),
		Country: c.Query("country_code"),
		City:    c.Query("city"),
		Lat:     c.Query("lat"),
		Lon:     c.Query("lon"),
	}

	if err := validate.Struct(q); err != nil {
		return nil, err
	}

	switch {
	case q.Zip != "":
		zip, err := strconv.ParseUint(q.Zip, 10, 64)
		if err != nil {
			return nil, errors.New("zip must be numeric")
		}
		if q.Country != "" {
			return owm.LocationFromZipCountry(zip, q.Country), nil
		}
		return owm.LocationFromZip(zip), nil
	case q.City != "":
		return owm.LocationFromCity(q.City), nil
	case q.Lat != "" && q.Lon != "":
		lat, err := strconv.ParseFloat(q.Lat, 64)
		if err != nil {
			return nil, errors.New("lat must be a number")
		}
		lon, err := strconv.ParseFloat(q.Lon, 64)
		if err != nil {
			return nil, errors.New("lon must be a number")
		}
		return owm.LocationFromCoords(lat, lon)
	default:
		return nil, errors.New("specify zip, city, or lat and lon")
	}
}

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"math"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/weather-report/internal/api/http"
	"github.com/i474232898/weather-report/internal/config"
	"github.com/i474232898/weather-report/internal/weather"
	"github.com/i474232898/weather-report/internal/weather/owm"
)

type options struct {
	zipcode     uint64
	countryCode string
	cityName    string
	lat         float64
	lon         float64
	apiKey      string
	forecast    bool
	serve       bool
}

func main() {
	var opts options
	flag.Uint64Var(&opts.zipcode, "zipcode", 0, "zip code (optional)")
	flag.Uint64Var(&opts.zipcode, "z", 0, "zip code (shorthand)")
	flag.StringVar(&opts.countryCode, "country-code", "", "country code, US is assumed when omitted")
	flag.StringVar(&opts.countryCode, "c", "", "country code (shorthand)")
	flag.StringVar(&opts.cityName, "city-name", "", "city name (optional)")
	flag.Float64Var(&opts.lat, "lat", math.NaN(), "latitude, must be paired with -lon")
	flag.Float64Var(&opts.lon, "lon", math.NaN(), "longitude, must be paired with -lat")
	flag.StringVar(&opts.apiKey, "api-key", "", "openweathermap.org api key, overrides API_KEY")
	flag.StringVar(&opts.apiKey, "k", "", "api key (shorthand)")
	flag.BoolVar(&opts.forecast, "forecast", false, "also print the multi-day forecast")
	flag.BoolVar(&opts.forecast, "f", false, "forecast (shorthand)")
	flag.BoolVar(&opts.serve, "serve", false, "run the HTTP report server instead of printing once")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if opts.apiKey != "" {
		cfg.APIKey = opts.apiKey
	}

	client := owm.NewClient(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.APIKey, cfg.APIEndpoint, cfg.APIPath)

	if opts.serve {
		runServer(cfg, client)
		return
	}

	loc, err := resolveLocation(cfg, opts)
	if err != nil {
		log.Fatalf("invalid location: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	current, forecast, err := fetch(ctx, client, loc, opts.forecast)
	if err != nil {
		log.Fatalf("weather request failed: %v", err)
	}

	os.Stdout.WriteString(current.Report())
	if forecast != nil {
		os.Stdout.WriteString(forecast.Report())
	}
}

// resolveLocation applies flag precedence, then the configured defaults.
func resolveLocation(cfg *config.AppConfig, opts options) (owm.Location, error) {
	latSet := !math.IsNaN(opts.lat)
	lonSet := !math.IsNaN(opts.lon)

	switch {
	case opts.zipcode != 0 && opts.countryCode != "":
		return owm.LocationFromZipCountry(opts.zipcode, opts.countryCode), nil
	case opts.zipcode != 0:
		return owm.LocationFromZip(opts.zipcode), nil
	case opts.cityName != "":
		return owm.LocationFromCity(opts.cityName), nil
	case latSet && lonSet:
		return owm.LocationFromCoords(opts.lat, opts.lon)
	case latSet || lonSet:
		return nil, errLatLonPair
	default:
		return cfg.DefaultLocation()
	}
}

var errLatLonPair = errors.New("-lat and -lon must be specified together")

// fetch issues the current-conditions request, and the forecast request
// alongside it when asked, then joins. Either failure fails the whole
// operation.
func fetch(ctx context.Context, client *owm.Client, loc owm.Location, withForecast bool) (*weather.CurrentConditions, *weather.Forecast, error) {
	var (
		wg          sync.WaitGroup
		current     *weather.CurrentConditions
		currentErr  error
		forecast    *weather.Forecast
		forecastErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		current, currentErr = client.CurrentConditions(ctx, loc)
	}()

	if withForecast {
		wg.Add(1)
		go func() {
			defer wg.Done()
			forecast, forecastErr = client.Forecast(ctx, loc)
		}()
	}

	wg.Wait()

	if currentErr != nil {
		return nil, nil, currentErr
	}
	if forecastErr != nil {
		return nil, nil, forecastErr
	}
	return current, forecast, nil
}

func runServer(cfg *config.AppConfig, client *owm.Client) {
	app := fiber.New(fiber.Config{
		AppName:               "weather-report",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-report",
		})
	})

	httpapi.RegisterRoutes(app, client)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-report/internal/weather"
	"github.com/i474232898/weather-report/internal/weather/owm"
)

// stubSource serves the fixture records without touching the network.
type stubSource struct {
	current  *weather.CurrentConditions
	forecast *weather.Forecast
	err      error
}

func (s *stubSource) CurrentConditions(ctx context.Context, loc owm.Location) (*weather.CurrentConditions, error) {
	return s.current, s.err
}

func (s *stubSource) Forecast(ctx context.Context, loc owm.Location) (*weather.Forecast, error) {
	return s.forecast, s.err
}

func fixtureSource(t *testing.T) *stubSource {
	t.Helper()
	src := &stubSource{}

	buf, err := os.ReadFile(filepath.Join("..", "..", "weather", "testdata", "weather.json"))
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	var current weather.CurrentConditions
	if err := json.Unmarshal(buf, &current); err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}
	src.current = &current

	buf, err = os.ReadFile(filepath.Join("..", "..", "weather", "testdata", "forecast.json"))
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	var forecast weather.Forecast
	if err := json.Unmarshal(buf, &forecast); err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}
	src.forecast = &forecast

	return src
}

func testApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	RegisterRoutes(app, fixtureSource(t))
	return app
}

func TestCurrentReport(t *testing.T) {
	app := testApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather/current?zip=11106", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(body), "Current conditions Astoria US 40.76") {
		t.Errorf("unexpected body:\n%s", body)
	}
}

func TestForecastJSON(t *testing.T) {
	app := testApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather/forecast?city=Astoria&format=json", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var payload struct {
		Days []weather.DaySummary `json:"days"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatal(err)
	}
	if len(payload.Days) != 6 {
		t.Errorf("expected 6 days, got %d", len(payload.Days))
	}
}

func TestLocationValidation(t *testing.T) {
	app := testApp(t)

	// No location parameters at all.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather/current", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// lat without lon.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/weather/current?lat=40.76", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// Out-of-range latitude.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/weather/current?lat=120&lon=0", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// Bad country code.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/weather/current?zip=10115&country_code=Germany", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestUpstreamFailure(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app, &stubSource{err: owm.ErrMissingAPIKey})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather/current?zip=11106", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, resp.StatusCode)
	}
}

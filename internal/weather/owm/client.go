package owm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-report/internal/weather"
)

// Defaults for the openweathermap.org API.
const (
	DefaultEndpoint = "api.openweathermap.org"
	DefaultAPIPath  = "data/2.5/"
)

var (
	// ErrMissingAPIKey is returned before any request goes out when no key
	// is configured.
	ErrMissingAPIKey = errors.New("api key is not configured")

	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
	errUnexpected  = errors.New("unexpected status code")
	errCircuitOpen = errors.New("circuit breaker open")
)

// BackoffConfig controls the retry loop around outbound requests.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// Client queries the openweathermap.org API with retries, exponential
// backoff, and a circuit breaker.
type Client struct {
	apiKey   string
	endpoint string
	apiPath  string
	client   *http.Client
	backoff  BackoffConfig
	circuit  *gobreaker.CircuitBreaker
}

// NewClient builds a Client. Empty endpoint and apiPath fall back to the
// public API; the endpoint may carry an explicit scheme for testing.
func NewClient(httpClient *http.Client, apiKey, endpoint, apiPath string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if apiPath == "" {
		apiPath = DefaultAPIPath
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweathermap",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		apiKey:   apiKey,
		endpoint: endpoint,
		apiPath:  apiPath,
		client:   httpClient,
		backoff: BackoffConfig{
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
		circuit: cb,
	}
}

// CurrentConditions fetches the current-weather record for a location.
func (c *Client) CurrentConditions(ctx context.Context, loc Location) (*weather.CurrentConditions, error) {
	var data weather.CurrentConditions
	if err := c.get(ctx, "weather", loc, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Forecast fetches the multi-day forecast record for a location.
func (c *Client) Forecast(ctx context.Context, loc Location) (*weather.Forecast, error) {
	var data weather.Forecast
	if err := c.get(ctx, "forecast", loc, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) get(ctx context.Context, command string, loc Location, out interface{}) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		loc.query(values)
		values.Set("APPID", c.apiKey)

		base := c.endpoint
		if !strings.Contains(base, "://") {
			base = "https://" + base
		}
		u := fmt.Sprintf("%s/%s%s?%s", base, c.apiPath, command, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := c.doWithResilience(ctx, buildRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", command, err)
	}
	return nil
}

// doWithResilience executes the request with retries, exponential backoff,
// and the circuit breaker. Rate limiting and 5xx responses are retried;
// an open circuit fails fast.
func (c *Client) doWithResilience(ctx context.Context, buildRequest func() (*http.Request, error)) (*http.Response, error) {
	var attempt int
	var lastErr error

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := buildRequest()
		if err != nil {
			return nil, err
		}
		req = req.WithContext(ctx)

		result, err := c.circuit.Execute(func() (interface{}, error) {
			resp, execErr := c.client.Do(req)
			if execErr != nil {
				return nil, execErr
			}

			if resp.StatusCode == http.StatusTooManyRequests {
				resp.Body.Close()
				return nil, errRateLimited
			}
			if resp.StatusCode >= 500 {
				resp.Body.Close()
				return nil, errServerError
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				resp.Body.Close()
				return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
			}
			return resp, nil
		})

		if err == nil {
			resp, ok := result.(*http.Response)
			if !ok {
				return nil, fmt.Errorf("unexpected result type from circuit breaker")
			}
			return resp, nil
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		lastErr = err
		if attempt >= c.backoff.MaxRetries {
			return nil, lastErr
		}

		delay := c.backoff.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if c.backoff.MaxInterval > 0 && delay > c.backoff.MaxInterval {
			delay = c.backoff.MaxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		attempt++
	}
}

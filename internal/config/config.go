package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/i474232898/weather-report/internal/weather/owm"
)

// AppConfig is the immutable process configuration. It only parameterizes
// the outbound API client and the default location; the report pipeline
// itself never reads it.
type AppConfig struct {
	APIKey      string
	APIEndpoint string
	APIPath     string

	Zipcode     uint64
	CountryCode string
	CityName    string
	Lat         *float64
	Lon         *float64

	HTTPTimeout time.Duration
	Port        string
}

// fileConfig is the optional config.yaml shape. Secrets stay in the
// environment; the file carries endpoint and location defaults.
type fileConfig struct {
	APIEndpoint string   `yaml:"api_endpoint"`
	APIPath     string   `yaml:"api_path"`
	Zipcode     uint64   `yaml:"zipcode"`
	CountryCode string   `yaml:"country_code"`
	CityName    string   `yaml:"city_name"`
	Lat         *float64 `yaml:"lat"`
	Lon         *float64 `yaml:"lon"`
}

const configDirName = "weather-report"

// Load assembles configuration in increasing precedence: config.yaml, then
// config.env, then environment variables. A .env file in the current
// directory is applied first, best effort.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	if path, ok := findConfigFile("config.env"); ok {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}

	if path, ok := findConfigFile("config.yaml"); ok {
		if err := applyYAML(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.APIKey = getenvDefault("API_KEY", cfg.APIKey)
	cfg.APIEndpoint = getenvDefault("API_ENDPOINT", cfg.APIEndpoint)
	cfg.APIPath = getenvDefault("API_PATH", cfg.APIPath)
	cfg.CountryCode = getenvDefault("COUNTRY_CODE", cfg.CountryCode)
	cfg.CityName = getenvDefault("CITY_NAME", cfg.CityName)
	cfg.Port = getenvDefault("PORT", "8080")

	if v := os.Getenv("ZIPCODE"); v != "" {
		zip, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ZIPCODE: %w", err)
		}
		cfg.Zipcode = zip
	}

	if lat, err := getenvFloat("LAT"); err != nil {
		return nil, err
	} else if lat != nil {
		cfg.Lat = lat
	}
	if lon, err := getenvFloat("LON"); err != nil {
		return nil, err
	} else if lon != nil {
		cfg.Lon = lon
	}

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	return cfg, nil
}

// DefaultLocation resolves the configured default place in the same
// precedence the CLI flags use: zip, then city, then coordinates, then the
// built-in default.
func (c *AppConfig) DefaultLocation() (owm.Location, error) {
	switch {
	case c.Zipcode != 0 && c.CountryCode != "":
		return owm.LocationFromZipCountry(c.Zipcode, c.CountryCode), nil
	case c.Zipcode != 0:
		return owm.LocationFromZip(c.Zipcode), nil
	case c.CityName != "":
		return owm.LocationFromCity(c.CityName), nil
	case c.Lat != nil && c.Lon != nil:
		return owm.LocationFromCoords(*c.Lat, *c.Lon)
	default:
		return owm.DefaultLocation(), nil
	}
}

// applyYAML merges one YAML settings file into the config.
func applyYAML(path string, cfg *AppConfig) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(buf, &fc); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if fc.APIEndpoint != "" {
		cfg.APIEndpoint = fc.APIEndpoint
	}
	if fc.APIPath != "" {
		cfg.APIPath = fc.APIPath
	}
	if fc.Zipcode != 0 {
		cfg.Zipcode = fc.Zipcode
	}
	if fc.CountryCode != "" {
		cfg.CountryCode = fc.CountryCode
	}
	if fc.CityName != "" {
		cfg.CityName = fc.CityName
	}
	if fc.Lat != nil {
		cfg.Lat = fc.Lat
	}
	if fc.Lon != nil {
		cfg.Lon = fc.Lon
	}
	return nil
}

// findConfigFile looks in the current directory first, then under the user
// config directory.
func findConfigFile(name string) (string, bool) {
	if _, err := os.Stat(name); err == nil {
		return name, true
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	path := filepath.Join(dir, configDirName, name)
	if _, err := os.Stat(path); err == nil {
		return path, true
	}
	return "", false
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvFloat(key string) (*float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &parsed, nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Tool gate credentials.
	AuthToken   string
	OwnerNumber string

	// Per-provider API keys. Weather and events are disabled (reported as
	// not-configured) when their key is absent; summary and cuisine use
	// keyless public endpoints.
	OpenWeatherKey  string
	TicketmasterKey string

	// Per-provider request timeouts. Each adapter owns its own bound so a
	// slow provider cannot stretch the whole fan-out past the slowest one.
	GeocodeTimeout time.Duration
	SummaryTimeout time.Duration
	WeatherTimeout time.Duration
	EventsTimeout  time.Duration
	CuisineTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset. AUTH_TOKEN and MY_NUMBER are required.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	geocodeTimeout, err := parseDuration("GEOCODE_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	summaryTimeout, err := parseDuration("SUMMARY_TIMEOUT", "8s")
	if err != nil {
		return nil, err
	}
	weatherTimeout, err := parseDuration("WEATHER_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	eventsTimeout, err := parseDuration("EVENTS_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	cuisineTimeout, err := parseDuration("CUISINE_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8086"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		AuthToken:   os.Getenv("AUTH_TOKEN"),
		OwnerNumber: os.Getenv("MY_NUMBER"),

		OpenWeatherKey:  os.Getenv("OWM_KEY"),
		TicketmasterKey: os.Getenv("TICKETMASTER_KEY"),

		GeocodeTimeout: geocodeTimeout,
		SummaryTimeout: summaryTimeout,
		WeatherTimeout: weatherTimeout,
		EventsTimeout:  eventsTimeout,
		CuisineTimeout: cuisineTimeout,
	}

	if cfg.AuthToken == "" {
		return nil, errors.New("AUTH_TOKEN is required")
	}
	if cfg.OwnerNumber == "" {
		return nil, errors.New("MY_NUMBER is required")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	s := envOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

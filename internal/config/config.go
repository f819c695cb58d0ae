package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by CALOR_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("CALOR_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Load main env file (ignore error if file doesn't exist)
	_ = godotenv.Load(envFile)

	// Load secret sidecar if it exists
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

// HassURL is the base URL of the Home Assistant instance the engine
// reads sensors and calendars from and drives radiators through.
func HassURL() string {
	return os.Getenv("HASS_URL")
}

func HassToken() string {
	return os.Getenv("HASS_TOKEN")
}

// APIToken protects the /v1 surface. Empty disables auth (local use).
func APIToken() string {
	return os.Getenv("API_TOKEN")
}

// CalendarEntity is the calendar the schedule is read from.
func CalendarEntity() string {
	return os.Getenv("CALENDAR_ENTITY")
}

// PresenceTrackers returns the configured device tracker entity ids.
func PresenceTrackers() []string {
	raw := os.Getenv("PRESENCE_TRACKERS")
	if raw == "" {
		return nil
	}
	var trackers []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			trackers = append(trackers, t)
		}
	}
	return trackers
}

// OutdoorSensor is the optional outdoor temperature entity used as
// learning context.
func OutdoorSensor() string {
	return os.Getenv("OUTDOOR_SENSOR")
}

// UpdateIntervalSeconds is the cycle period. Defaults to 300 (5 minutes).
func UpdateIntervalSeconds() int {
	v, err := strconv.Atoi(os.Getenv("UPDATE_INTERVAL_SECONDS"))
	if err != nil || v <= 0 {
		return 300
	}
	return v
}

// SecurityFactor is the margin multiplied onto raw preheat estimates.
// Defaults to 1.3.
func SecurityFactor() float64 {
	v, err := strconv.ParseFloat(os.Getenv("SECURITY_FACTOR"), 64)
	if err != nil || v <= 0 {
		return 1.3
	}
	return v
}

// MinPreheatMinutes floors every nonzero preheat estimate. Defaults to 30.
func MinPreheatMinutes() int {
	v, err := strconv.Atoi(os.Getenv("MIN_PREHEAT_MINUTES"))
	if err != nil || v <= 0 {
		return 30
	}
	return v
}

// DerivativeWindowMinutes is the span the heating rate is derived over.
// Defaults to 30.
func DerivativeWindowMinutes() int {
	v, err := strconv.Atoi(os.Getenv("DERIVATIVE_WINDOW_MINUTES"))
	if err != nil || v <= 0 {
		return 30
	}
	return v
}

// DefaultHeatingRate is the conservative °C/h fallback used when no
// measured or learned rate exists. Defaults to 1.0.
func DefaultHeatingRate() float64 {
	v, err := strconv.ParseFloat(os.Getenv("DEFAULT_HEATING_RATE"), 64)
	if err != nil || v <= 0 {
		return 1.0
	}
	return v
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}

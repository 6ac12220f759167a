// Package config provides typed helpers for reading environment variables.
// Unset variables yield the default silently; malformed values yield the
// default and log a warning, so a typo never stops the process.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// GetEnvString returns the value of an environment variable or the default value if not set.
//
// Example:
//
//	backend := GetEnvString("STORAGE_BACKEND", "json")
func GetEnvString(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvInt returns the value of an environment variable as an integer.
//
// Example:
//
//	maxConns := GetEnvInt("DB_MAX_OPEN_CONNS", 25)
func GetEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var value int
	if _, err := fmt.Sscanf(valueStr, "%d", &value); err != nil {
		warnInvalid(key, valueStr, "integer", fmt.Sprint(defaultValue), err)
		return defaultValue
	}
	return value
}

// GetEnvInt64 is GetEnvInt for byte sizes and other 64-bit quantities.
func GetEnvInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		warnInvalid(key, valueStr, "integer", fmt.Sprint(defaultValue), err)
		return defaultValue
	}
	return value
}

// GetEnvFloat returns the value of an environment variable as a float64.
//
// Example:
//
//	ratio := GetEnvFloat("TRACE_SAMPLE_RATIO", 1.0)
func GetEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		warnInvalid(key, valueStr, "float", fmt.Sprint(defaultValue), err)
		return defaultValue
	}
	return value
}

// GetEnvBool returns the value of an environment variable as a boolean.
//
// Accepted true values: "1", "t", "T", "true", "TRUE", "True"
// Accepted false values: "0", "f", "F", "false", "FALSE", "False"
//
// Example:
//
//	secure := GetEnvBool("COOKIE_SECURE", false)
func GetEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	switch valueStr {
	case "1", "t", "T", "true", "TRUE", "True":
		return true
	case "0", "f", "F", "false", "FALSE", "False":
		return false
	default:
		warnInvalid(key, valueStr, "boolean", strconv.FormatBool(defaultValue), nil)
		return defaultValue
	}
}

// GetEnvDuration returns the value of an environment variable as a time.Duration.
// The value must be parseable by time.ParseDuration (e.g., "1m", "30s", "1h30m").
//
// Example:
//
//	timeout := GetEnvDuration("HTTP_REQUEST_TIMEOUT", 15*time.Second)
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		warnInvalid(key, valueStr, "duration", defaultValue.String(), err)
		return defaultValue
	}
	return value
}

func warnInvalid(key, value, kind, def string, err error) {
	attrs := []any{
		slog.String("key", key),
		slog.String("value", value),
		slog.String("default", def),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	slog.Warn("invalid "+kind+" value for environment variable, using default", attrs...)
}

// Package config loads validated settings that must never stop the process:
// an invalid value falls back to its default with a warning and a metric.
package config

import (
	"fmt"
	"os"
	"time"
)

// LoadResult is the outcome of loading one setting.
type LoadResult[T any] struct {
	Value           T
	Warning         string
	FallbackApplied bool
}

// LoadEnvWithFallback loads a string setting and validates it.
//
// Loading behavior:
//  1. If the variable is unset or empty, the default is used without a warning.
//  2. If validation fails, the default is used and a warning is returned.
//
// Example:
//
//	res := LoadEnvWithFallback("GAUGE_REFRESH_SCHEDULE", "*/5 * * * *", ValidateCronSchedule)
//	if res.FallbackApplied {
//	    logger.Warn(res.Warning)
//	}
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) LoadResult[string] {
	return load(envKey, defaultValue, func(s string) (string, error) { return s, nil }, validator)
}

// LoadEnvDuration loads a duration setting parsed by time.ParseDuration and validates it.
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) LoadResult[time.Duration] {
	return load(envKey, defaultValue, time.ParseDuration, validator)
}

func load[T any](envKey string, defaultValue T, parse func(string) (T, error), validator func(T) error) LoadResult[T] {
	raw := os.Getenv(envKey)
	if raw == "" {
		return LoadResult[T]{Value: defaultValue}
	}

	value, err := parse(raw)
	if err == nil && validator != nil {
		err = validator(value)
	}
	if err != nil {
		return LoadResult[T]{
			Value: defaultValue,
			Warning: fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%v'",
				envKey, raw, err, defaultValue),
			FallbackApplied: true,
		}
	}
	return LoadResult[T]{Value: value}
}

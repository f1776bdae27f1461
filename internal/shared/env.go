package shared

import (
	"os"
	"time"
)

// TimestampLayout is the ISO-8601 layout used by every API response.
const TimestampLayout = time.RFC3339

// Timestamp formats t for an API response.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Now returns the current time formatted for an API response.
func Now() string {
	return Timestamp(time.Now())
}

// EnvOr reads an environment variable, falling back when unset or empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

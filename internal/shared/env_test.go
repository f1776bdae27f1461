package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimestampIsUTC(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	ts := Timestamp(time.Date(2024, 3, 1, 9, 0, 0, 0, loc))
	assert.Equal(t, "2024-03-01T00:00:00Z", ts)
}

func TestEnvOr(t *testing.T) {
	t.Setenv("ENVIRONMENT", "staging")
	assert.Equal(t, "staging", EnvOr("ENVIRONMENT", "development"))

	t.Setenv("ENVIRONMENT", "")
	assert.Equal(t, "development", EnvOr("ENVIRONMENT", "development"))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLogLevel("debug"))
	assert.Equal(t, WARN, ParseLogLevel("WARN"))
	assert.Equal(t, ERROR, ParseLogLevel("error"))
	assert.Equal(t, INFO, ParseLogLevel("anything-else"))
}

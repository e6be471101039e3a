package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJWTDuration(t *testing.T) {
	AppConfig = &Config{}
	cases := map[string]time.Duration{
		"7d":    7 * 24 * time.Hour,
		"1d":    24 * time.Hour,
		"30m":   30 * time.Minute,
		"2h":    2 * time.Hour,
		"bogus": 7 * 24 * time.Hour,
	}
	for in, want := range cases {
		AppConfig.JWTExpiresIn = in
		assert.Equal(t, want, JWTDuration(), in)
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("FT_DURATION", "3s")
	t.Setenv("FT_FLOAT", "0.75")
	t.Setenv("FT_BAD", "abc")

	assert.Equal(t, 3*time.Second, getEnvAsDuration("FT_DURATION", time.Second))
	assert.Equal(t, time.Second, getEnvAsDuration("FT_BAD", time.Second))
	assert.Equal(t, 0.75, getEnvAsFloat("FT_FLOAT", 0.5))
	assert.Equal(t, 0.5, getEnvAsFloat("FT_BAD", 0.5))
	assert.Equal(t, "fallback", getEnv("FT_UNSET_KEY", "fallback"))
}

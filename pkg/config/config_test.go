package config

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, "campus_admin", cfg.Database.Name)
	assert.Equal(t, 2*time.Minute, cfg.Analytics.CacheTTL)
	assert.False(t, cfg.Analytics.CacheEnabled)
	assert.Equal(t, 24*time.Hour, cfg.Exports.SignedURLTTL)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	v.Set("ANALYTICS_CACHE_TTL", "not-a-duration")
	v.Set("ANALYTICS_TIMEZONE", "Asia/Kolkata")

	cfg := fromViper(v)

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 2*time.Minute, cfg.Analytics.CacheTTL)
	assert.Equal(t, "Asia/Kolkata", cfg.Analytics.Location().String())
}

func TestAnalyticsLocationDefaultsToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, AnalyticsConfig{}.Location())
	assert.Equal(t, "America/New_York", AnalyticsConfig{Timezone: "America/New_York"}.Location().String())
}

func TestAnalyticsValidateRejectsUnusableZones(t *testing.T) {
	assert.NoError(t, AnalyticsConfig{}.Validate())
	assert.NoError(t, AnalyticsConfig{Timezone: "UTC"}.Validate())
	assert.NoError(t, AnalyticsConfig{Timezone: "Asia/Kolkata"}.Validate())

	err := AnalyticsConfig{Timezone: "Mars/Olympus"}.Validate()
	assert.ErrorContains(t, err, "Mars/Olympus")
	assert.Error(t, AnalyticsConfig{Timezone: "Local"}.Validate())
	assert.Error(t, AnalyticsConfig{Timezone: "local"}.Validate())
}

func TestLoadFailsOnInvalidTimezone(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("ANALYTICS_TIMEZONE", "Mars/Olympus")

	_, err = Load()
	assert.ErrorContains(t, err, "ANALYTICS_TIMEZONE")
}

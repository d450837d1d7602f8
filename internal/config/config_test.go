package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheTTLForPerKeyOverride(t *testing.T) {
	app := App{
		CacheDefaultTTL: "1h",
		CacheTTL: map[string]string{
			"permission_list": "30m",
		},
	}

	assert.Equal(t, 30*time.Minute, app.CacheTTLFor("permission_list"))
	assert.Equal(t, time.Hour, app.CacheTTLFor("other_key"))
}

func TestCacheTTLForFallsBackOnBadValues(t *testing.T) {
	app := App{
		CacheDefaultTTL: "nonsense",
		CacheTTL: map[string]string{
			"broken": "also-nonsense",
		},
	}

	assert.Equal(t, 24*time.Hour, app.CacheTTLFor("broken"))
	assert.Equal(t, 24*time.Hour, app.CacheTTLFor("missing"))
}

func TestDefaultsAreApplied(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	assert.Equal(t, "admin", cfg.App.AdminRole)
	assert.Equal(t, 50, cfg.App.DefaultPageSize)
	assert.True(t, cfg.App.AuthorizationEnabled)
	assert.False(t, cfg.App.EncodeConditions)
	assert.Equal(t, "8080", cfg.Server.Port)
}

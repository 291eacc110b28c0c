package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "forecast.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.CacheTTL())
	assert.Equal(t, 12, cfg.History.LookbackMonths)

	ec, err := cfg.EngineConfig()
	require.NoError(t, err)
	assert.Equal(t, 1.25, ec.SeasonalMultiplier(time.July))
	assert.Equal(t, 0.08, ec.DiscountRate)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "redis"
redis_addr = "cache:6379"
ttl_seconds = 120

[history]
backend = "sqlite"
sqlite_path = "/tmp/history.db"
lookback_months = 6

[engine]
labor_share = 0.5
materials_share = 0.3
overhead_share = 0.2
discount_rate = 0.05
recommendations = ["Only one"]

[engine.seasonal_curve]
jul = 1.4
december = 0.8
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL())
	assert.Equal(t, 6, cfg.History.LookbackMonths)

	ec, err := cfg.EngineConfig()
	require.NoError(t, err)
	assert.Equal(t, 1.4, ec.SeasonalMultiplier(time.July))
	assert.Equal(t, 0.8, ec.SeasonalMultiplier(time.December))
	assert.Equal(t, 1.15, ec.SeasonalMultiplier(time.June), "months left out keep their default")
	assert.Equal(t, 0.5, ec.CostSplit.Labor)
	assert.Equal(t, []string{"Only one"}, ec.Recommendations)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = ":9000"
`)
	t.Setenv("FORECAST_ADDR", ":7000")
	t.Setenv("FORECAST_HISTORY_BACKEND", "postgres")
	t.Setenv("FORECAST_POSTGRES_DSN", "postgres://localhost/forecast")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "postgres", cfg.History.Backend)
}

func TestLoad_RejectsInvalidSettings(t *testing.T) {
	cases := map[string]string{
		"unknown cache":   "[cache]\nbackend = \"memcached\"\n",
		"unknown month":   "[engine.seasonal_curve]\nsmarch = 1.1\n",
		"bad split":       "[engine]\nlabor_share = 0.9\nmaterials_share = 0.3\noverhead_share = 0.25\ndiscount_rate = 0.08\n",
		"sqlite no path":  "[history]\nbackend = \"sqlite\"\nsqlite_path = \"\"\n",
		"zero rate limit": "[rate_limit]\ncapacity = 0\nrefill_seconds = 60\n",
		"month aliases":   "[engine.seasonal_curve]\njul = 1.4\njuly = 1.1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MalformedTOML(t *testing.T) {
	_, err := Load(writeConfig(t, "[server\naddr ="))
	assert.Error(t, err)
}

func TestAdvisorAPIKey_PrefersEnvironment(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	cfg := DefaultConfig()
	cfg.Advisor.APIKey = "from-file"
	assert.Equal(t, "from-file", cfg.AdvisorAPIKey())

	t.Setenv("OPENAI_API_KEY", "from-env")
	assert.Equal(t, "from-env", cfg.AdvisorAPIKey())

	cfg.Advisor.Provider = "gemini"
	t.Setenv("GEMINI_API_KEY", "gemini-env")
	assert.Equal(t, "gemini-env", cfg.AdvisorAPIKey())
}

func TestParseMonth(t *testing.T) {
	m, ok := parseMonth("Aug")
	assert.True(t, ok)
	assert.Equal(t, time.August, m)

	_, ok = parseMonth("ju")
	assert.False(t, ok)
}

func TestMergeCurve_CanonicalisesMonthNames(t *testing.T) {
	merged, err := mergeCurve(map[string]float64{"july": 1.25, "june": 1.15}, map[string]float64{"Jul": 1.4, "smarch": 2})
	require.NoError(t, err)

	assert.Equal(t, 1.4, merged["july"])
	assert.Equal(t, 1.15, merged["june"])
	assert.Equal(t, 2.0, merged["smarch"])
	assert.NotContains(t, merged, "Jul")
}

func TestMergeCurve_MonthAliases(t *testing.T) {
	defaults := map[string]float64{"july": 1.25}

	for i := 0; i < 20; i++ {
		_, err := mergeCurve(defaults, map[string]float64{"jul": 1.4, "july": 1.1})
		require.Error(t, err)
	}

	merged, err := mergeCurve(defaults, map[string]float64{"jul": 1.4, "JULY": 1.4})
	require.NoError(t, err)
	assert.Equal(t, 1.4, merged["july"])
}

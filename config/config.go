// Package config loads service settings from a TOML file, an optional .env
// file and environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"asset-forecast/service"
)

// Config holds all service configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Cache     CacheConfig     `toml:"cache"`
	History   HistoryConfig   `toml:"history"`
	Engine    EngineConfig    `toml:"engine"`
	Advisor   AdvisorConfig   `toml:"advisor"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Scheduler SchedulerConfig `toml:"scheduler"`
}

type ServerConfig struct {
	Addr                string `toml:"addr"`
	ReadTimeoutSeconds  int    `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `toml:"write_timeout_seconds"`
	IdleTimeoutSeconds  int    `toml:"idle_timeout_seconds"`
}

// CacheConfig selects the cache backend: "memory" or "redis".
type CacheConfig struct {
	Backend    string `toml:"backend"`
	RedisAddr  string `toml:"redis_addr,omitempty"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

// HistoryConfig selects the history provider: "memory", "sqlite" or "postgres".
type HistoryConfig struct {
	Backend        string `toml:"backend"`
	SQLitePath     string `toml:"sqlite_path,omitempty"`
	PostgresDSN    string `toml:"postgres_dsn,omitempty"`
	LookbackMonths int    `toml:"lookback_months"`
}

// EngineConfig holds the business tables. SeasonalCurve keys are month names
// ("january" or "jan"); months left out of the file keep their default
// multiplier.
type EngineConfig struct {
	SeasonalCurve           map[string]float64  `toml:"seasonal_curve,omitempty"`
	LaborShare              float64             `toml:"labor_share"`
	MaterialsShare          float64             `toml:"materials_share"`
	OverheadShare           float64             `toml:"overhead_share"`
	Recommendations         []string            `toml:"recommendations,omitempty"`
	ScenarioRecommendations map[string][]string `toml:"scenario_recommendations,omitempty"`
	DiscountRate            float64             `toml:"discount_rate"`
}

type AdvisorConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model,omitempty"`
	APIURL   string `toml:"api_url,omitempty"`
	APIKey   string `toml:"api_key,omitempty"`
}

type RateLimitConfig struct {
	Capacity      int `toml:"capacity"`
	RefillSeconds int `toml:"refill_seconds"`
}

type SchedulerConfig struct {
	WarmIntervalMinutes int `toml:"warm_interval_minutes"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	def := service.DefaultEngineConfig()
	curve := make(map[string]float64, len(def.SeasonalCurve))
	for month, m := range def.SeasonalCurve {
		curve[strings.ToLower(month.String())] = m
	}

	return Config{
		Server: ServerConfig{
			Addr:                ":8080",
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 15,
			IdleTimeoutSeconds:  60,
		},
		Cache: CacheConfig{
			Backend:    "memory",
			RedisAddr:  "localhost:6379",
			TTLSeconds: int(service.DefaultCacheTTL / time.Second),
		},
		History: HistoryConfig{
			Backend:        "memory",
			SQLitePath:     "data/history.db",
			LookbackMonths: service.HistoryLookbackMonths,
		},
		Engine: EngineConfig{
			SeasonalCurve:   curve,
			LaborShare:      def.CostSplit.Labor,
			MaterialsShare:  def.CostSplit.Materials,
			OverheadShare:   def.CostSplit.Overhead,
			Recommendations: def.Recommendations,
			DiscountRate:    def.DiscountRate,
		},
		Advisor: AdvisorConfig{
			Provider: service.ProviderOpenAI,
		},
		RateLimit: RateLimitConfig{
			Capacity:      30,
			RefillSeconds: 60,
		},
		Scheduler: SchedulerConfig{
			WarmIntervalMinutes: 30,
		},
	}
}

// Load reads path (defaults when it does not exist), then .env, then the
// environment.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading .env: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return cfg, fmt.Errorf("reading config: %w", err)
		default:
			defaults := cfg.Engine.SeasonalCurve
			cfg.Engine.SeasonalCurve = nil
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config: %w", err)
			}
			curve, err := mergeCurve(defaults, cfg.Engine.SeasonalCurve)
			if err != nil {
				return cfg, err
			}
			cfg.Engine.SeasonalCurve = curve
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString(&cfg.Server.Addr, "FORECAST_ADDR")
	setString(&cfg.Cache.Backend, "FORECAST_CACHE_BACKEND")
	setString(&cfg.Cache.RedisAddr, "FORECAST_REDIS_ADDR")
	setString(&cfg.History.Backend, "FORECAST_HISTORY_BACKEND")
	setString(&cfg.History.SQLitePath, "FORECAST_SQLITE_PATH")
	setString(&cfg.History.PostgresDSN, "FORECAST_POSTGRES_DSN")
	setString(&cfg.Advisor.Provider, "FORECAST_ADVISOR_PROVIDER")
}

// AdvisorAPIKey returns the key from the environment or config, in that order.
func (c Config) AdvisorAPIKey() string {
	switch c.Advisor.Provider {
	case service.ProviderGemini:
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			return key
		}
	default:
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			return key
		}
	}
	return c.Advisor.APIKey
}

// Validate rejects settings the service cannot run with.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case "memory":
	case "redis":
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache: redis backend needs redis_addr")
		}
	default:
		return fmt.Errorf("cache: unknown backend %q", c.Cache.Backend)
	}
	if c.Cache.TTLSeconds < 0 {
		return fmt.Errorf("cache: ttl_seconds must not be negative")
	}

	switch c.History.Backend {
	case "memory":
	case "sqlite":
		if c.History.SQLitePath == "" {
			return fmt.Errorf("history: sqlite backend needs sqlite_path")
		}
	case "postgres":
		if c.History.PostgresDSN == "" {
			return fmt.Errorf("history: postgres backend needs postgres_dsn")
		}
	default:
		return fmt.Errorf("history: unknown backend %q", c.History.Backend)
	}

	if c.RateLimit.Capacity <= 0 || c.RateLimit.RefillSeconds <= 0 {
		return fmt.Errorf("rate_limit: capacity and refill_seconds must be positive")
	}
	if c.Scheduler.WarmIntervalMinutes < 0 {
		return fmt.Errorf("scheduler: warm_interval_minutes must not be negative")
	}

	if _, err := c.EngineConfig(); err != nil {
		return err
	}
	return nil
}

// EngineConfig converts the engine section into the service representation.
func (c Config) EngineConfig() (service.EngineConfig, error) {
	ec := service.DefaultEngineConfig()
	curve := make(map[time.Month]float64, len(c.Engine.SeasonalCurve))
	for name, m := range c.Engine.SeasonalCurve {
		month, ok := parseMonth(name)
		if !ok {
			return ec, fmt.Errorf("engine: unknown month %q in seasonal_curve", name)
		}
		if prev, dup := curve[month]; dup && prev != m {
			return ec, fmt.Errorf("engine: %s has conflicting seasonal_curve entries", month)
		}
		curve[month] = m
	}
	ec.SeasonalCurve = curve
	ec.CostSplit = service.CostSplit{
		Labor:     c.Engine.LaborShare,
		Materials: c.Engine.MaterialsShare,
		Overhead:  c.Engine.OverheadShare,
	}
	if len(c.Engine.Recommendations) > 0 {
		ec.Recommendations = c.Engine.Recommendations
	}
	ec.ScenarioRecommendations = c.Engine.ScenarioRecommendations
	ec.DiscountRate = c.Engine.DiscountRate

	if err := ec.Validate(); err != nil {
		return ec, fmt.Errorf("engine: %w", err)
	}
	return ec, nil
}

// mergeCurve lays file entries over the defaults. Recognised month names are
// stored under their full lowercase name; anything else is kept as written so
// EngineConfig can reject it. Two file entries naming the same month with
// different values are an error.
func mergeCurve(defaults, file map[string]float64) (map[string]float64, error) {
	merged := make(map[string]float64, len(defaults)+len(file))
	for name, m := range defaults {
		merged[name] = m
	}
	seen := make(map[string]float64, len(file))
	for name, m := range file {
		if month, ok := parseMonth(name); ok {
			name = strings.ToLower(month.String())
			if prev, dup := seen[name]; dup && prev != m {
				return nil, fmt.Errorf("engine: %s has conflicting seasonal_curve entries", month)
			}
			seen[name] = m
		}
		merged[name] = m
	}
	return merged, nil
}

func parseMonth(name string) (time.Month, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) < 3 {
		return 0, false
	}
	for m := time.January; m <= time.December; m++ {
		full := strings.ToLower(m.String())
		if name == full || name == full[:3] {
			return m, true
		}
	}
	return 0, false
}

func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

func (c Config) WarmInterval() time.Duration {
	return time.Duration(c.Scheduler.WarmIntervalMinutes) * time.Minute
}

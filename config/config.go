package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Assistant core
	Core         CoreConfig
	Workflow     WorkflowConfig
	Orchestrator OrchestratorConfig
	Store        StoreConfig
	Catalog      CatalogConfig
	RateLimit    RateLimitConfig

	// External providers
	Weather        WeatherConfig
	GoogleCalendar GoogleCalendarConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// CoreConfig holds the intent analysis tunables.
type CoreConfig struct {
	WeightFloor             float64
	MaxCandidates           int
	InterferenceSensitivity float64
	DecoherenceThreshold    float64
	SecondaryWeightMin      float64
	LateNightStart          int
	LateNightEnd            int
}

type WorkflowConfig struct {
	MitigationThreshold float64
}

type OrchestratorConfig struct {
	StepTimeout        time.Duration
	MaxParallelSteps   int
	RetentionDays      int
	PruneInterval      time.Duration
	LearnerHistorySize int
}

// StoreConfig selects the user-context store. Driver is "memory" or
// "sqlite"; Path applies to sqlite only.
type StoreConfig struct {
	Driver string
	Path   string
}

type CatalogConfig struct {
	Path string
}

type RateLimitConfig struct {
	RequestsPerMin int
	MaxUsers       int
}

type WeatherConfig struct {
	Enabled     bool
	ForecastURL string
	GeocodeURL  string
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	CalendarID      string
	Timezone        string
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Intent analysis
	cfg.Core.WeightFloor = viper.GetFloat64("core.weight_floor")
	cfg.Core.MaxCandidates = viper.GetInt("core.max_candidates")
	cfg.Core.InterferenceSensitivity = viper.GetFloat64("core.interference_sensitivity")
	cfg.Core.DecoherenceThreshold = viper.GetFloat64("core.decoherence_threshold")
	cfg.Core.SecondaryWeightMin = viper.GetFloat64("core.secondary_weight_min")
	cfg.Core.LateNightStart = viper.GetInt("core.late_night_start")
	cfg.Core.LateNightEnd = viper.GetInt("core.late_night_end")

	// Workflow synthesis
	cfg.Workflow.MitigationThreshold = viper.GetFloat64("workflow.mitigation_threshold")

	// Orchestration
	cfg.Orchestrator.StepTimeout = viper.GetDuration("orchestrator.step_timeout")
	cfg.Orchestrator.MaxParallelSteps = viper.GetInt("orchestrator.max_parallel_steps")
	cfg.Orchestrator.RetentionDays = viper.GetInt("orchestrator.retention_days")
	cfg.Orchestrator.PruneInterval = viper.GetDuration("orchestrator.prune_interval")
	cfg.Orchestrator.LearnerHistorySize = viper.GetInt("orchestrator.learner_history_size")

	// User context store
	cfg.Store.Driver = viper.GetString("store.driver")
	cfg.Store.Path = viper.GetString("store.path")
	if cfg.Store.Driver != "memory" && cfg.Store.Driver != "sqlite" {
		return nil, fmt.Errorf("store.driver must be memory or sqlite, got %q", cfg.Store.Driver)
	}
	if cfg.Store.Driver == "sqlite" && cfg.Store.Path == "" {
		return nil, fmt.Errorf("store.path is required for the sqlite driver")
	}

	// Intent catalog
	cfg.Catalog.Path = viper.GetString("catalog.path")

	// Rate limiting
	cfg.RateLimit.RequestsPerMin = viper.GetInt("rate_limit.requests_per_min")
	cfg.RateLimit.MaxUsers = viper.GetInt("rate_limit.max_users")

	// Weather provider
	cfg.Weather.Enabled = viper.GetBool("weather.enabled")
	cfg.Weather.ForecastURL = viper.GetString("weather.forecast_url")
	cfg.Weather.GeocodeURL = viper.GetString("weather.geocode_url")

	// Google Calendar provider
	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.CalendarID = viper.GetString("google_calendar.calendar_id")
	cfg.GoogleCalendar.Timezone = viper.GetString("google_calendar.timezone")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("core.weight_floor", 0.1)
	viper.SetDefault("core.max_candidates", 10)
	viper.SetDefault("core.interference_sensitivity", 0.1)
	viper.SetDefault("core.decoherence_threshold", 0.6)
	viper.SetDefault("core.secondary_weight_min", 0.3)
	viper.SetDefault("core.late_night_start", 22)
	viper.SetDefault("core.late_night_end", 6)

	viper.SetDefault("workflow.mitigation_threshold", 0.6)

	viper.SetDefault("orchestrator.step_timeout", "3s")
	viper.SetDefault("orchestrator.max_parallel_steps", 4)
	viper.SetDefault("orchestrator.retention_days", 90)
	viper.SetDefault("orchestrator.prune_interval", "24h")
	viper.SetDefault("orchestrator.learner_history_size", 500)

	viper.SetDefault("store.driver", "memory")

	viper.SetDefault("rate_limit.requests_per_min", 60)
	viper.SetDefault("rate_limit.max_users", 1000)

	viper.SetDefault("weather.enabled", true)
	viper.SetDefault("google_calendar.timezone", "Asia/Ho_Chi_Minh")
}

package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrServerAddrRequired        = errors.New("sitebuilder config: server address is required")
	ErrStorageDriverUnknown      = errors.New("sitebuilder config: storage driver is invalid")
	ErrStorageURLRequired        = errors.New("sitebuilder config: database url is required for the selected driver")
	ErrCacheTTLInvalid           = errors.New("sitebuilder config: cache ttl must be positive when cache is enabled")
	ErrGenerationProviderUnknown = errors.New("sitebuilder config: generation provider is invalid")
	ErrTemperatureInvalid        = errors.New("sitebuilder config: generation temperature must be between 0 and 2")
	ErrRecentLimitInvalid        = errors.New("sitebuilder config: recent projects limit must be positive")
	ErrTransitionDelayInvalid    = errors.New("sitebuilder config: editor transition delay must be zero or positive")
	ErrLoggingProviderUnknown    = errors.New("sitebuilder config: logging provider is invalid")
	ErrLoggingLevelInvalid       = errors.New("sitebuilder config: logging level is invalid")
	ErrLoggingFormatInvalid      = errors.New("sitebuilder config: logging format is invalid")
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Generation providers. ProviderAuto picks Gemini when its key is set, then
// OpenAI, then none.
const (
	ProviderAuto   = "auto"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderNone   = "none"
)

// Config aggregates the settings of the site builder server.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Storage    StorageConfig    `yaml:"storage"`
	Cache      CacheConfig      `yaml:"cache"`
	Generation GenerationConfig `yaml:"generation"`
	Images     ImagesConfig     `yaml:"images"`
	Auth       AuthConfig       `yaml:"auth"`
	Editor     EditorConfig     `yaml:"editor"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig captures the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr" env:"SITEBUILDER_ADDR" env-default:":8080"`
	BasePath        string        `yaml:"base_path" env:"SITEBUILDER_BASE_PATH" env-default:"/api"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SITEBUILDER_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SITEBUILDER_WRITE_TIMEOUT" env-default:"90s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SITEBUILDER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	AllowedOrigins  []string      `yaml:"allowed_origins" env:"SITEBUILDER_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
}

// StorageConfig selects where per-user state and published sites live.
type StorageConfig struct {
	Driver      string `yaml:"driver" env:"DATABASE_DRIVER" env-default:"sqlite3"`
	URL         string `yaml:"url" env:"DATABASE_URL" env-default:"file:sitebuilder.db?cache=shared&_fk=1"`
	AutoMigrate bool   `yaml:"auto_migrate" env:"DATABASE_AUTO_MIGRATE" env-default:"true"`
}

// CacheConfig captures the read cache in front of the bun repositories.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" env:"CACHE_ENABLED" env-default:"true"`
	TTL     time.Duration `yaml:"ttl" env:"CACHE_TTL" env-default:"1m"`
}

// GenerationConfig selects and configures the text generation provider.
type GenerationConfig struct {
	Provider      string  `yaml:"provider" env:"GENERATION_PROVIDER" env-default:"auto"`
	OpenAIKey     string  `yaml:"openai_api_key" env:"OPENAI_API_KEY"`
	OpenAIModel   string  `yaml:"openai_model" env:"OPENAI_MODEL"`
	OpenAIBaseURL string  `yaml:"openai_base_url" env:"OPENAI_BASE_URL"`
	GeminiKey     string  `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	GeminiModel   string  `yaml:"gemini_model" env:"GEMINI_MODEL"`
	Temperature   float64 `yaml:"temperature" env:"GENERATION_TEMPERATURE" env-default:"0.7"`
}

// ImagesConfig configures the Pexels image search.
type ImagesConfig struct {
	PexelsKey string        `yaml:"pexels_api_key" env:"PEXELS_API_KEY"`
	BaseURL   string        `yaml:"base_url" env:"PEXELS_BASE_URL"`
	Timeout   time.Duration `yaml:"timeout" env:"PEXELS_TIMEOUT" env-default:"15s"`
}

// AuthConfig enables bearer token identity when JWTSecret is set.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET"`
}

// EditorConfig captures editor session behaviour.
type EditorConfig struct {
	TransitionDelay time.Duration `yaml:"transition_delay" env:"EDITOR_TRANSITION_DELAY" env-default:"300ms"`
	RecentLimit     int           `yaml:"recent_limit" env:"EDITOR_RECENT_LIMIT" env-default:"10"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider" env:"LOG_PROVIDER" env-default:"gologger"`
	Level     string   `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format    string   `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
	AddSource bool     `yaml:"add_source" env:"LOG_ADD_SOURCE"`
	Focus     []string `yaml:"focus" env:"LOG_FOCUS" env-separator:","`
}

// DefaultConfig returns the defaults used when no file or environment
// overrides are present.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			BasePath:        "/api",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    90 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			AllowedOrigins:  []string{"*"},
		},
		Storage: StorageConfig{
			Driver:      DriverSQLite,
			URL:         "file:sitebuilder.db?cache=shared&_fk=1",
			AutoMigrate: true,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Minute,
		},
		Generation: GenerationConfig{
			Provider:    ProviderAuto,
			Temperature: 0.7,
		},
		Images: ImagesConfig{
			Timeout: 15 * time.Second,
		},
		Editor: EditorConfig{
			TransitionDelay: 300 * time.Millisecond,
			RecentLimit:     10,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "json",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return ErrServerAddrRequired
	}
	switch driver := NormalizeDriver(cfg.Storage.Driver); driver {
	case DriverMemory:
	case DriverSQLite, DriverPostgres:
		if strings.TrimSpace(cfg.Storage.URL) == "" {
			return fmt.Errorf("%w: %s", ErrStorageURLRequired, driver)
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, cfg.Storage.Driver)
	}
	if cfg.Cache.Enabled && cfg.Cache.TTL <= 0 {
		return ErrCacheTTLInvalid
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Generation.Provider)) {
	case "", ProviderAuto, ProviderOpenAI, ProviderGemini, ProviderNone:
	default:
		return fmt.Errorf("%w: %s", ErrGenerationProviderUnknown, cfg.Generation.Provider)
	}
	if cfg.Generation.Temperature < 0 || cfg.Generation.Temperature > 2 {
		return ErrTemperatureInvalid
	}
	if cfg.Editor.RecentLimit <= 0 {
		return ErrRecentLimitInvalid
	}
	if cfg.Editor.TransitionDelay < 0 {
		return ErrTransitionDelayInvalid
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// NormalizeDriver maps driver aliases to the canonical names.
func NormalizeDriver(driver string) string {
	switch d := strings.ToLower(strings.TrimSpace(driver)); d {
	case "sqlite":
		return DriverSQLite
	case "postgresql", "pgx":
		return DriverPostgres
	default:
		return d
	}
}

// ResolveProvider returns the concrete generation provider to construct.
func (cfg GenerationConfig) ResolveProvider() string {
	switch p := strings.ToLower(strings.TrimSpace(cfg.Provider)); p {
	case ProviderOpenAI, ProviderGemini, ProviderNone:
		return p
	}
	switch {
	case strings.TrimSpace(cfg.GeminiKey) != "":
		return ProviderGemini
	case strings.TrimSpace(cfg.OpenAIKey) != "":
		return ProviderOpenAI
	default:
		return ProviderNone
	}
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}

package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/docdraft/internal/analysis"
	"github.com/sells-group/docdraft/internal/model"
)

// Config holds the full application configuration.
type Config struct {
	Draft     DraftConfig     `yaml:"draft" mapstructure:"draft"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// DraftConfig controls how documents are drafted.
type DraftConfig struct {
	DryRun           bool `yaml:"dry_run" mapstructure:"dry_run"`
	HighlightCount   int  `yaml:"highlight_count" mapstructure:"highlight_count"`
	TableSize        int  `yaml:"table_size" mapstructure:"table_size"`
	CitationK        int  `yaml:"citation_k" mapstructure:"citation_k"`
	MaxConcurrency   int  `yaml:"max_concurrency" mapstructure:"max_concurrency"`
	MaxContractChars int  `yaml:"max_contract_chars" mapstructure:"max_contract_chars"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key               string  `yaml:"key" mapstructure:"key"`
	BaseURL           string  `yaml:"base_url" mapstructure:"base_url"`
	Model             string  `yaml:"model" mapstructure:"model"`
	MaxTokens         int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// StoreConfig configures the run log. An empty path disables it.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from .env, file and environment.
func Load() (*Config, error) {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("DOCDRAFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("draft.dry_run", true)
	v.SetDefault("draft.highlight_count", analysis.DefaultHighlightCount)
	v.SetDefault("draft.table_size", analysis.DefaultTableSize)
	v.SetDefault("draft.citation_k", analysis.DefaultCitationK)
	v.SetDefault("draft.max_concurrency", 4)
	v.SetDefault("draft.max_contract_chars", 15000)
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.base_url", "")
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 2048)
	v.SetDefault("anthropic.requests_per_second", 2.0)
	v.SetDefault("store.path", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Mode resolves the drafting mode. Dry run or a missing API key selects
// the rule-based path.
func (c *Config) Mode() model.DraftMode {
	if c.Draft.DryRun || strings.TrimSpace(c.Anthropic.Key) == "" {
		return model.ModeRuleBased
	}
	return model.ModeService
}

// Options returns the analysis options carried by the draft section.
func (c *Config) Options() analysis.Options {
	return analysis.Options{
		HighlightCount: c.Draft.HighlightCount,
		TableSize:      c.Draft.TableSize,
		CitationK:      c.Draft.CitationK,
	}
}

// Validate checks the settings a command needs. mode is "draft" or "serve".
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "draft":
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, fmt.Sprintf("server.port must be > 0 and <= 65535 (got %d)", c.Server.Port))
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Draft.MaxConcurrency < 1 {
		errs = append(errs, fmt.Sprintf("draft.max_concurrency must be >= 1 (got %d)", c.Draft.MaxConcurrency))
	}
	if c.Draft.MaxContractChars < 1 {
		errs = append(errs, fmt.Sprintf("draft.max_contract_chars must be >= 1 (got %d)", c.Draft.MaxContractChars))
	}
	if c.Mode() == model.ModeService {
		if c.Anthropic.Model == "" {
			errs = append(errs, "anthropic.model is required when drafting with the service")
		}
		if c.Anthropic.MaxTokens < 1 {
			errs = append(errs, fmt.Sprintf("anthropic.max_tokens must be >= 1 (got %d)", c.Anthropic.MaxTokens))
		}
		if c.Anthropic.RequestsPerSecond <= 0 {
			errs = append(errs, fmt.Sprintf("anthropic.requests_per_second must be > 0 (got %g)", c.Anthropic.RequestsPerSecond))
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

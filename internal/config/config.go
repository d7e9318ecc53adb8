package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Research  ResearchConfig  `yaml:"research" mapstructure:"research"`
	Batch     BatchConfig     `yaml:"batch" mapstructure:"batch"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Mail      MailConfig      `yaml:"mail" mapstructure:"mail"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// ResearchConfig configures the research pipeline timeouts and rubric.
type ResearchConfig struct {
	ProbeTimeoutSecs   int     `yaml:"probe_timeout_secs" mapstructure:"probe_timeout_secs"`
	AnalyzeTimeoutSecs int     `yaml:"analyze_timeout_secs" mapstructure:"analyze_timeout_secs"`
	ContactTimeoutSecs int     `yaml:"contact_timeout_secs" mapstructure:"contact_timeout_secs"`
	MaxRequestsPerSec  float64 `yaml:"max_requests_per_sec" mapstructure:"max_requests_per_sec"`
	UserAgent          string  `yaml:"user_agent" mapstructure:"user_agent"`
	RubricPath         string  `yaml:"rubric_path" mapstructure:"rubric_path"`
}

// BatchConfig configures batch research throttling.
type BatchConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
	DelayMillis   int `yaml:"delay_millis" mapstructure:"delay_millis"`
}

// AnthropicConfig holds Anthropic API settings for the copywriter and the
// command interpreter.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// MailConfig configures the SES outreach sender.
type MailConfig struct {
	Region string `yaml:"region" mapstructure:"region"`
	From   string `yaml:"from" mapstructure:"from"`
}

// ServerConfig configures the dashboard API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// CacheConfig configures the in-memory research result cache.
type CacheConfig struct {
	TTLMinutes int `yaml:"ttl_minutes" mapstructure:"ttl_minutes"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PROSPECT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("research.probe_timeout_secs", 5)
	v.SetDefault("research.analyze_timeout_secs", 10)
	v.SetDefault("research.contact_timeout_secs", 8)
	v.SetDefault("research.max_requests_per_sec", 10.0)
	v.SetDefault("research.user_agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")
	v.SetDefault("batch.max_concurrent", 3)
	v.SetDefault("batch.delay_millis", 2000)
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("mail.region", "us-east-1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("cache.ttl_minutes", 60)
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

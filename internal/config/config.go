// Package config loads and validates the application configuration from a
// YAML file with secrets bound to environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Line       LineConfig       `mapstructure:"line"`
	Analyzer   AnalyzerConfig   `mapstructure:"analyzer"`
	News       NewsConfig       `mapstructure:"news"`
	Extraction ExtractionConfig `mapstructure:"extraction"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type OpenAIConfig struct {
	APIKey           string        `mapstructure:"api_key"`
	Model            string        `mapstructure:"model"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MaxRetryAttempts uint          `mapstructure:"max_retry_attempts"`
}

type LineConfig struct {
	ChannelSecret string        `mapstructure:"channel_secret"`
	ChannelToken  string        `mapstructure:"channel_token"`
	UserID        string        `mapstructure:"user_id"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

type AnalyzerConfig struct {
	APIKey string `mapstructure:"api_key"`

	// VocabularyTrigger is the command phrase that switches an inbound chat
	// message to the vocabulary pipeline.
	VocabularyTrigger string `mapstructure:"vocabulary_trigger" validate:"required"`
}

type NewsConfig struct {
	Scraper    string `mapstructure:"scraper"`
	RequestURL string `mapstructure:"request_url" validate:"omitempty,url"`
}

type ExtractionConfig struct {
	Level        string        `mapstructure:"level"`
	Count        int           `mapstructure:"count" validate:"gt=0"`
	MinWordCount int           `mapstructure:"min_word_count" validate:"gt=0"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/ginnybot")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 2*time.Minute)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "ginnybot")
	v.SetDefault("database.username", "user")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.timeout", time.Minute)
	v.SetDefault("openai.max_retry_attempts", 0)
	v.SetDefault("line.timeout", 10*time.Second)
	v.SetDefault("analyzer.vocabulary_trigger", "請幫我產生單字卡")
	v.SetDefault("news.scraper", "tagesschau")
	v.SetDefault("news.request_url", "https://www.tagesschau.de/wissen")
	v.SetDefault("extraction.level", "B2-C1")
	v.SetDefault("extraction.count", 10)
	v.SetDefault("extraction.min_word_count", 10)
	v.SetDefault("extraction.timeout", time.Minute)

	// Bind secrets to environment variables only (not from config file)
	if err := v.BindEnv("openai.api_key", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("openai.model", "OPENAI_MODEL"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_MODEL environment variable: %w", err)
	}
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("line.channel_secret", "LINE_CHANNEL_SECRET"); err != nil {
		return nil, fmt.Errorf("failed to bind LINE_CHANNEL_SECRET environment variable: %w", err)
	}
	if err := v.BindEnv("line.channel_token", "LINE_CHANNEL_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind LINE_CHANNEL_TOKEN environment variable: %w", err)
	}
	if err := v.BindEnv("line.user_id", "LINE_USER_ID"); err != nil {
		return nil, fmt.Errorf("failed to bind LINE_USER_ID environment variable: %w", err)
	}
	if err := v.BindEnv("analyzer.api_key", "ANALYZER_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind ANALYZER_API_KEY environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

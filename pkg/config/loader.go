package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	DB          DBConfig          `yaml:"db"`
	MQ          MQConfig          `yaml:"mq"`
	Outbox      OutboxConfig      `yaml:"outbox"`
	Redis       RedisConfig       `yaml:"redis"`
	LLM         LLMConfig         `yaml:"llm"`
	Processing  ProcessingConfig  `yaml:"processing"`
	Chat        ChatConfig        `yaml:"chat"`
	PromptCache PromptCacheConfig `yaml:"prompt_cache"`
	CORS        CORSConfig        `yaml:"cors"`
	Log         LogConfig         `yaml:"log"`
}

// Default returns the configuration used when no file or variable overrides a value.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: ":8000", Mode: "release"},
		DB: DBConfig{
			Host:    "localhost",
			Port:    5432,
			User:    "mailflow",
			Name:    "mailflow",
			SSLMode: "disable",
		},
		Outbox: OutboxConfig{Interval: time.Second, BatchSize: 100, MaxRetries: 5},
		LLM: LLMConfig{
			BaseURL:           "https://api.groq.com/openai/v1",
			Model:             "llama-3.3-70b-versatile",
			Temperature:       0.7,
			MaxTokens:         1000,
			Timeout:           30 * time.Second,
			RequestsPerSecond: 5,
		},
		Processing:  ProcessingConfig{Concurrency: 1, BatchTTL: 10 * time.Minute},
		Chat:        ChatConfig{MaxContextEmails: 200},
		PromptCache: PromptCacheConfig{TTL: 30 * time.Second},
		CORS: CORSConfig{Origins: []string{
			"http://localhost:5173",
			"http://localhost:8080",
			"http://localhost:3000",
		}},
		Log: LogConfig{Level: "info"},
	}
}

// Load builds the configuration in three layers:
//  1. defaults
//  2. the YAML file at path (skipped when it does not exist)
//  3. environment variables, after loading .env if present
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = GetEnv("CONFIG_PATH", "config.yaml")
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// defaults + env only
	default:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	OverrideServerFromEnv(&cfg.Server)
	OverrideDBFromEnv(&cfg.DB)
	OverrideMQFromEnv(&cfg.MQ)
	OverrideRedisFromEnv(&cfg.Redis)
	OverrideLLMFromEnv(&cfg.LLM)
	OverrideCORSFromEnv(&cfg.CORS)
	OverrideLogFromEnv(&cfg.Log)

	if cfg.Processing.Concurrency <= 0 {
		cfg.Processing.Concurrency = 1
	}

	return cfg, nil
}

// GetEnv returns the variable's value, or defaultValue when unset or empty.
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

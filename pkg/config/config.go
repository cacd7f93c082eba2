package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DBConfig PostgreSQL settings
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

// MQConfig RabbitMQ settings. An empty URL disables event publishing.
type MQConfig struct {
	URL string `yaml:"url"`
}

// OutboxConfig event dispatcher settings
type OutboxConfig struct {
	Interval   time.Duration `yaml:"interval"`
	BatchSize  int           `yaml:"batch_size"`
	MaxRetries int           `yaml:"max_retries"`
}

// RedisConfig Redis settings. An empty Addr disables the prompt cache and batch guard.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"`
}

// LLMConfig text generation provider settings
type LLMConfig struct {
	APIKey            string        `yaml:"api_key"`
	BaseURL           string        `yaml:"base_url"`
	Model             string        `yaml:"model"`
	Temperature       float64       `yaml:"temperature"`
	MaxTokens         int           `yaml:"max_tokens"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond int           `yaml:"requests_per_second"`
}

// ProcessingConfig batch processing settings
type ProcessingConfig struct {
	Concurrency int           `yaml:"concurrency"`
	BatchTTL    time.Duration `yaml:"batch_ttl"`
}

// ChatConfig chat context settings. MaxContextEmails == 0 means unbounded.
type ChatConfig struct {
	MaxContextEmails int `yaml:"max_context_emails"`
}

// PromptCacheConfig prompt template cache settings
type PromptCacheConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

// CORSConfig allowed browser origins
type CORSConfig struct {
	Origins []string `yaml:"origins"`
}

// LogConfig logger settings
type LogConfig struct {
	Level string `yaml:"level"`
}

// OverrideDBFromEnv applies DB_* variables. An unparsable DB_PORT is ignored.
func OverrideDBFromEnv(cfg *DBConfig) {
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Port = p
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.Password = password
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Name = name
	}
	if sslMode := os.Getenv("DB_SSLMODE"); sslMode != "" {
		cfg.SSLMode = sslMode
	}
}

// OverrideMQFromEnv applies MQ_URL.
func OverrideMQFromEnv(cfg *MQConfig) {
	if url := os.Getenv("MQ_URL"); url != "" {
		cfg.URL = url
	}
}

// OverrideRedisFromEnv applies REDIS_ADDR and REDIS_PASSWORD.
func OverrideRedisFromEnv(cfg *RedisConfig) {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Password = password
	}
}

// OverrideServerFromEnv applies SERVER_PORT and GIN_MODE.
func OverrideServerFromEnv(cfg *ServerConfig) {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Port = port
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		cfg.Mode = mode
	}
}

// OverrideLLMFromEnv reads provider credentials and model selection from the environment.
func OverrideLLMFromEnv(cfg *LLMConfig) {
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		cfg.APIKey = key
	}
	if baseURL := os.Getenv("LLM_BASE_URL"); baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model := os.Getenv("LLM_MODEL"); model != "" {
		cfg.Model = model
	}
	if timeout := os.Getenv("LLM_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			cfg.Timeout = d
		}
	}
}

// OverrideCORSFromEnv reads a comma separated origin list from CORS_ORIGINS.
func OverrideCORSFromEnv(cfg *CORSConfig) {
	raw := os.Getenv("CORS_ORIGINS")
	if raw == "" {
		return
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	cfg.Origins = origins
}

// OverrideLogFromEnv applies LOG_LEVEL.
func OverrideLogFromEnv(cfg *LogConfig) {
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Level = level
	}
}

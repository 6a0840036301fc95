package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Port            int           `yaml:"port" default:"8000"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"15s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		SlowThreshold   time.Duration `yaml:"slow_threshold" default:"2s"`
		CORSOrigins     []string      `yaml:"cors_origins" default:"[\"*\"]"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Metrics struct {
		Path string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Providers struct {
		CallTimeout    time.Duration `yaml:"call_timeout" default:"5s"`
		RequestTimeout time.Duration `yaml:"request_timeout" default:"10s"`
		PoolSize       int           `yaml:"pool_size" default:"8"`
		Weather        struct {
			BaseURL string `yaml:"base_url" default:"https://api.openweathermap.org"`
			APIKey  string `yaml:"api_key"`
		} `yaml:"weather"`
		Holidays struct {
			BaseURL string `yaml:"base_url" default:"https://date.nager.at"`
		} `yaml:"holidays"`
		Currency struct {
			BaseURL      string `yaml:"base_url" default:"https://api.frankfurter.app"`
			BaseCurrency string `yaml:"base_currency" default:"INR"`
		} `yaml:"currency"`
	} `yaml:"providers"`
	RefData struct {
		Path string `yaml:"path"`
	} `yaml:"refdata"`
	RateLimit struct {
		Backend      string        `yaml:"backend" default:"memory"`
		Capacity     float64       `yaml:"capacity" default:"10"`
		RefillPerSec float64       `yaml:"refill_per_sec" default:"2"`
		Limit        int           `yaml:"limit" default:"60"`
		Window       time.Duration `yaml:"window" default:"1m"`
		Redis        struct {
			Addr     string `yaml:"addr" default:"localhost:6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"travelpulse:rl:"`
		} `yaml:"redis"`
	} `yaml:"ratelimit"`
}

const (
	RateLimitMemory = "memory"
	RateLimitRedis  = "redis"
	RateLimitNone   = "none"
)

var currencyCode = regexp.MustCompile(`^[A-Z]{3}$`)

// Load reads and parses a YAML configuration file. An empty path yields the
// defaults alone.
func Load(path string) (*Config, error) {
	c, err := parse(path)
	if err != nil {
		return nil, err
	}

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// LoadWithEnv loads config from YAML, reads .env if present and overrides
// with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := parse(path)
	if err != nil {
		return nil, err
	}

	// .env is optional
	_ = godotenv.Load()

	// Override with environment variables
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("OPENWEATHER_API_KEY"); v != "" {
		c.Providers.Weather.APIKey = v
	}
	if v := os.Getenv("BASE_CURRENCY"); v != "" {
		c.Providers.Currency.BaseCurrency = strings.ToUpper(v)
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("SERVER_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("RATELIMIT_BACKEND"); v != "" {
		c.RateLimit.Backend = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.RateLimit.Redis.Addr = v
	}
	if v := os.Getenv("REFDATA_PATH"); v != "" {
		c.RefData.Path = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = strings.Split(v, ",")
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func parse(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	return &c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error
	if c.Environment == "" {
		errs = append(errs, errors.New("environment is required"))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.Providers.CallTimeout <= 0 {
		errs = append(errs, errors.New("providers.call_timeout must be positive"))
	}
	if c.Providers.RequestTimeout < c.Providers.CallTimeout {
		errs = append(errs, errors.New("providers.request_timeout must not be shorter than call_timeout"))
	}
	if c.Providers.PoolSize <= 0 {
		errs = append(errs, errors.New("providers.pool_size must be positive"))
	}
	if !currencyCode.MatchString(c.Providers.Currency.BaseCurrency) {
		errs = append(errs, fmt.Errorf("providers.currency.base_currency must be an ISO 4217 code, got '%s'", c.Providers.Currency.BaseCurrency))
	}
	switch c.RateLimit.Backend {
	case RateLimitMemory:
		if c.RateLimit.Capacity < 1 || c.RateLimit.RefillPerSec <= 0 {
			errs = append(errs, errors.New("ratelimit.capacity must be >= 1 and refill_per_sec positive"))
		}
	case RateLimitRedis:
		if c.RateLimit.Redis.Addr == "" || c.RateLimit.Limit <= 0 || c.RateLimit.Window <= 0 {
			errs = append(errs, errors.New("ratelimit redis backend needs addr, limit and window"))
		}
	case RateLimitNone:
	default:
		errs = append(errs, fmt.Errorf("ratelimit.backend must be 'memory', 'redis' or 'none', got '%s'", c.RateLimit.Backend))
	}
	return errors.Join(errs...)
}

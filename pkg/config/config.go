package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		Env      string `koanf:"env"`
		LogLevel string `koanf:"log_level"`
		HTTPAddr string `koanf:"http_addr"`
	} `koanf:"app"`

	HTTP struct {
		ReadTimeout    time.Duration `koanf:"read_timeout"`
		WriteTimeout   time.Duration `koanf:"write_timeout"`
		IdleTimeout    time.Duration `koanf:"idle_timeout"`
		RequestTimeout time.Duration `koanf:"request_timeout"`
	} `koanf:"http"`

	Postgres struct {
		Host           string        `koanf:"host"`
		Port           int           `koanf:"port"`
		User           string        `koanf:"user"`
		Password       string        `koanf:"password"`
		DB             string        `koanf:"db"`
		SSLMode        string        `koanf:"ssl_mode"`
		MaxOpenConns   int           `koanf:"max_open_conns"`
		MaxIdleConns   int           `koanf:"max_idle_conns"`
		PersistTimeout time.Duration `koanf:"persist_timeout"`
		MigrationsDir  string        `koanf:"migrations_dir"`
	} `koanf:"postgres"`

	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
	} `koanf:"redis"`

	Idempotency struct {
		TTL time.Duration `koanf:"ttl"`
	} `koanf:"idempotency"`

	Checkout struct {
		MaxPriceLookups int `koanf:"max_price_lookups"`
	} `koanf:"checkout"`

	Geocoder struct {
		BaseURL   string        `koanf:"base_url"`
		UserAgent string        `koanf:"user_agent"`
		Timeout   time.Duration `koanf:"timeout"`
	} `koanf:"geocoder"`

	RateLimit struct {
		RPS   float64 `koanf:"rps"`
		Burst int     `koanf:"burst"`
	} `koanf:"rate_limit"`
}

// Load reads <pathDir>/base.yaml, an optional per-env overlay and finally
// STOREFRONT_* environment variables (nested keys joined with __,
// e.g. STOREFRONT_POSTGRES__PASSWORD).
func Load(pathDir, envName string) (Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")

	if err := k.Load(file.Provider(fmt.Sprintf("%s/base.yaml", pathDir)), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base: %w", err)
	}

	// optional overlay, missing is fine for local runs
	_ = k.Load(file.Provider(fmt.Sprintf("%s/%s.yaml", pathDir, envName)), yaml.Parser())

	if err := k.Load(env.Provider("STOREFRONT_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "STOREFRONT_")
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.App.HTTPAddr == "" {
		return fmt.Errorf("app.http_addr required")
	}
	if c.Postgres.Host == "" || c.Postgres.DB == "" {
		return fmt.Errorf("postgres.host and postgres.db required")
	}
	if c.Postgres.PersistTimeout <= 0 {
		return fmt.Errorf("postgres.persist_timeout must be positive")
	}
	if c.Idempotency.TTL < 0 {
		return fmt.Errorf("idempotency.ttl must not be negative")
	}
	return nil
}

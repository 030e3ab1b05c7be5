package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type AppCfg struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Port int    `mapstructure:"port"`
}

type LogCfg struct {
	Level string `mapstructure:"level"`
}

type DBCfg struct {
	DSN         string `mapstructure:"dsn"`
	EnableTLS   bool   `mapstructure:"enable_tls"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxIdle     int    `mapstructure:"max_idle"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisCfg struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	PoolSize  int    `mapstructure:"pool_size"`
	EnableTLS bool   `mapstructure:"enable_tls"`
}

type MQExchangeName struct {
	Report string `mapstructure:"report"`
}

type MQRoutingKey struct {
	ReportRecorded string `mapstructure:"report_recorded"`
}

type MQCfg struct {
	URL          string         `mapstructure:"url"`
	EnableTLS    bool           `mapstructure:"enable_tls"`
	ExchangeName MQExchangeName `mapstructure:"exchange_name"`
	RoutingKey   MQRoutingKey   `mapstructure:"routing_key"`
}

// RateLimitCfg bounds anonymous report submissions per remote address.
type RateLimitCfg struct {
	Enabled   bool `mapstructure:"enabled"`
	Requests  int  `mapstructure:"requests"`
	WindowSec int  `mapstructure:"window_sec"`
}

type RootCfg struct {
	OperatorTokenPrefix      string `mapstructure:"operator_token_prefix"`
	SecretPepper             string `mapstructure:"secret_pepper"`
	AdminName                string `mapstructure:"admin_name"`
	AdminToken               string `mapstructure:"admin_token"`
	EnableArgon2Verification bool   `mapstructure:"enable_argon2_verification"`
}

type TelemetryCfg struct {
	Enabled      bool    `mapstructure:"enabled"`
	OtlpEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
	// MetricsIntervalSec is how often counters are pushed to the collector.
	MetricsIntervalSec int `mapstructure:"metrics_interval_sec"`
}

type Config struct {
	App       AppCfg       `mapstructure:"app"`
	Log       LogCfg       `mapstructure:"log"`
	Database  DBCfg        `mapstructure:"database"`
	Redis     RedisCfg     `mapstructure:"redis"`
	RabbitMQ  MQCfg        `mapstructure:"rabbitmq"`
	RateLimit RateLimitCfg `mapstructure:"ratelimit"`
	Root      RootCfg      `mapstructure:"root"`
	Telemetry TelemetryCfg `mapstructure:"telemetry"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "bugreports")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", 8029)
	v.SetDefault("log.level", "info")

	v.SetDefault("database.dsn", "host=localhost user=bugreports password=bugreports dbname=bugreports port=5432 sslmode=disable")
	v.SetDefault("database.max_open", 20)
	v.SetDefault("database.max_idle", 5)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("database.enable_tls", false)

	// empty addr disables redis and with it the intake rate limiter
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.enable_tls", false)

	// empty url disables report events
	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("rabbitmq.enable_tls", false)

	v.SetDefault("rabbitmq.exchange_name.report", "bugreports.report")
	v.SetDefault("rabbitmq.routing_key.report_recorded", "report.recorded")

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.requests", 60)
	v.SetDefault("ratelimit.window_sec", 60)

	v.SetDefault("root.operator_token_prefix", "br-")
	v.SetDefault("root.secret_pepper", "")
	v.SetDefault("root.admin_name", "root")
	v.SetDefault("root.admin_token", "")
	v.SetDefault("root.enable_argon2_verification", true)

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.otlp_endpoint", "")
	v.SetDefault("telemetry.sample_ratio", 1.0)
	v.SetDefault("telemetry.metrics_interval_sec", 10)
}

// Load reads config.yaml (current dir, ./configs or $BUGREPORTS_CONFIG) and
// applies BUGREPORTS_* environment overrides, e.g. BUGREPORTS_DATABASE_DSN.
// A missing config file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path := os.Getenv("BUGREPORTS_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix("BUGREPORTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("config: app.port out of range: %d", c.App.Port)
	}
	if c.Database.DSN == "" {
		return errors.New("config: database.dsn must be set")
	}
	if c.Root.OperatorTokenPrefix == "" {
		return errors.New("config: root.operator_token_prefix must be set")
	}
	if c.Root.AdminToken != "" && !strings.HasPrefix(c.Root.AdminToken, c.Root.OperatorTokenPrefix) {
		return fmt.Errorf("config: root.admin_token must start with %q", c.Root.OperatorTokenPrefix)
	}
	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.WindowSec <= 0) {
		return errors.New("config: ratelimit.requests and ratelimit.window_sec must be positive")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

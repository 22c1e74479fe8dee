package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Redis    *RedisConfig    `mapstructure:"redis"`
	Kafka    *KafkaConfig    `mapstructure:"kafka"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	Port               string   `mapstructure:"port"`
	BaseURL            string   `mapstructure:"base_url"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"ssl_mode"`

	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.Host, c.Port, c.User, c.Password, c.DB, c.SSLMode,
	)
}

// RedisConfig enables the stock cache when URL is set.
type RedisConfig struct {
	URL        string        `mapstructure:"url"`
	Sentinels  []string      `mapstructure:"sentinels"`
	MasterName string        `mapstructure:"master_name"`
	StockTTL   time.Duration `mapstructure:"stock_ttl"`
}

// KafkaConfig enables stock event publishing when Brokers is set.
type KafkaConfig struct {
	Brokers  []string `mapstructure:"brokers"`
	Topic    string   `mapstructure:"topic"`
	Username string   `mapstructure:"username"`
	Password string   `mapstructure:"password"`
	CACert   string   `mapstructure:"ca_cert"`
}

// Load reads the YAML file at path. Environment variables override file
// values, with dots replaced by underscores (API_PORT, POSTGRES_HOST, ...).
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		zap.L().Warn("config file changed, restart to apply",
			zap.String("file", e.Name),
			zap.String("op", e.Op.String()),
		)
	})
	v.WatchConfig()

	return conf, nil
}

func (c *AppConfig) validate() error {
	switch {
	case c.API == nil:
		return fmt.Errorf("missing api section")
	case c.Gin == nil:
		return fmt.Errorf("missing gin section")
	case c.Postgres == nil:
		return fmt.Errorf("missing postgres section")
	}

	if c.Redis == nil {
		c.Redis = &RedisConfig{}
	}
	if c.Kafka == nil {
		c.Kafka = &KafkaConfig{}
	}

	return nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
api:
  environment: development
  port: "8080"
  base_url: localhost:8080
  allowed_cors_domains:
    - http://localhost:3000
gin:
  mode: debug
postgres:
  host: localhost
  port: "5432"
  user: ledger
  password: secret
  db: ledger
  ssl_mode: disable
  max_open_conns: 25
  max_idle_conns: 10
  conn_max_lifetime: 5m
redis:
  url: ""
  stock_ttl: 30s
kafka:
  brokers: []
  topic: stock-events
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	conf, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "8080", conf.API.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, conf.API.AllowedCORSDomains)
	assert.Equal(t, "debug", conf.Gin.Mode)
	assert.Equal(t, 5*time.Minute, conf.Postgres.ConnMaxLifetime)
	assert.Equal(t, 30*time.Second, conf.Redis.StockTTL)
	assert.Equal(t, "stock-events", conf.Kafka.Topic)
	assert.Empty(t, conf.Kafka.Brokers)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("POSTGRES_HOST", "db.internal")

	conf, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "9090", conf.API.Port)
	assert.Equal(t, "db.internal", conf.Postgres.Host)
}

func TestLoad_MissingSection(t *testing.T) {
	_, err := Load(writeConfig(t, "api:\n  port: \"8080\"\n"))

	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))

	assert.Error(t, err)
}

func TestPostgresConfig_DSN(t *testing.T) {
	c := PostgresConfig{Host: "h", Port: "5432", User: "u", Password: "p", DB: "d", SSLMode: "disable"}

	assert.Equal(t, "host=h port=5432 user=u password=p dbname=d sslmode=disable TimeZone=UTC", c.DSN())
}

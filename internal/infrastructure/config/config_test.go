package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sales-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, TransportRedis, cfg.Replication.Transport)
	assert.Equal(t, "replication:products", cfg.Replication.ProductsStream)
	assert.Equal(t, 3, cfg.Replication.MaxAttempts)
	assert.Equal(t, 5*time.Second, cfg.Replication.InitialBackoff)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SALES_REDIS_HOST", "redis.internal")
	t.Setenv("SALES_REPLICATION_MAX_ATTEMPTS", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "redis.internal", cfg.Redis.Host)
	assert.Equal(t, 7, cfg.Replication.MaxAttempts)
}

func TestValidateRejectsUnknownTransport(t *testing.T) {
	t.Setenv("SALES_REPLICATION_TRANSPORT", "kafka")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "replication.transport")
}

func TestValidateAWSTransportNeedsTopic(t *testing.T) {
	t.Setenv("SALES_REPLICATION_TRANSPORT", "aws")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "products_topic_arn")
}

func TestDatabaseDSNEscapesCredentials(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "sales",
		Password: "p@ss/word",
		DBName:   "sales",
		SSLMode:  "require",
	}

	dsn := d.DSN()

	assert.Contains(t, dsn, "p%40ss%2Fword")
	assert.Contains(t, dsn, "sslmode=require")
}

func TestRedisAddr(t *testing.T) {
	r := RedisConfig{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", r.Addr())
}

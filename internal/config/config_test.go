package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "users.db", cfg.DB.SQLitePath)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "8080", cfg.App.HTTPPort)
	assert.Equal(t, 10, cfg.App.ShutdownTimeoutSeconds)
	assert.Equal(t, []string{"*"}, cfg.App.CORSAllowedOrigins)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.InDelta(t, 10.0, cfg.RateLimit.RequestsPerSecond, 0.001)
	assert.Equal(t, 20, cfg.RateLimit.BurstCapacity)
	assert.Equal(t, "user-directory", cfg.Logger.ServiceName)

	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, http://b.example")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("RATE_LIMIT_ENABLED", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DriverMySQL, cfg.DB.Driver)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "3307", cfg.DB.Port)
	assert.Equal(t, "9000", cfg.App.HTTPPort)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.App.CORSAllowedOrigins)
	assert.True(t, cfg.Redis.Enabled)
	assert.True(t, cfg.RateLimit.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	content := "DB_DRIVER=postgres\nDB_NAME=users\nSTATIC_DIR=./dist\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, "users", cfg.DB.Name)
	assert.Equal(t, "./dist", cfg.App.StaticDir)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "unknown driver", mutate: func(c *Config) { c.DB.Driver = "oracle" }, wantErr: `unsupported DB_DRIVER "oracle"`},
		{name: "sqlite without path", mutate: func(c *Config) { c.DB.SQLitePath = "" }, wantErr: "DB_SQLITE_PATH"},
		{name: "mysql without host", mutate: func(c *Config) { c.DB.Driver = DriverMySQL; c.DB.Host = "" }, wantErr: "DB_HOST"},
		{name: "idle above open", mutate: func(c *Config) { c.DB.MaxIdleConns = c.DB.MaxOpenConns + 1 }, wantErr: "DB_MAX_IDLE_CONNS"},
		{name: "no port", mutate: func(c *Config) { c.App.HTTPPort = "" }, wantErr: "HTTP_PORT"},
		{name: "zero shutdown", mutate: func(c *Config) { c.App.ShutdownTimeoutSeconds = 0 }, wantErr: "SHUTDOWN_TIMEOUT_SECONDS"},
		{name: "rate limit without redis", mutate: func(c *Config) { c.RateLimit.Enabled = true }, wantErr: "requires REDIS_ENABLED"},
		{name: "redis zero ttl", mutate: func(c *Config) { c.Redis.Enabled = true; c.Redis.CacheTTL = 0 }, wantErr: "REDIS_CACHE_TTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	db := DatabaseConfig{
		Host:       "localhost",
		Port:       "3306",
		User:       "myuser",
		Password:   "secret",
		Name:       "mydb",
		SSLMode:    "disable",
		SQLitePath: "users.db",
	}

	db.Driver = DriverMySQL
	assert.Equal(t, "myuser:secret@tcp(localhost:3306)/mydb?charset=utf8mb4&parseTime=True&loc=UTC", db.DSN())
	assert.NotContains(t, db.Redacted(), "secret")

	db.Driver = DriverPostgres
	assert.Equal(t, "host=localhost user=myuser password=secret dbname=mydb port=3306 sslmode=disable", db.DSN())

	db.Driver = DriverSQLite
	assert.Equal(t, "users.db", db.DSN())
}

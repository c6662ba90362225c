package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg := fromViper(viper.New())

	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "inventario.db", cfg.DB.SQLitePath)
	assert.Equal(t, "pt-BR", cfg.App.Locale)
	assert.Equal(t, "BRL", cfg.App.Currency)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.False(t, cfg.Seed.OnStart)
	require.NoError(t, cfg.Validate())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("DB_DRIVER", "POSTGRES")
	v.Set("DB_PORT", "6543")
	v.Set("HTTP_PORT", "9090")
	v.Set("SEED_ON_START", "true")
	v.Set("JWT_EXPIRATION_MINUTES", "abc")

	cfg := fromViper(v)

	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Seed.OnStart)
	assert.Equal(t, 480, cfg.Auth.ExpirationMinutes)
}

func TestDSN_EscapesPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "pos", Password: "p@ss:word", DBName: "ventas", SSLMode: "disable"}
	assert.Equal(t, "postgres://pos:p%40ss%3Aword@db:5432/ventas?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := fromViper(viper.New())
	cfg.DB.Driver = "mysql"
	cfg.HTTP.Port = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mysql")
	assert.Contains(t, err.Error(), "HTTP_PORT")
}

package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("COSTING_DEFAULT_COST_RATIO", "0.6")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, decimal.NewFromFloat(0.6).Equal(cfg.Costing.DefaultCostRatio))
	assert.Equal(t, int64(10), cfg.Costing.DefaultReorderLevel)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestLoad_SQLiteYCosteo(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", ":memory:")
	t.Setenv("COSTING_DEFAULT_COST_RATIO", "0.55")
	t.Setenv("COSTING_DEFAULT_REORDER_LEVEL", "25")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, ":memory:", cfg.DB.SQLitePath)
	assert.True(t, decimal.RequireFromString("0.55").Equal(cfg.Costing.DefaultCostRatio))
	assert.Equal(t, int64(25), cfg.Costing.DefaultReorderLevel)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestLoad_RatioInvalido(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	for _, r := range []string{"0", "1.5", "abc", "-0.2"} {
		t.Setenv("COSTING_DEFAULT_COST_RATIO", r)
		_, err := Load()
		assert.Error(t, err, r)
	}
}

func TestLoad_DriverDesconocido(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("COSTING_DEFAULT_COST_RATIO", "0.6")
	_, err := Load()
	assert.Error(t, err)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "bb", Password: "p@ss:w/rd", DBName: "inv", SSLMode: "disable"}
	assert.Equal(t, "postgres://bb:p%40ss%3Aw%2Frd@db:5432/inv?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}

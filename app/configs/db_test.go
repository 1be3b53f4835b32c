package configs

import (
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMySQLDSN(t *testing.T) {
	dsn := MySQLDSN(ENV{DBUser: "shop", DBPassword: "p@ss:word", DBHost: "db", DBPort: "3306", DBName: "marketplace"})

	cfg, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "shop", cfg.User)
	assert.Equal(t, "p@ss:word", cfg.Passwd)
	assert.Equal(t, "db:3306", cfg.Addr)
	assert.Equal(t, "marketplace", cfg.DBName)
	assert.True(t, cfg.ParseTime)
	assert.Contains(t, dsn, "charset=utf8mb4")
}

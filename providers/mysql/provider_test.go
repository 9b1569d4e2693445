package mysql

import (
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Konsultn-Engineering/sqlfrag/connector"
)

func TestDSN(t *testing.T) {
	dsn := DSN(connector.Config{
		Driver:         Driver,
		Host:           "db.internal",
		Port:           3306,
		Database:       "locations",
		Username:       "app",
		Password:       "secret",
		ConnectTimeout: 5 * time.Second,
		Params:         map[string]string{"charset": "utf8mb4"},
	})

	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "app", parsed.User)
	assert.Equal(t, "secret", parsed.Passwd)
	assert.Equal(t, "tcp", parsed.Net)
	assert.Equal(t, "db.internal:3306", parsed.Addr)
	assert.Equal(t, "locations", parsed.DBName)
	assert.True(t, parsed.ParseTime)
	assert.Equal(t, 5*time.Second, parsed.Timeout)
	assert.Equal(t, "utf8mb4", parsed.Params["charset"])
}

func TestDSNOverride(t *testing.T) {
	assert.Equal(t, "u:p@tcp(h:1)/d", DSN(connector.Config{DSN: "u:p@tcp(h:1)/d", Host: "ignored"}))
}

func TestDialectIsUnnumbered(t *testing.T) {
	assert.False(t, (&Provider{}).Dialect().Numbered())
	assert.Contains(t, connector.Drivers(), Driver)
}

package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		name     string
		d        Dialect
		n        int
		expected string
		numbered bool
	}{
		{"postgres first", NewPostgresDialect(), 1, "$1", true},
		{"postgres multi digit", NewPostgresDialect(), 12, "$12", true},
		{"sqlite", NewSQLiteDialect(), 3, "?3", true},
		{"mysql", NewMySQLDialect(), 7, "?", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.d.Placeholder(tt.n))
			assert.Equal(t, tt.numbered, tt.d.Numbered())
		})
	}
}

func TestByName(t *testing.T) {
	for name, want := range map[string]string{
		"postgres": "postgres",
		"pgx":      "postgres",
		"pq":       "postgres",
		"mysql":    "mysql",
		"tidb":     "mysql",
		"sqlite":   "sqlite",
		"sqlite3":  "sqlite",
	} {
		d, ok := ByName(name)
		if assert.True(t, ok, name) {
			assert.Equal(t, want, d.Name())
		}
	}

	_, ok := ByName("oracle")
	assert.False(t, ok)
}

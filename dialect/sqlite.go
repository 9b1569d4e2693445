package dialect

import "strconv"

// SQLite uses the ?NNN form, which binds to parameter NNN and may repeat.
type SQLite struct{}

func NewSQLiteDialect() Dialect {
	return &SQLite{}
}

func (SQLite) Name() string { return "sqlite" }

func (SQLite) Placeholder(n int) string {
	return "?" + strconv.Itoa(n)
}

func (SQLite) Numbered() bool { return true }

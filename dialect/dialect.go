package dialect

// Dialect describes how a database spells positional placeholders.
type Dialect interface {
	Name() string
	// Placeholder returns the text for the n-th (1-based) bind parameter.
	Placeholder(n int) string
	// Numbered reports whether placeholders carry their index, so one
	// placeholder may be repeated to reuse a value.
	Numbered() bool
}

// ByName returns the dialect registered under name, or false.
func ByName(name string) (Dialect, bool) {
	switch name {
	case "postgres", "postgresql", "pgx", "pq":
		return NewPostgresDialect(), true
	case "mysql", "tidb", "mariadb":
		return NewMySQLDialect(), true
	case "sqlite", "sqlite3":
		return NewSQLiteDialect(), true
	default:
		return nil, false
	}
}

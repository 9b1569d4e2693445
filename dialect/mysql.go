package dialect

// MySQL binds strictly by position with '?', so a value referenced twice has
// to be bound twice.
type MySQL struct{}

func NewMySQLDialect() Dialect {
	return &MySQL{}
}

func (MySQL) Name() string { return "mysql" }

func (MySQL) Placeholder(n int) string {
	return "?"
}

func (MySQL) Numbered() bool { return false }

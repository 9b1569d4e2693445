package query

import (
	"strconv"
	"strings"
)

// Raw wraps SQL text that takes no parameters. Any token in sql makes the
// fragment fail validation when flattened.
func Raw(sql string) *Fragment {
	return &Fragment{sql: sql}
}

// Join places parts one after another separated by sep. Joining no parts
// gives an empty fragment.
func Join(sep string, parts ...*Fragment) (*Fragment, error) {
	return joinWrapped(sep, "", "", parts)
}

// And joins conditions with AND, parenthesising each one.
func And(parts ...*Fragment) (*Fragment, error) {
	return joinWrapped(" AND ", "(", ")", parts)
}

// Or joins conditions with OR, parenthesising each one.
func Or(parts ...*Fragment) (*Fragment, error) {
	return joinWrapped(" OR ", "(", ")", parts)
}

// Group wraps part in parentheses.
func Group(part *Fragment) (*Fragment, error) {
	return New("($1)", part)
}

func joinWrapped(sep, prefix, suffix string, parts []*Fragment) (*Fragment, error) {
	var sb strings.Builder
	params := make([]any, len(parts))
	for i, p := range parts {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(prefix)
		sb.WriteByte('$')
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString(suffix)
		params[i] = p
	}
	return New(sb.String(), params...)
}

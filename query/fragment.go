package query

// Fragment is an immutable piece of SQL text with positional tokens ($1, $2,
// ...) and the ordered parameters they refer to. A parameter may itself be a
// Fragment, in which case Flatten splices the child's SQL in at the token.
//
// Fragments are safe to share between goroutines and between parents.
type Fragment struct {
	sql    string
	params []Value
}

// New creates a Fragment. Each parameter must be one of the supported value
// types (see ValueOf); otherwise New returns a *ParameterTypeError naming the
// 1-based position.
//
// Token/parameter consistency is not checked here. It is checked by Flatten
// for every fragment in the tree, or up front with ValidateTokens.
func New(sql string, params ...any) (*Fragment, error) {
	values := make([]Value, len(params))
	for i, p := range params {
		v, err := ValueOf(p)
		if err != nil {
			if pe, ok := err.(*ParameterTypeError); ok {
				pe.Position = i + 1
			}
			return nil, err
		}
		values[i] = v
	}
	return &Fragment{sql: sql, params: values}, nil
}

// MustNew is like New but panics on error. Intended for package-level
// fragments built from literals.
func MustNew(sql string, params ...any) *Fragment {
	f, err := New(sql, params...)
	if err != nil {
		panic(err)
	}
	return f
}

// SQL returns the fragment's own text, tokens unresolved.
func (f *Fragment) SQL() string { return f.sql }

// Len returns the number of parameters.
func (f *Fragment) Len() int { return len(f.params) }

// Params returns a copy of the fragment's parameters.
func (f *Fragment) Params() []Value {
	out := make([]Value, len(f.params))
	copy(out, f.params)
	return out
}

// Param returns the parameter referenced by token $k.
func (f *Fragment) Param(k int) (Value, bool) {
	if k < 1 || k > len(f.params) {
		return Value{}, false
	}
	return f.params[k-1], true
}

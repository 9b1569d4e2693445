package query

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Konsultn-Engineering/sqlfrag/cache"
	"github.com/Konsultn-Engineering/sqlfrag/dialect"
)

// DefaultMaxDepth bounds how many levels of nested fragments Flatten follows
// below the root.
const DefaultMaxDepth = 64

// ErrNilFragment is returned when Flatten is given a nil root.
var ErrNilFragment = errors.New("nil fragment")

// Statement is a flattened fragment tree: one SQL string and the leaf
// parameters its placeholders refer to, in placeholder order. It shares no
// memory with the tree it came from.
type Statement struct {
	SQL    string
	Params []any
}

// CacheKey identifies a flattened statement in a Cache. The depth limit is
// part of the key because it decides whether a tree flattens at all.
type CacheKey struct {
	Fragment *Fragment
	Dialect  string
	MaxDepth int
}

// Cache stores flattened statements. Implementations must be safe for
// concurrent use; cache.StatementCache is one.
type Cache interface {
	Get(key CacheKey) (*cache.CachedStatement, bool)
	Add(key CacheKey, stmt *cache.CachedStatement)
}

// Flattener turns fragment trees into Statements for one dialect. The zero
// value is not usable; build one with NewFlattener. A Flattener holds no
// per-call state and may be shared.
type Flattener struct {
	dialect  dialect.Dialect
	maxDepth int
	cache    Cache
}

// Option configures a Flattener.
type Option func(*Flattener)

// WithDialect selects the placeholder style of the rendered SQL. Defaults to
// Postgres ($1, $2, ...).
func WithDialect(d dialect.Dialect) Option {
	return func(fl *Flattener) { fl.dialect = d }
}

// WithMaxDepth overrides DefaultMaxDepth. Values below zero are ignored.
func WithMaxDepth(n int) Option {
	return func(fl *Flattener) {
		if n >= 0 {
			fl.maxDepth = n
		}
	}
}

// WithCache memoizes successful flattens by root fragment. Fragments are
// immutable, so a cached root always flattens to the same statement.
func WithCache(c Cache) Option {
	return func(fl *Flattener) { fl.cache = c }
}

func NewFlattener(opts ...Option) *Flattener {
	fl := &Flattener{
		dialect:  dialect.NewPostgresDialect(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(fl)
	}
	return fl
}

// Dialect returns the dialect statements are rendered for.
func (fl *Flattener) Dialect() dialect.Dialect { return fl.dialect }

var defaultFlattener = NewFlattener()

// Flatten resolves every nested fragment under root and renumbers all tokens
// so the result uses $1..$M in order of first appearance, with Params holding
// exactly M values. Repeated tokens share one placeholder and one value.
//
// Every fragment in the tree is validated; the first problem aborts the call.
func Flatten(root *Fragment) (Statement, error) {
	return defaultFlattener.Flatten(root)
}

// Flatten is the package-level Flatten rendered for fl's dialect.
func (fl *Flattener) Flatten(root *Fragment) (Statement, error) {
	if root == nil {
		return Statement{}, ErrNilFragment
	}

	key := CacheKey{Fragment: root, Dialect: fl.dialect.Name(), MaxDepth: fl.maxDepth}
	if fl.cache != nil {
		if c, ok := fl.cache.Get(key); ok {
			return Statement{SQL: c.SQL, Params: cloneArgs(c.Args)}, nil
		}
	}

	st := &flattenState{
		maxDepth: fl.maxDepth,
		onStack:  make(map[*Fragment]struct{}),
		done:     make(map[*Fragment]*flatNode),
	}
	node, err := st.flatten(root, nil)
	if err != nil {
		return Statement{}, err
	}

	stmt := node.render(fl.dialect)
	if fl.cache != nil {
		fl.cache.Add(key, &cache.CachedStatement{SQL: stmt.SQL, Args: cloneArgs(stmt.Params)})
	}
	return stmt, nil
}

// piece is literal text, or when ph > 0 the ph-th placeholder of its node.
type piece struct {
	lit string
	ph  int
}

// flatNode is a fragment with all of its descendants spliced in. Placeholder
// numbers are local to the node; a parent shifts them by an offset when it
// splices the node in.
type flatNode struct {
	pieces []piece
	params []any
	height int
}

func (n *flatNode) appendLit(s string) {
	if s == "" {
		return
	}
	if last := len(n.pieces) - 1; last >= 0 && n.pieces[last].ph == 0 {
		n.pieces[last].lit += s
		return
	}
	n.pieces = append(n.pieces, piece{lit: s})
}

// fusesWith reports whether splicing next onto n would run a placeholder, or
// a literal '$', into leading digits of next and so form a different token.
func (n *flatNode) fusesWith(next *flatNode) bool {
	if len(next.pieces) == 0 || len(n.pieces) == 0 {
		return false
	}
	first := next.pieces[0]
	if first.ph != 0 || !isDigit(first.lit[0]) {
		return false
	}
	last := n.pieces[len(n.pieces)-1]
	return last.ph != 0 || last.lit[len(last.lit)-1] == '$'
}

type flattenState struct {
	maxDepth int
	onStack  map[*Fragment]struct{}
	done     map[*Fragment]*flatNode
}

func (st *flattenState) flatten(f *Fragment, path Path) (*flatNode, error) {
	if _, ok := st.onStack[f]; ok {
		return nil, &PathError{Path: path, Err: ErrCyclicFragmentReference}
	}
	if len(path) > st.maxDepth {
		return nil, &PathError{Path: path, Err: ErrMaxDepthExceeded}
	}
	// A fragment shared by several parents is flattened once per call.
	if n, ok := st.done[f]; ok {
		if len(path)+n.height > st.maxDepth {
			return nil, &PathError{Path: path, Err: ErrMaxDepthExceeded}
		}
		return n, nil
	}

	segs, err := parseTokens(path, f.sql, len(f.params))
	if err != nil {
		return nil, err
	}

	st.onStack[f] = struct{}{}
	defer delete(st.onStack, f)

	// Expansion of each parameter, indexed by token number.
	expansions := make([]*flatNode, len(f.params)+1)
	height := 0
	for i, v := range f.params {
		if v.kind != KindFragment {
			expansions[i+1] = &flatNode{
				pieces: []piece{{ph: 1}},
				params: []any{v.Interface()},
			}
			continue
		}
		child, err := st.flatten(v.val.(*Fragment), path.child(i+1))
		if err != nil {
			return nil, err
		}
		expansions[i+1] = child
		if child.height+1 > height {
			height = child.height + 1
		}
	}

	// Offsets are assigned on first appearance only; repeats reuse them.
	offsets := make([]int, len(f.params)+1)
	for i := range offsets {
		offsets[i] = -1
	}

	out := &flatNode{height: height}
	for _, s := range segs {
		if s.param == 0 {
			out.appendLit(s.lit)
			continue
		}
		exp := expansions[s.param]
		if out.fusesWith(exp) {
			return nil, &TokenError{Path: path, Reason: ReasonFusedToken, Token: "$" + strconv.Itoa(s.param), Index: s.param, Params: len(f.params)}
		}
		if offsets[s.param] < 0 {
			offsets[s.param] = len(out.params)
			out.params = append(out.params, exp.params...)
		}
		off := offsets[s.param]
		for _, p := range exp.pieces {
			if p.ph == 0 {
				out.appendLit(p.lit)
			} else {
				out.pieces = append(out.pieces, piece{ph: p.ph + off})
			}
		}
	}

	st.done[f] = out
	return out, nil
}

// render writes the node's final SQL. Numbered dialects reuse a placeholder
// for repeated references; for unnumbered ones ('?') the value is repeated
// once per occurrence instead.
func (n *flatNode) render(d dialect.Dialect) Statement {
	var sb strings.Builder
	if !d.Numbered() {
		params := make([]any, 0, len(n.params))
		for _, p := range n.pieces {
			if p.ph == 0 {
				sb.WriteString(p.lit)
				continue
			}
			sb.WriteString(d.Placeholder(len(params) + 1))
			params = append(params, n.params[p.ph-1])
		}
		return Statement{SQL: sb.String(), Params: params}
	}

	for _, p := range n.pieces {
		if p.ph == 0 {
			sb.WriteString(p.lit)
		} else {
			sb.WriteString(d.Placeholder(p.ph))
		}
	}
	return Statement{SQL: sb.String(), Params: cloneArgs(n.params)}
}

func cloneArgs(args []any) []any {
	out := make([]any, len(args))
	copy(out, args)
	return out
}

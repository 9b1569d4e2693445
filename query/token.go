package query

import (
	"strconv"
)

// segment is one run of a fragment's SQL text: either literal text or a
// reference to a 1-based parameter.
type segment struct {
	lit   string
	param int
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// parseTokens splits sql into segments and checks that the distinct tokens are
// exactly {1..n}. A token is '$' followed by the longest run of digits; a '$'
// without a digit after it is literal text. Token numbers must be written in
// canonical form, so $0 and $01 are rejected as malformed.
//
// The first malformed or out-of-range token (left to right) is reported
// before any unreferenced parameter.
func parseTokens(path Path, sql string, n int) ([]segment, error) {
	segs := make([]segment, 0, 2*n+1)
	used := make([]bool, n+1)

	start := 0
	for i := 0; i < len(sql); i++ {
		if sql[i] != '$' || i+1 >= len(sql) || !isDigit(sql[i+1]) {
			continue
		}
		j := i + 1
		for j < len(sql) && isDigit(sql[j]) {
			j++
		}
		raw := sql[i:j]

		if sql[i+1] == '0' {
			return nil, &TokenError{Path: path, Reason: ReasonMalformedToken, Token: raw, Params: n}
		}
		k, err := strconv.Atoi(raw[1:])
		if err != nil {
			return nil, &TokenError{Path: path, Reason: ReasonMalformedToken, Token: raw, Params: n}
		}
		if k > n {
			return nil, &TokenError{Path: path, Reason: ReasonUnknownParameter, Token: raw, Index: k, Params: n}
		}

		if i > start {
			segs = append(segs, segment{lit: sql[start:i]})
		}
		segs = append(segs, segment{param: k})
		used[k] = true
		start = j
		i = j - 1
	}
	if start < len(sql) {
		segs = append(segs, segment{lit: sql[start:]})
	}

	for k := 1; k <= n; k++ {
		if !used[k] {
			return nil, &TokenError{Path: path, Reason: ReasonUnusedParameter, Index: k, Params: n}
		}
	}
	return segs, nil
}

// ValidateTokens reports whether sql references exactly the parameters
// {1..n}. It applies the same rules Flatten applies to every fragment.
func ValidateTokens(sql string, n int) error {
	_, err := parseTokens(nil, sql, n)
	return err
}

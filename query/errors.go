package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnsupportedParameterType = errors.New("unsupported parameter type")
	ErrTokenCountMismatch       = errors.New("token count mismatch")
	ErrCyclicFragmentReference  = errors.New("cyclic fragment reference")
	ErrMaxDepthExceeded         = errors.New("max fragment depth exceeded")
)

// Path locates a fragment inside a tree: the 1-based parameter positions
// followed from the root. An empty Path is the root itself.
type Path []int

func (p Path) String() string {
	var sb strings.Builder
	sb.WriteString("root")
	for _, pos := range p {
		sb.WriteString(".$")
		sb.WriteString(strconv.Itoa(pos))
	}
	return sb.String()
}

func (p Path) child(pos int) Path {
	next := make(Path, len(p)+1)
	copy(next, p)
	next[len(p)] = pos
	return next
}

// ParameterTypeError is returned by New when a parameter is outside the
// supported value set.
type ParameterTypeError struct {
	Position int // 1-based
	Type     string
}

func (e *ParameterTypeError) Error() string {
	if e.Position == 0 {
		return fmt.Sprintf("%s: %s", ErrUnsupportedParameterType, e.Type)
	}
	return fmt.Sprintf("%s: parameter $%d has type %s", ErrUnsupportedParameterType, e.Position, e.Type)
}

func (e *ParameterTypeError) Unwrap() error { return ErrUnsupportedParameterType }

// MismatchReason says why a fragment's tokens disagree with its parameters.
type MismatchReason uint8

const (
	ReasonMalformedToken MismatchReason = iota + 1
	ReasonUnknownParameter
	ReasonUnusedParameter
	ReasonFusedToken
)

func (r MismatchReason) String() string {
	switch r {
	case ReasonMalformedToken:
		return "malformed token"
	case ReasonUnknownParameter:
		return "token references missing parameter"
	case ReasonUnusedParameter:
		return "parameter not referenced"
	case ReasonFusedToken:
		return "expansion fuses with preceding token"
	default:
		return "unknown"
	}
}

// TokenError reports the first token/parameter inconsistency found in one
// fragment of a tree.
type TokenError struct {
	Path   Path
	Reason MismatchReason
	Token  string // offending token text, empty for ReasonUnusedParameter
	Index  int    // token number or unused parameter position
	Params int    // number of parameters the fragment holds
}

func (e *TokenError) Error() string {
	switch e.Reason {
	case ReasonUnusedParameter:
		return fmt.Sprintf("%s at %s: %s: $%d of %d", ErrTokenCountMismatch, e.Path, e.Reason, e.Index, e.Params)
	case ReasonUnknownParameter:
		return fmt.Sprintf("%s at %s: %s: %s with %d parameter(s)", ErrTokenCountMismatch, e.Path, e.Reason, e.Token, e.Params)
	case ReasonFusedToken:
		return fmt.Sprintf("%s at %s: %s: %s", ErrTokenCountMismatch, e.Path, e.Reason, e.Token)
	default:
		return fmt.Sprintf("%s at %s: %s: %q", ErrTokenCountMismatch, e.Path, e.Reason, e.Token)
	}
}

func (e *TokenError) Unwrap() error { return ErrTokenCountMismatch }

// PathError wraps ErrCyclicFragmentReference and ErrMaxDepthExceeded with the
// location where flattening stopped.
type PathError struct {
	Path Path
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s at %s", e.Err, e.Path)
}

func (e *PathError) Unwrap() error { return e.Err }

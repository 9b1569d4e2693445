package query

import "fmt"

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindUnset
	KindString
	KindStrings
	KindNumber
	KindNumbers
	KindBool
	KindBinary
	KindFragment
)

var kindNames = [...]string{
	KindNull:     "null",
	KindUnset:    "unset",
	KindString:   "string",
	KindStrings:  "strings",
	KindNumber:   "number",
	KindNumbers:  "numbers",
	KindBool:     "bool",
	KindBinary:   "binary",
	KindFragment: "fragment",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

type unset struct{}

// Unset marks a parameter that was deliberately left without a value. Drivers
// receive it as nil.
var Unset = unset{}

// Value is a single fragment parameter. The zero Value is a null.
type Value struct {
	kind Kind
	val  any
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// Fragment returns the nested fragment, or nil when v is a leaf.
func (v Value) Fragment() *Fragment {
	if v.kind != KindFragment {
		return nil
	}
	return v.val.(*Fragment)
}

// Interface returns the value as handed to a driver. Null and unset both
// become nil; a fragment is returned as *Fragment.
func (v Value) Interface() any {
	switch v.kind {
	case KindNull, KindUnset:
		return nil
	default:
		return v.val
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNull, KindUnset:
		return v.kind.String()
	case KindFragment:
		return fmt.Sprintf("fragment(%q)", v.val.(*Fragment).sql)
	default:
		return fmt.Sprintf("%s(%v)", v.kind, v.val)
	}
}

// ValueOf classifies x into a Value. It fails with ErrUnsupportedParameterType
// for anything outside the supported set. The error position is left at zero;
// New fills it in.
func ValueOf(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Value{kind: KindNull}, nil
	case Value:
		return t, nil
	case unset:
		return Value{kind: KindUnset}, nil
	case string:
		return Value{kind: KindString, val: t}, nil
	case []string:
		return Value{kind: KindStrings, val: t}, nil
	case bool:
		return Value{kind: KindBool, val: t}, nil
	case []byte:
		return Value{kind: KindBinary, val: t}, nil
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return Value{kind: KindNumber, val: t}, nil
	case []int, []int8, []int16, []int32, []int64,
		[]uint, []uint16, []uint32, []uint64,
		[]float32, []float64:
		return Value{kind: KindNumbers, val: t}, nil
	case *Fragment:
		if t == nil {
			return Value{}, &ParameterTypeError{Type: "nil *query.Fragment"}
		}
		return Value{kind: KindFragment, val: t}, nil
	default:
		return Value{}, &ParameterTypeError{Type: fmt.Sprintf("%T", x)}
	}
}

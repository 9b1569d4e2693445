package query

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueOf(t *testing.T) {
	child := MustNew("a = $1", 1)

	tests := []struct {
		name     string
		input    any
		expected Kind
	}{
		{"nil", nil, KindNull},
		{"unset", Unset, KindUnset},
		{"string", "California", KindString},
		{"empty string", "", KindString},
		{"strings", []string{"a", "b"}, KindStrings},
		{"int", 42, KindNumber},
		{"int64", int64(-1), KindNumber},
		{"uint8", uint8(7), KindNumber},
		{"float64", 3.5, KindNumber},
		{"float32", float32(1.25), KindNumber},
		{"ints", []int{1, 2}, KindNumbers},
		{"int64s", []int64{1}, KindNumbers},
		{"float64s", []float64{0.5}, KindNumbers},
		{"bool", false, KindBool},
		{"binary", []byte{0xde, 0xad}, KindBinary},
		{"fragment", child, KindFragment},
		{"value passthrough", Value{kind: KindBool, val: true}, KindBool},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ValueOf(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v.Kind())
		})
	}
}

func TestValueOfRejectsUnsupportedTypes(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"time", time.Time{}, "time.Time"},
		{"map", map[string]any{}, "map[string]interface {}"},
		{"struct", struct{ A int }{1}, "struct { A int }"},
		{"string pointer", new(string), "*string"},
		{"nested slice", [][]string{{"a"}}, "[][]string"},
		{"bools", []bool{true}, "[]bool"},
		{"nil fragment", (*Fragment)(nil), "nil *query.Fragment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValueOf(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnsupportedParameterType))

			var pe *ParameterTypeError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.expected, pe.Type)
		})
	}
}

func TestValueInterface(t *testing.T) {
	child := MustNew("x")

	assert.Nil(t, Value{}.Interface())
	assert.Nil(t, mustValue(t, Unset).Interface())
	assert.Equal(t, "s", mustValue(t, "s").Interface())
	assert.Equal(t, []byte("b"), mustValue(t, []byte("b")).Interface())
	assert.Same(t, child, mustValue(t, child).Fragment())
	assert.Nil(t, mustValue(t, "s").Fragment())
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "null", Value{}.String())
	assert.Equal(t, "unset", mustValue(t, Unset).String())
	assert.Equal(t, "number(3)", mustValue(t, 3).String())
	assert.Equal(t, `fragment("a = $1")`, mustValue(t, MustNew("a = $1", 1)).String())
	assert.Equal(t, "Kind(200)", Kind(200).String())
}

func mustValue(t *testing.T, x any) Value {
	t.Helper()
	v, err := ValueOf(x)
	require.NoError(t, err)
	return v
}

package sexpr_test

import (
	"testing"

	"github.com/arloliu/sabdoc/sexpr"
	"github.com/stretchr/testify/require"
)

func TestParse_Atoms(t *testing.T) {
	require.Equal(t, int64(42), sexpr.Parse("42"))
	require.Equal(t, 3.5, sexpr.Parse("3.5"))
	require.Equal(t, "foo", sexpr.Parse("FOO"))
	require.Equal(t, "hello", sexpr.Parse(`"hello"`))
}

func TestParse_List(t *testing.T) {
	got := sexpr.Parse("(a b 1)")
	require.Equal(t, []any{"a", "b", int64(1)}, got)
}

func TestParse_DottedPair(t *testing.T) {
	got := sexpr.Parse("(a . b)")
	require.Equal(t, sexpr.Pair{Car: "a", Cdr: "b"}, got)
}

func TestParse_Nested(t *testing.T) {
	got := sexpr.Parse("(a (b c) d)")
	require.Equal(t, []any{"a", []any{"b", "c"}, "d"}, got)
}

func TestParse_Empty(t *testing.T) {
	require.Nil(t, sexpr.Parse(""))
}

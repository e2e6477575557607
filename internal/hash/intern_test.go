package hash_test

import (
	"testing"

	"github.com/arloliu/sabdoc/internal/hash"
	"github.com/stretchr/testify/require"
)

func TestInterner_DedupesEqualStrings(t *testing.T) {
	in := hash.NewInterner()
	a := in.Intern("symbolics-common-lisp:arglist")
	b := in.Intern("symbolics-common-lisp:arglist")
	require.Equal(t, a, b)
}

func TestInterner_DistinctStrings(t *testing.T) {
	in := hash.NewInterner()
	require.Equal(t, "function", in.Intern("function"))
	require.Equal(t, "variable", in.Intern("variable"))
}

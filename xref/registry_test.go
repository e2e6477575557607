package xref_test

import (
	"testing"

	"github.com/arloliu/sabdoc/xref"
	"github.com/stretchr/testify/require"
)

func TestGetHTMLPath(t *testing.T) {
	require.Equal(t, "functions/car.html", xref.GetHTMLPath("functions/car.sab"))
	require.Equal(t, "functions/car.html", xref.GetHTMLPath("functions/car.sab.~3~"))
	require.Equal(t, "functions/car.sab.~3~.html", xref.GetHTMLPath("functions/car.sab.~3~.html"))
}

func TestSlugify(t *testing.T) {
	require.Equal(t, "m-x-find-file", xref.Slugify("M-X Find File"))
	require.Equal(t, "section", xref.Slugify("*"))
	require.Equal(t, "car", xref.Slugify("car"))
}

func TestSlugify_Idempotent(t *testing.T) {
	once := xref.Slugify("M-X Find File")
	twice := xref.Slugify(once)
	require.Equal(t, once, twice)
}

func TestRegistry_ResolveByUniqueID(t *testing.T) {
	reg := xref.New()
	reg.ByID["42"] = xref.Target{RelPath: "functions/car.html", Topic: "car", Type: "function"}

	target, ok := reg.Resolve("42", "")
	require.True(t, ok)
	require.Equal(t, "functions/car.html", target.RelPath)
}

func TestRegistry_ResolveByUniqueIndexWhenIDMisses(t *testing.T) {
	reg := xref.New()
	reg.ByIndex[7] = xref.Target{RelPath: "functions/cdr.html", Topic: "cdr", Type: "function"}

	target, ok := reg.Resolve(int64(7), "")
	require.True(t, ok)
	require.Equal(t, "functions/cdr.html", target.RelPath)
}

func TestRegistry_ResolveByTopicNameCaseFallback(t *testing.T) {
	reg := xref.New()
	reg.ByName["CAR"] = xref.Target{RelPath: "functions/car.html", Topic: "CAR", Type: "function"}

	target, ok := reg.Resolve(nil, "car")
	require.True(t, ok)
	require.Equal(t, "functions/car.html", target.RelPath)
}

func TestRegistry_ResolveMiss(t *testing.T) {
	reg := xref.New()
	_, ok := reg.Resolve("missing", "also-missing")
	require.False(t, ok)
}

func TestRegistry_ResolvePrefersUniqueIDOverTopicFallback(t *testing.T) {
	reg := xref.New()
	reg.ByID["42"] = xref.Target{RelPath: "functions/car.html", Topic: "car", Type: "function"}
	reg.ByName["cdr"] = xref.Target{RelPath: "functions/cdr.html", Topic: "cdr", Type: "function"}

	target, ok := reg.Resolve("42", "cdr")
	require.True(t, ok)
	require.Equal(t, "functions/car.html", target.RelPath)
}

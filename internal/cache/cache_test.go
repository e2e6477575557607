package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/sabdoc/errs"
	"github.com/arloliu/sabdoc/internal/cache"
	"github.com/arloliu/sabdoc/sab"
	"github.com/arloliu/sabdoc/xref"
)

func buildRegistry() *xref.Registry {
	reg := xref.New()
	reg.ByID["42"] = xref.Target{RelPath: "functions/cdr.html", Topic: "cdr", Type: "function"}
	reg.ByIndex[7] = xref.Target{RelPath: "functions/car.html", Topic: "car", Type: "function"}
	reg.ByName["cons"] = xref.Target{RelPath: "functions/cons.html", Topic: "cons", Type: "function"}
	reg.Callees["42"] = []sab.Callee{
		{Topic: "cdr", Type: "function", CalledHow: "expand", CalleeUID: "42"},
	}

	return reg
}

func TestSaveLoad_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "registry.cache")

	reg := buildRegistry()
	require.NoError(t, cache.Save(path, reg))

	loaded, err := cache.Load(path)
	require.NoError(t, err)

	require.Equal(t, reg.ByID, loaded.ByID)
	require.Equal(t, reg.ByIndex, loaded.ByIndex)
	require.Equal(t, reg.ByName, loaded.ByName)
	require.Equal(t, reg.Callees, loaded.Callees)
}

func TestLoad_RejectsBadMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bogus.cache")
	require.NoError(t, os.WriteFile(path, []byte("nope"), 0o644))

	_, err := cache.Load(path)
	require.ErrorIs(t, err, errs.ErrInvalidCacheFile)
}

func TestLoad_RejectsBadVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "badversion.cache")

	reg := xref.New()
	require.NoError(t, cache.Save(path, reg))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	raw[len("SBCC")] = 0xff
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	_, err = cache.Load(path)
	require.ErrorIs(t, err, errs.ErrCacheVersion)
}

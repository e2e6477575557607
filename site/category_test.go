package site

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCategorize(t *testing.T) {
	cases := map[string]string{
		"doc/installed-442/clim/foo.sab.~1~": "doc/clim",
		"doc/cl/car.sab.~3~":                 "doc/cl",
		"doc/foo.sab.~1~":                    "doc/misc",
		"contributed/foo.sab.~1~":            "contributed",
		"onlyfile.sab":                       "other",
	}
	for path, want := range cases {
		require.Equal(t, want, categorize(path), path)
	}
}

func TestCategoryDisplayName_FallsBackToKey(t *testing.T) {
	require.Equal(t, "Common Lisp", categoryDisplayName("doc/cl"))
	require.Equal(t, "unknown/cat", categoryDisplayName("unknown/cat"))
}

func TestWriteIndexPage_SortsCategoriesAndLinks(t *testing.T) {
	dir := t.TempDir()
	categorized := map[string][]indexLink{
		"doc/cl": {
			{Title: "zoo", HTMLRel: "doc/cl/zoo.html"},
			{Title: "alpha", HTMLRel: "doc/cl/alpha.html"},
		},
	}
	report := Report{Converted: 2, Failed: 0, Elapsed: 2 * time.Second}

	require.NoError(t, writeIndexPage(dir, categorized, report))

	data, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	html := string(data)

	require.Contains(t, html, "Common Lisp (2)")
	require.Contains(t, html, `<a href="doc/cl/alpha.html">alpha</a>`)
	require.True(t,
		indexOf(html, "alpha.html") < indexOf(html, "zoo.html"),
		"alpha should sort before zoo",
	)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}

	return -1
}

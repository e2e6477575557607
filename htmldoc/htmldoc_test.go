package htmldoc_test

import (
	"strings"
	"testing"

	"github.com/arloliu/sabdoc/htmldoc"
	"github.com/arloliu/sabdoc/sab"
	"github.com/arloliu/sabdoc/xref"
	"github.com/stretchr/testify/require"
)

func TestRenderRecord_StructuralTypeUsesPlainHeading(t *testing.T) {
	rec := &sab.Record{Name: "Overview", Type: "section"}
	out := htmldoc.RenderRecord(rec, nil, "", "h1")
	require.Contains(t, out, `<section id="overview">`)
	require.Contains(t, out, "<h1>Overview</h1>")
	require.NotContains(t, out, "entry-heading")
}

func TestRenderRecord_EntryTypeGetsThreePartHeading(t *testing.T) {
	rec := &sab.Record{
		Name: sab.FunctionSpec{Name: "car"},
		Type: "function",
	}
	out := htmldoc.RenderRecord(rec, nil, "", "h1")
	require.Contains(t, out, `class="entry"`)
	require.Contains(t, out, `<span class="entry-name">car</span>`)
	require.Contains(t, out, `<span class="entry-type">Function</span>`)
}

func TestRenderRecord_ParagraphFixupWrapsInlineRunsAndSkipsBlockLevel(t *testing.T) {
	rec := &sab.Record{
		Name: "car",
		Type: "function",
		Fields: []sab.Field{
			{Name: "contents", Value: []any{
				"first",
				&sab.Envr{Name: "example", Contents: []any{"code here"}},
				"second",
			}},
		},
	}
	out := htmldoc.RenderRecord(rec, nil, "", "h1")
	require.Contains(t, out, "<p>first</p>")
	require.Contains(t, out, `<div class="example"><pre>code here</pre></div>`)
	require.Contains(t, out, "<p>second</p>")
}

func TestRenderRecord_CommandDispatchEmDashAndBlankspace(t *testing.T) {
	rec := &sab.Record{
		Name: "car",
		Type: "function",
		Fields: []sab.Field{
			{Name: "contents", Value: []any{
				&sab.Command{Name: "em"},
				&sab.Command{Name: "blankspace", Parameter: []any{[]any{int64(2), "lines"}}},
			}},
		},
	}
	out := htmldoc.RenderRecord(rec, nil, "", "h1")
	require.Contains(t, out, "—")
	require.Contains(t, out, `style="height: 2em;"`)
}

func TestRenderRecord_ReferenceInvisibleAppearanceEmitsNothing(t *testing.T) {
	rec := &sab.Record{
		Name: "car",
		Type: "function",
		Fields: []sab.Field{
			{Name: "contents", Value: []any{
				&sab.Reference{Topic: "cdr", Appearance: "invisible"},
			}},
		},
	}
	out := htmldoc.RenderRecord(rec, nil, "", "h1")
	require.NotContains(t, out, "cdr")
}

func TestRenderRecord_ReferenceTopicAppearanceResolvesHref(t *testing.T) {
	reg := xref.New()
	reg.ByName["cdr"] = xref.Target{RelPath: "functions/cdr.html", Topic: "cdr", Type: "function"}

	rec := &sab.Record{
		Name: "car",
		Type: "function",
		Fields: []sab.Field{
			{Name: "contents", Value: []any{
				&sab.Reference{Topic: "cdr", Appearance: "topic"},
			}},
		},
	}
	out := htmldoc.RenderRecord(rec, reg, "functions/car.html", "h1")
	require.Contains(t, out, `href="cdr.html#cdr"`)
}

func TestRenderRecord_ReferenceCalledHowExpandRendersBlockAnchor(t *testing.T) {
	reg := xref.New()
	reg.ByID["7"] = xref.Target{RelPath: "functions/cdr.html", Topic: "cdr", Type: "function"}

	rec := &sab.Record{
		Name:    "car",
		Type:    "function",
		Callees: map[string]sab.Callee{"7": {Topic: "cdr", Type: "function", CalledHow: "expand", CalleeUID: "7"}},
		Fields: []sab.Field{
			{Name: "contents", Value: []any{
				&sab.Reference{Topic: "cdr", UniqueID: "7"},
			}},
		},
	}
	out := htmldoc.RenderRecord(rec, reg, "functions/car.html", "h1")
	require.Contains(t, out, `ref-expand`)
}

func TestRenderRecord_PictureDecodeFailureDegradesToPlaceholder(t *testing.T) {
	rec := &sab.Record{
		Name: "diagram",
		Type: "section",
		Fields: []sab.Field{
			{Name: "contents", Value: []any{
				&sab.Picture{DisplayName: "diagram", Raw: []byte{0xff, 0xff}},
			}},
		},
	}
	out := htmldoc.RenderRecord(rec, nil, "", "h1")
	require.True(t, strings.Contains(out, "Picture: diagram (error:"))
}

func TestRenderPage_WrapsBodyInShell(t *testing.T) {
	file := &sab.File{
		Records: []*sab.Record{{Name: "Overview", Type: "section"}},
		Index:   []sab.IndexItem{{}},
	}
	out := htmldoc.RenderPage(file, nil, "index.html", "My Doc", htmldoc.PageAssets{
		CSSPath: "style.css", IndexPath: "index.html", LogoPath: "logo.png", SearchJSPath: "search.js",
	})
	require.Contains(t, out, "<title>My Doc</title>")
	require.Contains(t, out, `<section id="overview">`)
}

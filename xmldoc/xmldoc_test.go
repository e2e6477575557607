package xmldoc_test

import (
	"strings"
	"testing"

	"github.com/arloliu/sabdoc/genera"
	"github.com/arloliu/sabdoc/sab"
	"github.com/arloliu/sabdoc/xmldoc"
	"github.com/stretchr/testify/require"
)

func TestRender_EscapesIllegalCharacters(t *testing.T) {
	file := &sab.File{
		Records: []*sab.Record{
			{Name: "car", Type: "function", Fields: []sab.Field{
				{Name: "summary", Value: "bad\x01byte"},
			}},
		},
		Index: []sab.IndexItem{{}},
	}
	out := xmldoc.Render(file, "car.sab")
	require.Contains(t, out, "bad�byte")
	require.NotContains(t, out, "\x01")
}

func TestRender_SplitsParagraphAndLineBreaks(t *testing.T) {
	text := "one" + string(genera.ParagraphMarker) + "two" + string(genera.LineBreakMarker) + "three"
	file := &sab.File{
		Records: []*sab.Record{
			{Name: "car", Type: "function", Fields: []sab.Field{
				{Name: "body", Value: text},
			}},
		},
		Index: []sab.IndexItem{{}},
	}
	out := xmldoc.Render(file, "car.sab")
	require.Contains(t, out, "<para-break />")
	require.Contains(t, out, "<line-break />")
	require.Contains(t, out, "<text>one</text>")
	require.Contains(t, out, "<text>two</text>")
	require.Contains(t, out, "<text>three</text>")
}

func TestRender_RecordCarriesUniqueIDFromIndex(t *testing.T) {
	file := &sab.File{
		Records: []*sab.Record{
			{Name: "car", Type: "function"},
		},
		Index: []sab.IndexItem{
			{Topic: "car", Type: "function", Fields: []sab.Field{{Name: "unique-id", Value: "42"}}},
		},
	}
	out := xmldoc.Render(file, "car.sab")
	require.True(t, strings.Contains(out, `unique-id="42"`))
}

func TestRender_PictureDecodeFailureEmitsGraphicsError(t *testing.T) {
	file := &sab.File{
		Records: []*sab.Record{
			{Name: "diagram", Type: "section", Fields: []sab.Field{
				{Name: "picture", Value: &sab.Picture{Type: "picture", DisplayName: "diagram", Raw: []byte{0xff, 0xff, 0xff, 0xff}}},
			}},
		},
		Index: []sab.IndexItem{{}},
	}
	out := xmldoc.Render(file, "diagram.sab")
	require.Contains(t, out, "<graphics-error>")
}

func TestRender_CalleeListEmitsCalleeElements(t *testing.T) {
	file := &sab.File{
		Records: []*sab.Record{{Name: "car", Type: "function"}},
		Index: []sab.IndexItem{
			{Topic: "car", Type: "function", Fields: []sab.Field{
				{Name: "callee-list", Value: []sab.Callee{
					{Topic: "cdr", Type: "function", CalledHow: "topic", CalleeUID: "7"},
				}},
			}},
		},
	}
	out := xmldoc.Render(file, "car.sab")
	require.Contains(t, out, `<callee topic="cdr" type="function" called-how="topic" unique-id="7" />`)
}

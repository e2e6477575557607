package site

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/sabdoc/genera"
	"github.com/arloliu/sabdoc/sab"
)

func TestSearchEntriesForFile_StripsMarkersAndTruncates(t *testing.T) {
	longText := ""
	for i := 0; i < 350; i++ {
		longText += "x"
	}

	file := &sab.File{
		Records: []*sab.Record{
			{
				Name: sab.FunctionSpec{Name: "car"},
				Type: "function",
				Fields: []sab.Field{
					{Name: "contents", Value: []any{
						"first" + string(genera.ParagraphMarker) + "second",
						longText,
					}},
				},
			},
		},
	}

	entries := searchEntriesForFile(file, "functions/car.html", "functions/car.sab.~1~")
	require.Len(t, entries, 1)
	require.Equal(t, "car", entries[0].Title)
	require.Equal(t, "function", entries[0].Type)
	require.Equal(t, "functions/car.html", entries[0].Path)
	require.Len(t, entries[0].Text, searchSnippetLimit)
	require.Contains(t, entries[0].Text, "first")
}

func TestCollectText_RecursesThroughEnvrAndCommand(t *testing.T) {
	var out []string
	collectText(&sab.Envr{Name: "example", Contents: []any{
		"inside envr",
		&sab.Command{Name: "value", Parameter: "param text"},
	}}, &out)

	require.Contains(t, out, "inside envr")
	require.Contains(t, out, "param text")
}

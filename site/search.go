package site

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arloliu/sabdoc/genera"
	"github.com/arloliu/sabdoc/sab"
)

// searchSnippetLimit is the per-entry text truncation length, carried
// verbatim from site_generator.py's search entry shape.
const searchSnippetLimit = 300

// SearchEntry is one record's contribution to the flat search index
// (spec §4.11; site_generator.py's search_entries).
type SearchEntry struct {
	Title string `json:"title"`
	Type  string `json:"type"`
	Path  string `json:"path"`
	File  string `json:"file"`
	Text  string `json:"text"`
}

func searchEntriesForFile(file *sab.File, htmlRel, relPath string) []SearchEntry {
	entries := make([]SearchEntry, 0, len(file.Records))
	for _, rec := range file.Records {
		if rec == nil {
			continue
		}

		name := rec.Name
		if fs, ok := name.(sab.FunctionSpec); ok {
			name = fs.Name
		}

		text := extractText(rec)
		if len(text) > searchSnippetLimit {
			text = text[:searchSnippetLimit]
		}

		entries = append(entries, SearchEntry{
			Title: toString(name),
			Type:  rec.Type,
			Path:  htmlRel,
			File:  relPath,
			Text:  text,
		})
	}

	return entries
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if v == nil {
		return ""
	}

	return fmt.Sprintf("%v", v)
}

// extractText recursively collects plain text from a record's "contents"
// field, stripping paragraph/line-break sentinels, matching
// site_generator.py's _extract_text/_collect_text.
func extractText(rec *sab.Record) string {
	var parts []string
	for _, f := range rec.Fields {
		if f.Name == "contents" {
			collectText(f.Value, &parts)
		}
	}

	return strings.Join(parts, " ")
}

func collectText(v any, out *[]string) {
	switch t := v.(type) {
	case string:
		clean := strings.ReplaceAll(t, string(genera.ParagraphMarker), " ")
		clean = strings.ReplaceAll(clean, string(genera.LineBreakMarker), " ")
		clean = strings.TrimSpace(clean)
		if clean != "" {
			*out = append(*out, clean)
		}
	case []any:
		for _, item := range t {
			collectText(item, out)
		}
	case *sab.Envr:
		for _, item := range t.Contents {
			collectText(item, out)
		}
	case *sab.Command:
		if t.Parameter != nil {
			collectText(t.Parameter, out)
		}
	case *sab.Reference:
		if t.Field != nil {
			collectText(t.Field, out)
		}
	}
}

func writeSearchIndex(outputDir string, entries []SearchEntry) error {
	if entries == nil {
		entries = []SearchEntry{}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(outputDir, "search-index.json"), data, 0o644)
}

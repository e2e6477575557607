// Package xref builds the cross-reference registry that lets pass 2 resolve
// a record's callees and references against every other file in an archive
// (spec §4.8), without re-parsing record bodies.
package xref

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/arloliu/sabdoc/internal/hash"
	"github.com/arloliu/sabdoc/sab"
)

// Target is what a resolved reference points at: the rendered HTML page and
// the topic/type that page documents.
type Target struct {
	RelPath string // slash-separated path relative to the site root
	Topic   string
	Type    string
}

// Registry indexes every IndexItem of an archive by unique-id, unique-index,
// and topic name, plus the callee-list each item carries, so pass 2 can
// resolve references without touching record bodies again (spec §4.8).
type Registry struct {
	ByID    map[string]Target
	ByIndex map[int64]Target
	ByName  map[string]Target

	// Callees maps a unique-id (string form) to the callees declared by
	// that item's callee-4ple-list / callee-triple-list field, so a
	// record's "called-how" can be looked up by the callee's own id
	// during rendering (spec §4.10 reference-by-called-how).
	Callees map[string][]sab.Callee

	frozen bool
}

// Freeze marks the registry read-only. Pass 1 (ScanAll, or a cache.Load)
// populates the registry single-threaded; Freeze is called once pass 2's
// worker pool starts, documenting that every subsequent access is a read
// and the registry needs no further synchronization across workers.
func (reg *Registry) Freeze() {
	reg.frozen = true
}

// Frozen reports whether Freeze has been called.
func (reg *Registry) Frozen() bool {
	return reg.frozen
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		ByID:    make(map[string]Target),
		ByIndex: make(map[int64]Target),
		ByName:  make(map[string]Target),
		Callees: make(map[string][]sab.Callee),
	}
}

// ScanAll walks baseDir, index-scanning every file whose name contains
// ".sab." (spec §4.8 pass 1: "a fast index-only scan... over files whose
// name contains the sentinel infix"), and accumulates their index items
// into the registry. interner may be nil.
func (reg *Registry) ScanAll(baseDir string, interner *hash.Interner) error {
	return filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.Contains(d.Name(), ".sab.") {
			return nil
		}

		relPath, relErr := filepath.Rel(baseDir, path)
		if relErr != nil {
			relPath = path
		}

		if scanErr := reg.scanFile(relPath, path, interner); scanErr != nil {
			return fmt.Errorf("xref: scanning %s: %w", relPath, scanErr)
		}

		return nil
	})
}

// scanFile index-only-reads one archive member and merges its index items
// into the registry, keyed under the member's derived HTML path.
func (reg *Registry) scanFile(relPath, fullPath string, interner *hash.Interner) error {
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return err
	}

	idx, err := sab.ReadIndexOnly(data, interner)
	if err != nil {
		return err
	}

	htmlPath := filepath.ToSlash(GetHTMLPath(relPath))

	for _, item := range idx.Index {
		reg.addItem(htmlPath, item)
	}

	return nil
}

// addItem registers one index item's unique-id, unique-index, topic name,
// and callee-list under htmlPath.
func (reg *Registry) addItem(htmlPath string, item sab.IndexItem) {
	topic := topicString(item.Topic)
	target := Target{RelPath: htmlPath, Topic: topic, Type: item.Type}

	if v, ok := item.Field("unique-id"); ok {
		id := uniqueIDString(v)
		reg.ByID[id] = target

		if callees, ok := v2CalleeList(item); ok {
			reg.Callees[id] = callees
		}
	}

	if v, ok := item.Field("unique-index"); ok {
		if n, ok := asInt64(v); ok {
			reg.ByIndex[n] = target
		}
	}

	if topic != "" {
		reg.ByName[topic] = target
	}
}

func v2CalleeList(item sab.IndexItem) ([]sab.Callee, bool) {
	if v, ok := item.Field("callee-list"); ok {
		if callees, ok := v.([]sab.Callee); ok {
			return callees, true
		}
	}

	return nil, false
}

// Resolve implements the reference-resolution fallback chain (spec §4.8,
// richer than the Python original's exact-topic-only fallback): (1) exact
// unique-id string match, (2) if uniqueID is an integer, unique-index
// match, (3) topic-name match tried exact, then upper-cased, then
// lower-cased.
func (reg *Registry) Resolve(uniqueID any, topicName string) (Target, bool) {
	if uniqueID != nil {
		id := uniqueIDString(uniqueID)
		if t, ok := reg.ByID[id]; ok {
			return t, true
		}

		if n, ok := asInt64(uniqueID); ok {
			if t, ok := reg.ByIndex[n]; ok {
				return t, true
			}
		}
	}

	if topicName == "" {
		return Target{}, false
	}
	if t, ok := reg.ByName[topicName]; ok {
		return t, true
	}
	if t, ok := reg.ByName[strings.ToUpper(topicName)]; ok {
		return t, true
	}
	if t, ok := reg.ByName[strings.ToLower(topicName)]; ok {
		return t, true
	}

	return Target{}, false
}

func topicString(topic any) string {
	switch v := topic.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		if topic == nil {
			return ""
		}

		return fmt.Sprintf("%v", topic)
	}
}

func uniqueIDString(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case int64:
		return strconv.FormatInt(n, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)

		return parsed, err == nil
	default:
		return 0, false
	}
}

var versionSuffix = regexp.MustCompile(`\.~\d+~$`)

// GetHTMLPath derives the rendered page path for a SAB archive member: the
// Genera version suffix (".~<n>~") is stripped and a trailing ".sab" is
// replaced with ".html" (spec §4.8, grounded on cross_references.py's
// get_html_path).
func GetHTMLPath(relPath string) string {
	path := versionSuffix.ReplaceAllString(relPath, "")
	if strings.HasSuffix(path, ".sab") {
		path = strings.TrimSuffix(path, ".sab") + ".html"
	}

	return path
}

var slugNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a record's name/topic into a URL-safe, idempotent anchor
// id (spec §4.8/§4.10: lower-case, runs of non-[a-z0-9] collapse to a
// single "-", leading/trailing "-" trimmed, empty result becomes
// "section").
func Slugify(name string) string {
	lowered := strings.ToLower(name)
	slug := slugNonAlnum.ReplaceAllString(lowered, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "section"
	}

	return slug
}

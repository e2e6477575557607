package htmldoc

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/arloliu/sabdoc/sab"
)

// titleCaser renders a record's type symbol in the title case its entry
// heading label uses (e.g. "function" -> "Function").
var titleCaser = cases.Title(language.English)

// uniqueIDKey canonicalizes a unique-id value (string or int64, per
// sab.Reference.UniqueID / sab.Callee.CalleeUID) to the string form used as
// a map key, matching the registry's own ByID keying (xref.uniqueIDString).
func uniqueIDKey(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case int64:
		return strconv.FormatInt(n, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// stripPackagePrefix removes a Lisp package qualifier ("scl:string-nconc" ->
// "string-nconc"), splitting on the first colon; a leading colon (a
// keyword) is left untouched.
func stripPackagePrefix(name string) string {
	if strings.HasPrefix(name, ":") {
		return name
	}
	if idx := strings.Index(name, ":"); idx >= 0 {
		return name[idx+1:]
	}

	return name
}

// formatTypeLabel formats a record type symbol for display: the package
// prefix (if any, split on the last colon) is stripped and the remainder
// is title-cased.
func formatTypeLabel(recordType string) string {
	if recordType == "" {
		return ""
	}

	s := recordType
	if idx := strings.LastIndex(s, ":"); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSpace(s)

	return titleCaser.String(s)
}

func topicText(topic any) string {
	switch t := topic.(type) {
	case string:
		return t
	case sab.FunctionSpec:
		return t.Name
	default:
		if topic == nil {
			return ""
		}

		return fmt.Sprintf("%v", topic)
	}
}

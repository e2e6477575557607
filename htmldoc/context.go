// Package htmldoc renders parsed SAB records to HTML pages (spec §4.10):
// per-record sections, the environment/command dispatch tables, paragraph
// and tab-stop fix-up, reference resolution against the cross-reference
// registry, and embedded picture rendering.
package htmldoc

import (
	"github.com/arloliu/sabdoc/sab"
	"github.com/arloliu/sabdoc/xref"
)

// renderContext carries the state a content-list render needs beyond the
// item being rendered: the registry for link resolution, the HTML path of
// the page currently being built (for link relativization), and the record
// a reference's called-how lookup is scoped to.
type renderContext struct {
	registry    *xref.Registry
	currentFile string
	record      *sab.Record
}

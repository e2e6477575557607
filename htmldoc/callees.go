package htmldoc

import "github.com/arloliu/sabdoc/sab"

// SetupRecordCallees attaches the callee-list from a record's matching
// index item onto the record itself, keyed by the callee's unique id, so
// reference rendering can look up "called-how" without re-scanning the
// index (spec §4.10: "consult the current record's callees[unique_id]").
// Call this once per record before rendering, pairing each record with the
// index item at the same position (site §4.11 pass 2).
func SetupRecordCallees(rec *sab.Record, item *sab.IndexItem) {
	if item == nil {
		return
	}

	v, ok := item.Field("callee-list")
	if !ok {
		return
	}
	callees, ok := v.([]sab.Callee)
	if !ok {
		return
	}

	rec.Callees = make(map[string]sab.Callee, len(callees))
	for _, c := range callees {
		rec.Callees[uniqueIDKey(c.CalleeUID)] = c
	}
}

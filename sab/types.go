package sab

// FunctionSpec names a callable (function, generic function, macro) used as
// a record name (opcode 2: a function-spec wraps a short string).
type FunctionSpec struct {
	Name string
}

// Field is one (name, value) pair from a field-alist (opcode 3).
type Field struct {
	Name  string
	Value any
}

// Record is a single Sage documentation record (opcode 0): a name (string or
// FunctionSpec), a type symbol, and an ordered field list. Apart from
// Callees, a record is not modified after ReadFile returns it.
type Record struct {
	Name   any
	Type   string
	Fields []Field

	// Callees is populated from the callee-list of the record's matching
	// index item (htmldoc.SetupRecordCallees) during HTML rendering; it is
	// not set by the SAB reader.
	Callees map[string]Callee
}

// Field looks up a field by name, returning (value, true) if present.
func (r *Record) Field(name string) (any, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}

	return nil, false
}

// Callee is one entry of a callee-4ple-list / legacy callee-triple-list
// (opcodes 39, 29): a record r references CalleeUID via CalledHow.
type Callee struct {
	Topic     any
	Type      string
	CalledHow string
	CalleeUID any // zero value for the legacy 3-tuple form
}

// Envr is a named, moddable container of nested content (opcode 5).
type Envr struct {
	Name     string
	Mods     []Field
	Contents []any
}

// Command is a named operation with an optional parameter tree (opcodes
// 20, 21, 24).
type Command struct {
	Name      string
	Parameter any
}

// Reference is a cross-link (opcodes 33, 43, 44). Booleans holds flags such
// as "initial-cap" and "final-period"; Appearance drives rendering mode
// ("invisible" | "topic" | "see" | "" for default).
type Reference struct {
	Topic      any
	Type       string
	UniqueID   any // string or int64
	View       any
	Appearance string
	Booleans   []string
	Field      any
}

// Picture is an embedded binary graphics blob (opcode 40). Raw feeds the
// graphics decoder lazily; the SAB reader never interprets it.
type Picture struct {
	Type        string
	FileName    any
	DisplayName string
	Raw         []byte
}

// ExampleRecordMarker is a typed separator (opcode 42).
type ExampleRecordMarker struct {
	Type     any
	Encoding any
}

// IndexItem is one entry of the index section (opcode 30): a directory
// entry (topic, type) plus an ordered field list, the same field-name/value
// shape as a record's field-alist.
type IndexItem struct {
	Topic  any
	Type   string
	Fields []Field
}

// Field looks up a field by name, returning (value, true) if present.
func (it *IndexItem) Field(name string) (any, bool) {
	for _, f := range it.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}

	return nil, false
}

// LocationPair is a (line, column)-shaped pair of fixnums (opcode 27).
type LocationPair struct {
	A, B int64
}

// FileHeader is the fixed-layout prefix of a SAB file (spec §4.4, §6):
// id-pattern and version are validated by readHeaderAndAttributes; the two section
// offsets delimit the records section [RecordsOffset, IndexOffset).
type FileHeader struct {
	RecordsOffset uint32
	IndexOffset   uint32
}

// File is the full decode of one SAB archive member (spec §4.4): file
// attributes, every record in the records section, and the index section.
type File struct {
	Header         FileHeader
	FileAttributes []Field
	Records        []*Record
	Index          []IndexItem
}

// IndexOnly is the result of the pass-1 fast path (spec §4.4 "Index-only
// fast path"): file attributes and the index section only, skipping every
// record body.
type IndexOnly struct {
	Header         FileHeader
	FileAttributes []Field
	Index          []IndexItem
}

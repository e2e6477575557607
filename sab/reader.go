package sab

import (
	"fmt"

	"github.com/arloliu/sabdoc/errs"
	"github.com/arloliu/sabdoc/genera"
	"github.com/arloliu/sabdoc/internal/hash"
	"github.com/arloliu/sabdoc/sabstream"
	"github.com/arloliu/sabdoc/sexpr"
)

// nilSymbols are the Lisp nil spellings a symbol can resolve to; several
// opcodes normalize a nil symbol value to an empty list (spec §4.4, opcodes
// 21, 33, 43, 44).
var nilSymbols = map[string]struct{}{
	"lisp:nil":        {},
	"common-lisp:nil": {},
}

func isNilSymbol(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	_, isNil := nilSymbols[s]

	return isNil
}

// normalizeNil replaces a nil symbol with an empty list, leaving every
// other value untouched.
func normalizeNil(v any) any {
	if isNilSymbol(v) {
		return []any{}
	}

	return v
}

// Reader decodes SAB-encoded things from a byte stream. A Reader owns the
// SymbolTable current for whatever section it is reading; callers start a
// fresh section with BeginSection before reading file attributes, a
// record, or the index (spec §3, §4.4).
type Reader struct {
	stream   *sabstream.Stream
	table    *SymbolTable
	interner *hash.Interner
}

// NewReader wraps data for SAB decoding. interner may be nil.
func NewReader(data []byte, interner *hash.Interner) *Reader {
	r := &Reader{stream: sabstream.New(data), interner: interner}
	r.BeginSection()

	return r
}

// BeginSection starts a fresh, empty SymbolTable, as required at the start
// of the file-attribute-alist, each record, and the index (spec §3).
func (r *Reader) BeginSection() {
	r.table = NewSymbolTable(r.interner)
}

// Offset reports the reader's current byte position.
func (r *Reader) Offset() int { return r.stream.Offset() }

// EOF reports whether the stream is exhausted.
func (r *Reader) EOF() bool { return r.stream.EOF() }

// Seek moves the reader's cursor to an absolute byte position.
func (r *Reader) Seek(pos int) error { return r.stream.Seek(pos) }

// ReadU32LE exposes the underlying stream's fixed-width reads for the file
// layout parser (header offsets are not SAB "things").
func (r *Reader) ReadU32LE() (uint32, error) { return r.stream.ReadU32LE() }

// ReadU8 exposes the underlying stream's byte read for the file header.
func (r *Reader) ReadU8() (byte, error) { return r.stream.ReadU8() }

// ReadThing reads one SAB-encoded value with no opcode constraint.
func (r *Reader) ReadThing() (any, error) {
	offset := r.stream.Offset()
	b, err := r.stream.ReadU8()
	if err != nil {
		return nil, errs.Decode(offset, "", err)
	}

	return r.dispatch(Opcode(b), offset)
}

// ReadExpected reads one SAB-encoded value and fails with
// errs.ErrOpcodeMismatch unless its opcode equals expected.
func (r *Reader) ReadExpected(expected Opcode) (any, error) {
	offset := r.stream.Offset()
	b, err := r.stream.ReadU8()
	if err != nil {
		return nil, errs.Decode(offset, expected.Name(), err)
	}
	op := Opcode(b)
	if op != expected {
		return nil, errs.Decode(offset, op.Name(), fmt.Errorf("%w: got %s (%d), want %s (%d)",
			errs.ErrOpcodeMismatch, op.Name(), op, expected.Name(), expected))
	}

	return r.dispatch(op, offset)
}

func asString(label string, offset int, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errs.Decode(offset, label, errs.ErrUnexpectedValueType)
	}

	return s, nil
}

// readSymbolString reads an unconstrained thing and requires it resolve to
// a string (a symbol reference, symbol definition, or plain string).
func (r *Reader) readSymbolString() (string, error) {
	offset := r.stream.Offset()
	v, err := r.ReadThing()
	if err != nil {
		return "", err
	}

	return asString("symbol", offset, v)
}

// readShortString reads a u8-length-prefixed Latin-1 string inline,
// without an enclosing opcode byte: the representation shared by
// function-spec (2), the symbol-definition opcodes (15-18, 32), a
// picture's display-name (40), and character (45).
func (r *Reader) readShortString() (string, error) {
	n, err := r.stream.ReadU8()
	if err != nil {
		return "", err
	}
	raw, err := r.stream.ReadBytes(int(n))
	if err != nil {
		return "", err
	}

	return genera.RecodeShort(raw)
}

func (r *Reader) readFieldAlist() ([]Field, error) {
	count, err := r.stream.ReadU16LE()
	if err != nil {
		return nil, err
	}
	fields := make([]Field, 0, count)
	for i := 0; i < int(count); i++ {
		fn, err := r.readExpectedFieldName()
		if err != nil {
			return nil, err
		}
		value, err := r.ReadExpected(fn.ExpectedOp)
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{Name: fn.Name, Value: value})
	}

	return fields, nil
}

// readExpectedFieldName consumes an opcode-4 field-name.
func (r *Reader) readExpectedFieldName() (fieldNameResult, error) {
	v, err := r.ReadExpected(OpFieldName)
	if err != nil {
		return fieldNameResult{}, err
	}

	return v.(fieldNameResult), nil
}

// decodeFieldName implements opcode 4's payload: read a symbol, look it up
// in the fixed field-name table, and return the opcode its value must
// carry. Called from dispatch once the opcode-4 byte itself has already
// been consumed.
func (r *Reader) decodeFieldName() (fieldNameResult, error) {
	offset := r.stream.Offset()
	name, err := r.readSymbolString()
	if err != nil {
		return fieldNameResult{}, err
	}
	expectedOp, ok := fieldExpectedOpcode[name]
	if !ok {
		return fieldNameResult{}, errs.Decode(offset, OpFieldName.Name(),
			fmt.Errorf("%w: %q", errs.ErrUnknownField, name))
	}

	return fieldNameResult{Name: name, ExpectedOp: expectedOp}, nil
}

func (r *Reader) readEnvrMods() ([]Field, error) {
	count, err := r.stream.ReadU16LE()
	if err != nil {
		return nil, err
	}
	mods := make([]Field, 0, count)
	for i := 0; i < int(count); i++ {
		offset := r.stream.Offset()
		nameAny, err := r.ReadExpected(OpAttributeName)
		if err != nil {
			return nil, err
		}
		name, err := asString(OpAttributeName.Name(), offset, nameAny)
		if err != nil {
			return nil, err
		}
		value, err := r.ReadThing()
		if err != nil {
			return nil, err
		}
		mods = append(mods, Field{Name: name, Value: value})
	}

	return mods, nil
}

func (r *Reader) readThingList() ([]any, error) {
	count, err := r.stream.ReadU16LE()
	if err != nil {
		return nil, err
	}
	items := make([]any, 0, count)
	for i := 0; i < int(count); i++ {
		v, err := r.ReadThing()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}

	return items, nil
}

func (r *Reader) readCalleeTripleList() ([]Callee, error) {
	count, err := r.stream.ReadU16LE()
	if err != nil {
		return nil, err
	}
	callees := make([]Callee, 0, count)
	for i := 0; i < int(count); i++ {
		topic, err := r.ReadThing()
		if err != nil {
			return nil, err
		}
		typ, err := r.readSymbolString()
		if err != nil {
			return nil, err
		}
		calledHow, err := r.readSymbolString()
		if err != nil {
			return nil, err
		}
		callees = append(callees, Callee{Topic: topic, Type: typ, CalledHow: calledHow})
	}

	return callees, nil
}

func (r *Reader) readCallee4pleList() ([]Callee, error) {
	count, err := r.stream.ReadU16LE()
	if err != nil {
		return nil, err
	}
	callees := make([]Callee, 0, count)
	for i := 0; i < int(count); i++ {
		topic, err := r.ReadThing()
		if err != nil {
			return nil, err
		}
		typ, err := r.readSymbolString()
		if err != nil {
			return nil, err
		}
		calledHow, err := r.readSymbolString()
		if err != nil {
			return nil, err
		}
		uid, err := r.ReadThing()
		if err != nil {
			return nil, err
		}
		callees = append(callees, Callee{Topic: topic, Type: typ, CalledHow: calledHow, CalleeUID: uid})
	}

	return callees, nil
}

func (r *Reader) readIndexItem() (IndexItem, error) {
	topic, err := r.ReadThing()
	if err != nil {
		return IndexItem{}, err
	}
	typ, err := r.readSymbolString()
	if err != nil {
		return IndexItem{}, err
	}
	count, err := r.stream.ReadU16LE()
	if err != nil {
		return IndexItem{}, err
	}
	fields := make([]Field, 0, count)
	for i := 0; i < int(count); i++ {
		fn, err := r.readExpectedFieldName()
		if err != nil {
			return IndexItem{}, err
		}
		value, err := r.ReadExpected(fn.ExpectedOp)
		if err != nil {
			return IndexItem{}, err
		}
		fields = append(fields, Field{Name: fn.Name, Value: value})
	}

	return IndexItem{Topic: topic, Type: typ, Fields: fields}, nil
}

func (r *Reader) readIndex() ([]IndexItem, error) {
	count, err := r.stream.ReadU32LE()
	if err != nil {
		return nil, err
	}
	items := make([]IndexItem, 0, count)
	for i := uint32(0); i < count; i++ {
		v, err := r.ReadExpected(OpIndexItem)
		if err != nil {
			return nil, err
		}
		items = append(items, v.(IndexItem))
	}

	return items, nil
}

// dispatch implements the 46-entry opcode table (spec §4.4). op has
// already been consumed from the stream at offset.
func (r *Reader) dispatch(op Opcode, offset int) (any, error) {
	switch op {
	case OpRecord:
		name, err := r.ReadThing()
		if err != nil {
			return nil, err
		}
		typOffset := r.stream.Offset()
		typAny, err := r.ReadExpected(OpTypeSymbol)
		if err != nil {
			return nil, err
		}
		typ, err := asString(OpTypeSymbol.Name(), typOffset, typAny)
		if err != nil {
			return nil, err
		}
		fieldsAny, err := r.ReadExpected(OpFieldAlist)
		if err != nil {
			return nil, err
		}

		return &Record{Name: name, Type: typ, Fields: fieldsAny.([]Field)}, nil

	case OpTypeSymbol, OpEnvrName, OpAttributeName, OpSimpleCommandName,
		OpCommandName, OpMacroName, OpMacroArglist, OpFileAttributeAlist,
		OpUniqueID, OpModificationHistory, OpTokenList:
		return r.ReadThing()

	case OpFunctionSpec:
		name, err := r.readShortString()
		if err != nil {
			return nil, err
		}

		return FunctionSpec{Name: name}, nil

	case OpFieldAlist:
		return r.readFieldAlist()

	case OpFieldName:
		return r.decodeFieldName()

	case OpEnvr:
		name, err := r.readSymbolString()
		if err != nil {
			return nil, err
		}
		modsAny, err := r.ReadExpected(OpEnvrMods)
		if err != nil {
			return nil, err
		}
		contentsAny, err := r.ReadExpected(OpContentsList)
		if err != nil {
			return nil, err
		}

		return &Envr{Name: name, Mods: modsAny.([]Field), Contents: contentsAny.([]any)}, nil

	case OpEnvrMods:
		return r.readEnvrMods()

	case OpContentsList, OpList:
		return r.readThingList()

	case OpFixnum:
		v, err := r.stream.ReadU32LE()
		if err != nil {
			return nil, err
		}

		return int64(v), nil

	case OpString:
		n, err := r.stream.ReadU8()
		if err != nil {
			return nil, err
		}
		raw, err := r.stream.ReadBytes(int(n))
		if err != nil {
			return nil, err
		}

		return genera.RecodeShort(raw)

	case OpLongString:
		n, err := r.stream.ReadU32LE()
		if err != nil {
			return nil, err
		}
		raw, err := r.stream.ReadBytes(int(n))
		if err != nil {
			return nil, err
		}

		return genera.RecodeLong(raw)

	case OpSymbolRef:
		idx, err := r.stream.ReadU16LE()
		if err != nil {
			return nil, err
		}

		return r.table.Resolve(idx)

	case OpUninternedSymbolDef, OpSagePkgSymbolDef, OpPkgSymbolDef,
		OpDocPkgSymbolDef, OpKeywordPkgSymbolDef:
		name, err := r.readShortString()
		if err != nil {
			return nil, err
		}

		return r.table.define(op, name), nil

	case OpReadFromString:
		s, err := r.readSymbolString()
		if err != nil {
			return nil, err
		}

		return sexpr.Parse(s), nil

	case OpSimpleCommand:
		nameOffset := r.stream.Offset()
		nameAny, err := r.ReadExpected(OpSimpleCommandName)
		if err != nil {
			return nil, err
		}
		name, err := asString(OpSimpleCommandName.Name(), nameOffset, nameAny)
		if err != nil {
			return nil, err
		}

		return &Command{Name: name}, nil

	case OpCommand:
		nameOffset := r.stream.Offset()
		nameAny, err := r.ReadExpected(OpCommandName)
		if err != nil {
			return nil, err
		}
		name, err := asString(OpCommandName.Name(), nameOffset, nameAny)
		if err != nil {
			return nil, err
		}
		param, err := r.ReadThing()
		if err != nil {
			return nil, err
		}

		return &Command{Name: name, Parameter: normalizeNil(param)}, nil

	case OpMacroCall:
		nameOffset := r.stream.Offset()
		nameAny, err := r.ReadExpected(OpMacroName)
		if err != nil {
			return nil, err
		}
		name, err := asString(OpMacroName.Name(), nameOffset, nameAny)
		if err != nil {
			return nil, err
		}
		arglist, err := r.ReadExpected(OpMacroArglist)
		if err != nil {
			return nil, err
		}

		return &Command{Name: name, Parameter: normalizeNil(arglist)}, nil

	case OpLocationPair:
		a, err := r.ReadExpected(OpFixnum)
		if err != nil {
			return nil, err
		}
		b, err := r.ReadExpected(OpFixnum)
		if err != nil {
			return nil, err
		}

		return LocationPair{A: a.(int64), B: b.(int64)}, nil

	case OpIndex:
		return r.readIndex()

	case OpCalleeTripleList:
		return r.readCalleeTripleList()

	case OpIndexItem:
		return r.readIndexItem()

	case OpReference:
		return r.readReference(false)

	case OpFatString:
		return r.readFatString()

	case OpFileAttributeString:
		v, err := r.ReadThing()
		if err != nil {
			return nil, err
		}
		if isNilSymbol(v) {
			return nil, nil
		}

		return v, nil

	case OpCallee4pleList:
		return r.readCallee4pleList()

	case OpPicture:
		return r.readPicture()

	case Op8BitArray:
		n, err := r.stream.ReadU32LE()
		if err != nil {
			return nil, err
		}

		return r.stream.ReadBytes(int(n))

	case OpExampleRecordMarker:
		typ, err := r.ReadThing()
		if err != nil {
			return nil, err
		}
		encoding, err := r.ReadThing()
		if err != nil {
			return nil, err
		}

		return &ExampleRecordMarker{Type: typ, Encoding: encoding}, nil

	case OpExtensibleReference:
		return r.readReference(false)

	case OpExtensibleReferenceTakeTwo:
		return r.readReference(true)

	case OpCharacter:
		return r.readShortString()

	default:
		return nil, errs.Decode(offset, op.Name(), errs.ErrUnknownOpcode)
	}
}

// fieldNameResult is opcode 4's decoded payload: a field name paired with
// the opcode its value must be encoded with.
type fieldNameResult struct {
	Name       string
	ExpectedOp Opcode
}

func (r *Reader) readReference(extended bool) (*Reference, error) {
	topic, err := r.ReadThing()
	if err != nil {
		return nil, err
	}
	typ, err := r.readSymbolString()
	if err != nil {
		return nil, err
	}
	uniqueID, err := r.ReadExpected(OpUniqueID)
	if err != nil {
		return nil, err
	}
	view, err := r.ReadThing()
	if err != nil {
		return nil, err
	}

	if !extended {
		field, err := r.ReadThing()
		if err != nil {
			return nil, err
		}

		return &Reference{
			Topic:    normalizeNil(topic),
			Type:     typ,
			UniqueID: uniqueID,
			View:     view,
			Field:    normalizeNil(field),
		}, nil
	}

	appearance, err := r.ReadThing()
	if err != nil {
		return nil, err
	}
	booleansAny, err := r.ReadThing()
	if err != nil {
		return nil, err
	}
	field, err := r.ReadThing()
	if err != nil {
		return nil, err
	}

	appearanceStr, _ := normalizeNil(appearance).(string)

	return &Reference{
		Topic:      normalizeNil(topic),
		Type:       typ,
		UniqueID:   uniqueID,
		View:       view,
		Appearance: appearanceStr,
		Booleans:   toStringSlice(normalizeNil(booleansAny)),
		Field:      normalizeNil(field),
	}, nil
}

func toStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}

	return out
}

func (r *Reader) readPicture() (*Picture, error) {
	typ, err := r.readSymbolString()
	if err != nil {
		return nil, err
	}
	fileName, err := r.ReadThing()
	if err != nil {
		return nil, err
	}
	displayName, err := r.readShortString()
	if err != nil {
		return nil, err
	}
	n, err := r.stream.ReadU32LE()
	if err != nil {
		return nil, err
	}
	raw, err := r.stream.ReadBytes(int(n))
	if err != nil {
		return nil, err
	}

	return &Picture{Type: typ, FileName: fileName, DisplayName: displayName, Raw: raw}, nil
}

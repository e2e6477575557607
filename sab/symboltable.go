package sab

import (
	"strings"

	"github.com/arloliu/sabdoc/errs"
	"github.com/arloliu/sabdoc/internal/hash"
)

// SymbolTable is an append-only ordered sequence of interned symbol
// strings, scoped to a single section: the file-attribute-alist, each
// record, or the index (spec §3). A symbol reference (opcode 14) resolves
// by index into whichever SymbolTable is current; references never cross
// section boundaries, so every section parse starts a fresh SymbolTable.
type SymbolTable struct {
	symbols  []string
	interner *hash.Interner
}

// NewSymbolTable creates an empty table. interner may be nil, in which case
// symbol strings are not deduplicated across tables.
func NewSymbolTable(interner *hash.Interner) *SymbolTable {
	return &SymbolTable{interner: interner}
}

// symbolPrefix is the literal prefix prepended to a symbol definition
// according to which opcode defined it (spec §4.4, opcodes 15-18, 32).
var symbolPrefix = map[Opcode]string{
	OpUninternedSymbolDef: "uninterned:",
	OpSagePkgSymbolDef:    "",
	OpPkgSymbolDef:        "<pkg>:",
	OpDocPkgSymbolDef:     "doc:",
	OpKeywordPkgSymbolDef: ":",
}

// define appends a new symbol built from name and op's prefix, lower-cased,
// returning the interned (deduplicated) string.
func (t *SymbolTable) define(op Opcode, name string) string {
	sym := symbolPrefix[op] + strings.ToLower(name)
	if t.interner != nil {
		sym = t.interner.Intern(sym)
	}
	t.symbols = append(t.symbols, sym)

	return sym
}

// Resolve returns the symbol at idx, or ErrSymbolIndexOOB if idx is out of
// range for this table's current scope.
func (t *SymbolTable) Resolve(idx uint16) (string, error) {
	if int(idx) >= len(t.symbols) {
		return "", errs.ErrSymbolIndexOOB
	}

	return t.symbols[idx], nil
}

// Package sab implements the 46-opcode SAB ("Sage Archive Binary") reader:
// per-section symbol tables, typed records, and the fat-string sub-parser
// (spec §4.4).
package sab

// Opcode identifies one of the 46 SAB wire-format type codes (spec §4.4,
// §6). Values match *sab-code-names* order in the Scheme/Python lineage
// this format was ported from.
type Opcode byte

const (
	OpRecord                     Opcode = 0
	OpTypeSymbol                 Opcode = 1
	OpFunctionSpec                Opcode = 2
	OpFieldAlist                  Opcode = 3
	OpFieldName                   Opcode = 4
	OpEnvr                        Opcode = 5
	OpEnvrName                    Opcode = 6
	OpEnvrMods                    Opcode = 7
	OpAttributeName                Opcode = 8
	OpContentsList                Opcode = 9
	OpFixnum                      Opcode = 10
	OpString                      Opcode = 11
	OpLongString                  Opcode = 12
	OpList                        Opcode = 13
	OpSymbolRef                   Opcode = 14
	OpUninternedSymbolDef          Opcode = 15
	OpSagePkgSymbolDef             Opcode = 16
	OpPkgSymbolDef                 Opcode = 17
	OpDocPkgSymbolDef              Opcode = 18
	OpReadFromString              Opcode = 19
	OpSimpleCommand               Opcode = 20
	OpCommand                     Opcode = 21
	OpSimpleCommandName            Opcode = 22
	OpCommandName                  Opcode = 23
	OpMacroCall                    Opcode = 24
	OpMacroName                    Opcode = 25
	OpMacroArglist                 Opcode = 26
	OpLocationPair                 Opcode = 27
	OpIndex                       Opcode = 28
	OpCalleeTripleList             Opcode = 29
	OpIndexItem                    Opcode = 30
	OpFileAttributeAlist           Opcode = 31
	OpKeywordPkgSymbolDef          Opcode = 32
	OpReference                   Opcode = 33
	OpFatString                   Opcode = 34
	OpUniqueID                    Opcode = 35
	OpModificationHistory         Opcode = 36
	OpTokenList                   Opcode = 37
	OpFileAttributeString         Opcode = 38
	OpCallee4pleList               Opcode = 39
	OpPicture                     Opcode = 40
	Op8BitArray                    Opcode = 41
	OpExampleRecordMarker          Opcode = 42
	OpExtensibleReference          Opcode = 43
	OpExtensibleReferenceTakeTwo  Opcode = 44
	OpCharacter                    Opcode = 45

	numOpcodes = 46
)

// opcodeNames gives the symbolic name used in DecodeError.Opcode and in
// opcode-mismatch error messages, mirroring *sab-code-names*.
var opcodeNames = [numOpcodes]string{
	"record", "type-symbol", "function-spec", "field-alist",
	"field-name", "envr", "envr-name", "envr-mods",
	"attribute-name", "contents-list", "fixnum", "string",
	"long-string", "list", "symbol-ref", "uninterned-symbol-def",
	"sage-pkg-symbol-def", "pkg-symbol-def", "doc-pkg-symbol-def",
	"read-from-string", "simple-command", "command",
	"simple-command-name", "command-name", "macro-call",
	"macro-name", "macro-arglist", "location-pair",
	"index", "callee-triple-list", "index-item",
	"file-attribute-alist", "keyword-pkg-symbol-def",
	"reference", "fat-string", "unique-id",
	"modification-history", "token-list", "file-attribute-string",
	"callee-4ple-list", "picture", "8-bit-array",
	"example-record-marker", "extensible-reference",
	"extensible-reference-take-two", "character",
}

// Name returns op's symbolic name, or "?" if op is outside the known range.
func (op Opcode) Name() string {
	if int(op) >= numOpcodes {
		return "?"
	}

	return opcodeNames[op]
}

package sab

// fieldExpectedOpcode maps a recognized field name to the opcode its value
// must be encoded with (spec §4.4 opcode 4). A field name absent from this
// table fails with errs.ErrUnknownField: the set of recognized fields is
// closed, matching FIELD_NAME_TO_SAB_CODE in the document lineage this
// format was ported from.
var fieldExpectedOpcode = map[string]Opcode{
	"unique-id":                      OpUniqueID,
	"version-number":                 OpFixnum,
	"flags":                          OpFixnum,
	"location":                       OpLocationPair,
	"tokens":                         OpTokenList,
	"keywords":                       OpContentsList,
	"callee-list":                    OpCallee4pleList,
	"source-topic":                   OpContentsList,
	"file-attribute-string":          OpFileAttributeString,
	"contents":                       OpContentsList,
	"arglist":                        OpContentsList,
	"symbolics-common-lisp:arglist":  OpContentsList,
	"modification-history":           OpModificationHistory,
	"source-title":                   OpContentsList,
	"oneliner":                       OpContentsList,
	"related":                        OpContentsList,
	"releasenumber":                  OpContentsList,
	"abbrev":                         OpContentsList,
	"notes":                          OpContentsList,
	"glossary":                       OpContentsList,
	"patched-from":                   OpString,
	"unique-index":                   OpFixnum,
}

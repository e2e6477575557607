// Package genera recodes Genera's Latin-1-based text encoding to Unicode:
// the 32 special character codes in 0x00-0x1F, the paragraph/line-break
// sentinels carried by 0x8D, and column-aware tab expansion for 0x89.
package genera

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Sentinels live in the Unicode Private Use Area so they cannot collide
// with any character that appears in Genera document text (spec §9).
const (
	ParagraphMarker = ''
	LineBreakMarker = ''
)

// charTable maps Genera's 0x00-0x1F control codes to the Unicode characters
// they represent in Sage documentation (spec §4.2): middle dot, Greek
// letters, arrows, set operators, and similar symbols used inline in text.
var charTable = [32]rune{
	0x00: '·', // middle dot
	0x01: '↓', // down arrow
	0x02: 'α', // alpha
	0x03: 'β', // beta
	0x04: '∧', // logical and
	0x05: '¬', // not sign
	0x06: 'ε', // epsilon
	0x07: 'π', // pi
	0x08: 'λ', // lambda
	0x09: 'γ', // gamma
	0x0A: 'δ', // delta
	0x0B: '↑', // up arrow
	0x0C: '±', // plus-minus
	0x0D: '⊕', // circle-plus
	0x0E: '∞', // infinity
	0x0F: '∂', // partial derivative
	0x10: '⊂', // subset
	0x11: '⊃', // superset
	0x12: '∪', // union
	0x13: '∩', // intersection
	0x14: '∀', // for all
	0x15: '∃', // there exists
	0x16: '⊗', // circle-times
	0x17: '⇆', // leftright arrows
	0x18: '←', // left arrow
	0x19: '→', // right arrow
	0x1A: '≠', // not equal
	0x1B: '⋄', // diamond
	0x1C: '≤', // less-or-equal
	0x1D: '≥', // greater-or-equal
	0x1E: '≡', // identical to
	0x1F: '∨', // logical or
}

const tabByte = 0x89
const tabWidth = 8

// c1Strip is the C1 control range (0x7F-0x9F) minus 0x8D, which the
// paragraph/line-break substitution has already consumed; 0x89 is in the
// set but is matched as the tab byte first. These formatting artifacts are
// dropped silently rather than mapped.
var c1Strip = buildC1Strip()

func buildC1Strip() map[byte]struct{} {
	m := make(map[byte]struct{})
	for b := 0x7F; b < 0x8D; b++ {
		m[byte(b)] = struct{}{}
	}
	for b := 0x8E; b < 0xA0; b++ {
		m[byte(b)] = struct{}{}
	}

	return m
}

var latin1Decoder = charmap.ISO8859_1.NewDecoder()

// RecodeShort recodes a short (u8-length-prefixed) Genera string: raw bytes
// are decoded from Latin-1 then passed through the special-character/tab
// overlay described in spec §4.2.
func RecodeShort(raw []byte) (string, error) {
	return recode(raw)
}

// RecodeLong recodes a long (u32-length-prefixed) Genera string; identical
// handling to RecodeShort, the length prefix width differs only at the SAB
// reader layer.
func RecodeLong(raw []byte) (string, error) {
	return recode(raw)
}

func recode(raw []byte) (string, error) {
	latin1, err := latin1Decoder.Bytes(raw)
	if err != nil {
		return "", err
	}

	return recodeAndExpand(string(latin1)), nil
}

// recodeAndExpand applies paragraph/line-break sentinel substitution, the
// 32-entry special character table, C1 stripping, and column-aware tab
// expansion to already-Latin-1-decoded text.
func recodeAndExpand(text string) string {
	text = strings.ReplaceAll(text, "\u008d\u008d", string(ParagraphMarker))
	text = strings.ReplaceAll(text, "\u008d", string(LineBreakMarker))

	var out strings.Builder
	out.Grow(len(text))
	col := 0

	for _, ch := range text {
		switch {
		case ch == tabByte:
			spaces := tabWidth - (col % tabWidth)
			out.WriteString(strings.Repeat(" ", spaces))
			col += spaces
		case ch < 0x20 && int(ch) < len(charTable) && charTable[ch] != 0:
			out.WriteRune(charTable[ch])
			col++
		case ch < 0x100 && isC1Strip(byte(ch)):
			// silently dropped
		case ch == LineBreakMarker || ch == '\n':
			out.WriteRune(ch)
			col = 0
		case ch == ParagraphMarker:
			out.WriteRune(ch)
			col = 0
		default:
			out.WriteRune(ch)
			col++
		}
	}

	return out.String()
}

func isC1Strip(b byte) bool {
	_, ok := c1Strip[b]
	return ok
}

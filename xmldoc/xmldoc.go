// Package xmldoc renders a parsed SAB file to the lossless intermediate XML
// representation described in spec §4.9: one <record> per record mirroring
// its field structure, embedded pictures decoded to inline SVG, and an
// <index> section mirroring the index.
package xmldoc

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"

	"github.com/arloliu/sabdoc/genera"
	"github.com/arloliu/sabdoc/graphics"
	"github.com/arloliu/sabdoc/sab"
	"github.com/arloliu/sabdoc/svg"
)

// illegalXMLChars matches control characters the XML 1.0 grammar forbids,
// excluding tab/LF/CR (spec §4.9).
var illegalXMLChars = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f-\x84\x86-\x9f]`)

func sanitize(text string) string {
	return illegalXMLChars.ReplaceAllString(text, "�")
}

func escapeText(text string) string {
	var buf strings.Builder
	_ = xml.EscapeText(&buf, []byte(sanitize(text)))

	return buf.String()
}

func quoteAttr(text string) string {
	return `"` + escapeText(text) + `"`
}

// Render converts a decoded SAB file into the semantic XML document (spec
// §4.9). sourcePath is recorded on the root element for provenance.
func Render(file *sab.File, sourcePath string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(fmt.Sprintf("<sab-document source=%s>\n", quoteAttr(sourcePath)))

	b.WriteString("  <file-attributes>\n")
	for _, attr := range file.FileAttributes {
		b.WriteString(fmt.Sprintf("    <attribute name=%s value=%s />\n",
			quoteAttr(attr.Name), quoteAttr(formatAttrValue(attr.Value))))
	}
	b.WriteString("  </file-attributes>\n")

	for i, rec := range file.Records {
		var idx *sab.IndexItem
		if i < len(file.Index) {
			idx = &file.Index[i]
		}
		emitRecord(&b, rec, idx, 2)
	}

	b.WriteString("  <index>\n")
	for _, item := range file.Index {
		emitIndexItem(&b, item, 4)
	}
	b.WriteString("  </index>\n")

	b.WriteString("</sab-document>\n")

	return b.String()
}

func formatAttrValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []sab.Field:
		parts := make([]string, len(val))
		for i, f := range val {
			parts[i] = fmt.Sprintf("%v", f.Value)
		}

		return strings.Join(parts, " ")
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = fmt.Sprintf("%v", item)
		}

		return strings.Join(parts, " ")
	default:
		return fmt.Sprintf("%v", val)
	}
}

func indent(level int) string {
	return strings.Repeat(" ", level)
}

func recordName(name any) string {
	switch v := name.(type) {
	case sab.FunctionSpec:
		return v.Name
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

func emitRecord(b *strings.Builder, rec *sab.Record, idx *sab.IndexItem, ind int) {
	name := recordName(rec.Name)
	uidAttr := ""
	if idx != nil {
		if uid, ok := idx.Field("unique-id"); ok {
			uidAttr = fmt.Sprintf(" unique-id=%s", quoteAttr(fmt.Sprintf("%v", uid)))
		}
	}

	fmt.Fprintf(b, "%s<record name=%s type=%s%s>\n", indent(ind), quoteAttr(name), quoteAttr(rec.Type), uidAttr)
	for _, f := range rec.Fields {
		fmt.Fprintf(b, "%s<field name=%s>\n", indent(ind+2), quoteAttr(f.Name))
		emitValue(b, f.Value, ind+4)
		fmt.Fprintf(b, "%s</field>\n", indent(ind+2))
	}
	fmt.Fprintf(b, "%s</record>\n", indent(ind))
}

func emitValue(b *strings.Builder, val any, ind int) {
	switch v := val.(type) {
	case string:
		emitText(b, v, ind)
	case int64:
		fmt.Fprintf(b, "%s<number value=\"%d\" />\n", indent(ind), v)
	case float64:
		fmt.Fprintf(b, "%s<number value=\"%g\" />\n", indent(ind), v)
	case *sab.Envr:
		emitEnvr(b, *v, ind)
	case *sab.Command:
		emitCommand(b, *v, ind)
	case *sab.Reference:
		emitReference(b, *v, ind)
	case *sab.Picture:
		emitPicture(b, *v, ind)
	case sab.FunctionSpec:
		fmt.Fprintf(b, "%s<function-spec name=%s />\n", indent(ind), quoteAttr(v.Name))
	case *sab.ExampleRecordMarker:
		fmt.Fprintf(b, "%s<example-record-marker type=%s encoding=%s />\n",
			indent(ind), quoteAttr(fmt.Sprintf("%v", v.Type)), quoteAttr(fmt.Sprintf("%v", v.Encoding)))
	case []sab.Field:
		emitList(b, fieldsAsAny(v), ind)
	case []any:
		emitList(b, v, ind)
	case []byte:
		fmt.Fprintf(b, "%s<binary-data length=\"%d\" />\n", indent(ind), len(v))
	case nil:
		fmt.Fprintf(b, "%s<null />\n", indent(ind))
	default:
		fmt.Fprintf(b, "%s<unknown>%s</unknown>\n", indent(ind), escapeText(fmt.Sprintf("%v", v)))
	}
}

func fieldsAsAny(fields []sab.Field) []any {
	out := make([]any, len(fields))
	for i, f := range fields {
		out[i] = f.Value
	}

	return out
}

func emitText(b *strings.Builder, text string, ind int) {
	if text == "" {
		fmt.Fprintf(b, "%s<text />\n", indent(ind))

		return
	}

	wrote := false
	segments := strings.Split(text, string(genera.ParagraphMarker))
	for i, seg := range segments {
		if i > 0 {
			fmt.Fprintf(b, "%s<para-break />\n", indent(ind))
			wrote = true
		}
		subsegments := strings.Split(seg, string(genera.LineBreakMarker))
		for j, subseg := range subsegments {
			if j > 0 {
				fmt.Fprintf(b, "%s<line-break />\n", indent(ind))
				wrote = true
			}
			if subseg != "" {
				fmt.Fprintf(b, "%s<text>%s</text>\n", indent(ind), escapeText(subseg))
				wrote = true
			}
		}
	}
	if !wrote {
		fmt.Fprintf(b, "%s<text />\n", indent(ind))
	}
}

func emitEnvr(b *strings.Builder, envr sab.Envr, ind int) {
	fmt.Fprintf(b, "%s<envr name=%s>\n", indent(ind), quoteAttr(envr.Name))
	if len(envr.Mods) > 0 {
		fmt.Fprintf(b, "%s<mods>\n", indent(ind+2))
		for _, m := range envr.Mods {
			fmt.Fprintf(b, "%s<mod name=%s value=%s />\n",
				indent(ind+4), quoteAttr(m.Name), quoteAttr(fmt.Sprintf("%v", m.Value)))
		}
		fmt.Fprintf(b, "%s</mods>\n", indent(ind+2))
	}
	for _, item := range envr.Contents {
		emitValue(b, item, ind+2)
	}
	fmt.Fprintf(b, "%s</envr>\n", indent(ind))
}

func emitCommand(b *strings.Builder, cmd sab.Command, ind int) {
	if cmd.Parameter == nil {
		fmt.Fprintf(b, "%s<command name=%s />\n", indent(ind), quoteAttr(cmd.Name))

		return
	}
	if list, ok := cmd.Parameter.([]any); ok && len(list) == 0 {
		fmt.Fprintf(b, "%s<command name=%s />\n", indent(ind), quoteAttr(cmd.Name))

		return
	}

	fmt.Fprintf(b, "%s<command name=%s>\n", indent(ind), quoteAttr(cmd.Name))
	emitValue(b, cmd.Parameter, ind+2)
	fmt.Fprintf(b, "%s</command>\n", indent(ind))
}

func emitReference(b *strings.Builder, ref sab.Reference, ind int) {
	topic := ""
	switch t := ref.Topic.(type) {
	case string:
		topic = t
	case sab.FunctionSpec:
		topic = t.Name
	}

	attrs := []string{
		fmt.Sprintf("topic=%s", quoteAttr(topic)),
		fmt.Sprintf("type=%s", quoteAttr(ref.Type)),
	}
	if ref.UniqueID != nil {
		attrs = append(attrs, fmt.Sprintf("unique-id=%s", quoteAttr(fmt.Sprintf("%v", ref.UniqueID))))
	}
	if ref.View != nil {
		attrs = append(attrs, fmt.Sprintf("view=%s", quoteAttr(fmt.Sprintf("%v", ref.View))))
	}
	if ref.Appearance != "" {
		attrs = append(attrs, fmt.Sprintf("appearance=%s", quoteAttr(ref.Appearance)))
	}
	if len(ref.Booleans) > 0 {
		attrs = append(attrs, fmt.Sprintf("booleans=%s", quoteAttr(strings.Join(ref.Booleans, " "))))
	}
	if ref.Field != nil {
		attrs = append(attrs, fmt.Sprintf("field=%s", quoteAttr(fmt.Sprintf("%v", ref.Field))))
	}

	fmt.Fprintf(b, "%s<reference %s />\n", indent(ind), strings.Join(attrs, " "))
}

func emitPicture(b *strings.Builder, pic sab.Picture, ind int) {
	attrs := fmt.Sprintf("name=%s type=%s", quoteAttr(pic.DisplayName), quoteAttr(pic.Type))
	if pic.FileName != nil {
		attrs += fmt.Sprintf(" file-name=%s", quoteAttr(fmt.Sprintf("%v", pic.FileName)))
	}

	fmt.Fprintf(b, "%s<picture %s>\n", indent(ind), attrs)

	if len(pic.Raw) > 0 {
		if err := renderGraphics(b, pic.Raw, ind+2); err != nil {
			fmt.Fprintf(b, "%s<graphics-error>%s</graphics-error>\n", indent(ind+2), escapeText(err.Error()))
		}
	}

	fmt.Fprintf(b, "%s</picture>\n", indent(ind))
}

func renderGraphics(b *strings.Builder, raw []byte, ind int) error {
	forms, err := graphics.Decode(raw)
	if err != nil {
		return err
	}

	out := svg.Render(forms, nil)
	fmt.Fprintf(b, "%s<graphics>\n%s\n%s</graphics>\n", indent(ind), out, indent(ind))

	return nil
}

func emitList(b *strings.Builder, items []any, ind int) {
	if len(items) == 0 {
		fmt.Fprintf(b, "%s<content-list />\n", indent(ind))

		return
	}

	fmt.Fprintf(b, "%s<content-list>\n", indent(ind))
	for _, item := range items {
		emitValue(b, item, ind+2)
	}
	fmt.Fprintf(b, "%s</content-list>\n", indent(ind))
}

func emitIndexItem(b *strings.Builder, item sab.IndexItem, ind int) {
	topic := ""
	switch t := item.Topic.(type) {
	case string:
		topic = t
	case sab.FunctionSpec:
		topic = t.Name
	}

	fmt.Fprintf(b, "%s<index-item topic=%s type=%s>\n", indent(ind), quoteAttr(topic), quoteAttr(item.Type))
	for _, f := range item.Fields {
		if f.Name == "callee-list" {
			if callees, ok := f.Value.([]sab.Callee); ok {
				for _, c := range callees {
					emitCallee(b, c, ind+2)
				}

				continue
			}
		}
		fmt.Fprintf(b, "%s<index-field name=%s>\n", indent(ind+2), quoteAttr(f.Name))
		emitValue(b, f.Value, ind+4)
		fmt.Fprintf(b, "%s</index-field>\n", indent(ind+2))
	}
	fmt.Fprintf(b, "%s</index-item>\n", indent(ind))
}

func emitCallee(b *strings.Builder, c sab.Callee, ind int) {
	topic := ""
	switch t := c.Topic.(type) {
	case string:
		topic = t
	case sab.FunctionSpec:
		topic = t.Name
	}

	uid := ""
	if c.CalleeUID != nil {
		uid = fmt.Sprintf("%v", c.CalleeUID)
	}

	fmt.Fprintf(b, "%s<callee topic=%s type=%s called-how=%s unique-id=%s />\n",
		indent(ind), quoteAttr(topic), quoteAttr(c.Type), quoteAttr(c.CalledHow), quoteAttr(uid))
}

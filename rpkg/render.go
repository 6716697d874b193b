package rpkg

import (
	"bytes"
	"fmt"
	"strings"
)

// HeaderBanner returns comment line put on top of generated headers.
func HeaderBanner(version string) string {
	return "// Automatically generated with c4ddev v" + version
}

// Header renders C enum header for package symbols. Empty banner is omitted.
func (p *Package) Header(banner string) []byte {
	buf := new(bytes.Buffer)
	if banner != "" {
		buf.WriteString(banner)
		buf.WriteByte('\n')
	}
	fmt.Fprintf(buf, "#ifndef __%s_H_\n", p.Name)
	fmt.Fprintf(buf, "#define __%s_H_\n\n", p.Name)
	buf.WriteString("enum {\n")
	for _, kv := range p.Symbols.Order {
		fmt.Fprintf(buf, "  %s = %d,\n", kv.Key, kv.Value)
	}
	buf.WriteString("};\n\n")
	buf.WriteString("#endif\n")
	return buf.Bytes()
}

// StringTable renders STRINGTABLE resource for language. Global symbols
// table is anonymous, description tables carry package name.
func (p *Package) StringTable(lang Language) []byte {
	buf := new(bytes.Buffer)
	buf.WriteString("STRINGTABLE")
	if !p.IsSymbols() {
		buf.WriteByte(' ')
		buf.WriteString(p.Name)
	}
	buf.WriteString("\n{\n")
	if table, ok := p.Localizations.ValueByKeyTry(lang); ok {
		for _, kv := range table.Order {
			fmt.Fprintf(buf, "  %s \"%s\";\n", kv.Key, Escape(kv.Value))
		}
	}
	buf.WriteString("}\n")
	return buf.Bytes()
}

// Escape replaces every character outside printable ASCII with \uXXXX.
func Escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 32 && r < 127 {
			b.WriteRune(r)
			continue
		}
		fmt.Fprintf(&b, "\\u%04x", r)
	}
	return b.String()
}
